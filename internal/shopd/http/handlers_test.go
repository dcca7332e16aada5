package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
	"github.com/oqdoku94/web-larek-frontend/internal/shopd/repository"
)

type mockRepo struct {
	Products     []domain.Product
	ListErr      error
	GetErr       error
	CreateErr    error
	Confirmation domain.OrderConfirmation
	CreatedOrder domain.Order
}

func (m *mockRepo) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	return m.Products, m.ListErr
}

func (m *mockRepo) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if m.GetErr != nil {
		return domain.Product{}, m.GetErr
	}
	for _, p := range m.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, repository.ErrProductNotFound
}

func (m *mockRepo) CreateOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error) {
	m.CreatedOrder = order
	if m.CreateErr != nil {
		return domain.OrderConfirmation{}, m.CreateErr
	}
	return m.Confirmation, nil
}

func (m *mockRepo) GetUnprocessedEvents(ctx context.Context, limit int) ([]*repository.OutboxEvent, error) {
	return nil, nil
}

func (m *mockRepo) MarkEventAsProcessed(ctx context.Context, id int64) error { return nil }

func (m *mockRepo) RunMigrations(migrationsPath string) error { return nil }

func (m *mockRepo) Close() error { return nil }

func testProducts() []domain.Product {
	price := 750.0
	return []domain.Product{
		{ID: "p1", Title: "+1 hour in a day", Category: "soft-skill", Price: &price},
		{ID: "p2", Title: "Focus frame", Category: "hard-skill"},
	}
}

func TestListProducts_ReturnsEnvelope(t *testing.T) {
	repo := &mockRepo{Products: testProducts()}
	router := NewRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/product/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "+1 hour in a day", resp.Items[0].Title)
	assert.Nil(t, resp.Items[1].Price)
}

func TestListProducts_EmptyCatalog(t *testing.T) {
	repo := &mockRepo{}
	router := NewRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/product/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":0,"items":[]}`, rec.Body.String())
}

func TestListProducts_RepoError(t *testing.T) {
	repo := &mockRepo{ListErr: errors.New("db down")}
	router := NewRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/product/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetProduct_ReturnsProduct(t *testing.T) {
	repo := &mockRepo{Products: testProducts()}
	router := NewRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/product/p1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var product domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, "p1", product.ID)
	require.NotNil(t, product.Price)
	assert.Equal(t, 750.0, *product.Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := &mockRepo{Products: testProducts()}
	router := NewRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/product/missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "product not found", resp.Error)
}

func TestCreateOrder_ReturnsConfirmation(t *testing.T) {
	repo := &mockRepo{Confirmation: domain.OrderConfirmation{ID: "order-1", Total: 750}}
	router := NewRouter(repo)

	body, err := json.Marshal(domain.Order{
		Payment: domain.PaymentCard,
		Email:   "a@b.c",
		Phone:   "123",
		Address: "street 1",
		Total:   750,
		Items:   []string{"p1"},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/order", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var confirmation domain.OrderConfirmation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmation))
	assert.Equal(t, "order-1", confirmation.ID)
	assert.Equal(t, 750.0, confirmation.Total)

	assert.Equal(t, []string{"p1"}, repo.CreatedOrder.Items)
	assert.Equal(t, domain.PaymentCard, repo.CreatedOrder.Payment)
}

func TestCreateOrder_InvalidBody(t *testing.T) {
	router := NewRouter(&mockRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/order", bytes.NewBufferString("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing field", repository.ErrMissingField},
		{"empty order", repository.ErrEmptyOrder},
		{"zero total", repository.ErrZeroTotal},
		{"unknown product", repository.ErrUnknownProduct},
		{"priceless product", repository.ErrPricelessProduct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{CreateErr: tt.err}
			router := NewRouter(repo)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/order", bytes.NewBufferString("{}")))

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.err.Error(), resp.Error)
		})
	}
}

func TestCreateOrder_RepoError(t *testing.T) {
	repo := &mockRepo{CreateErr: errors.New("db down")}
	router := NewRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/order", bytes.NewBufferString("{}")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
