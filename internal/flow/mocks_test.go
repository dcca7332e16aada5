package flow

import (
	"context"
	"strings"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
	"github.com/oqdoku94/web-larek-frontend/internal/shopapi"
	"github.com/oqdoku94/web-larek-frontend/internal/view"
)

// mockShopAPI implements shopapi.ShopAPI for testing
type mockShopAPI struct {
	Products        map[string]domain.Product
	GetErr          error
	SubmitErr       error
	Confirmation    domain.OrderConfirmation
	SubmittedOrders []domain.Order
}

func (m *mockShopAPI) ListProducts(context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(m.Products))
	for _, p := range m.Products {
		products = append(products, p)
	}
	return products, m.GetErr
}

func (m *mockShopAPI) GetProduct(_ context.Context, id string) (domain.Product, error) {
	if m.GetErr != nil {
		return domain.Product{}, m.GetErr
	}
	product, ok := m.Products[id]
	if !ok {
		return domain.Product{}, shopapi.ErrNotFound
	}
	return product, nil
}

func (m *mockShopAPI) SubmitOrder(_ context.Context, order domain.Order) (domain.OrderConfirmation, error) {
	m.SubmittedOrders = append(m.SubmittedOrders, order)
	if m.SubmitErr != nil {
		return domain.OrderConfirmation{}, m.SubmitErr
	}
	return m.Confirmation, nil
}

// recordingPage captures everything the controller presents on the page
type recordingPage struct {
	Catalogs [][]*view.Container
	Counts   []int
}

func (p *recordingPage) SetCatalog(cards []*view.Container) {
	p.Catalogs = append(p.Catalogs, cards)
}

func (p *recordingPage) SetBasketCount(n int) {
	p.Counts = append(p.Counts, n)
}

func (p *recordingPage) lastCount() int {
	if len(p.Counts) == 0 {
		return 0
	}
	return p.Counts[len(p.Counts)-1]
}

// recordingModal captures every container shown in the modal
type recordingModal struct {
	Shown  []*view.Container
	Closed int
}

func (m *recordingModal) Show(c *view.Container) {
	m.Shown = append(m.Shown, c)
}

func (m *recordingModal) Close() {
	m.Closed++
}

func (m *recordingModal) last() *view.Container {
	if len(m.Shown) == 0 {
		return &view.Container{}
	}
	return m.Shown[len(m.Shown)-1]
}

func (m *recordingModal) lastBodyContains(s string) bool {
	return strings.Contains(m.last().Body, s)
}
