// Package http exposes the shop backend's JSON API: the product list,
// one product by id, and order submission.
package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
	"github.com/oqdoku94/web-larek-frontend/internal/shopd/repository"
)

// ListResponse is the catalog list envelope the storefront expects.
type ListResponse struct {
	Total int              `json:"total"`
	Items []domain.Product `json:"items"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ProductHandler struct {
	repo repository.RepoInterface
}

func NewProductHandler(repo repository.RepoInterface) *ProductHandler {
	return &ProductHandler{repo: repo}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetAllProducts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, &ListResponse{Total: len(products), Items: products})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.repo.GetProduct(r.Context(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

type OrderHandler struct {
	repo repository.RepoInterface
}

func NewOrderHandler(repo repository.RepoInterface) *OrderHandler {
	return &OrderHandler{repo: repo}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	confirmation, err := h.repo.CreateOrder(r.Context(), order)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	respondJSON(w, http.StatusOK, confirmation)
}

func isValidationError(err error) bool {
	return errors.Is(err, repository.ErrMissingField) ||
		errors.Is(err, repository.ErrEmptyOrder) ||
		errors.Is(err, repository.ErrZeroTotal) ||
		errors.Is(err, repository.ErrUnknownProduct) ||
		errors.Is(err, repository.ErrPricelessProduct)
}

// NewRouter assembles the API routes consumed by the storefront.
func NewRouter(repo repository.RepoInterface) chi.Router {
	productHandler := NewProductHandler(repo)
	orderHandler := NewOrderHandler(repo)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/product/", productHandler.List)
		r.Get("/product/{id}", productHandler.Get)
		r.Post("/order", orderHandler.Create)
	})
	return r
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, &ErrorResponse{Error: message})
}
