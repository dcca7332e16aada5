// Package store owns the application state: the catalog snapshot, the
// basket and the in-progress order and contact drafts. All state
// changes go through it, and it notifies the rest of the application
// over the event bus.
package store

import (
	"fmt"
	"sync"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
	"github.com/oqdoku94/web-larek-frontend/internal/events"
)

// Store is the single owner of catalog, basket and draft state. Views
// hold no authoritative state of their own.
//
// Basket prices are locked at add-time: the total is always derived
// from the captured per-item prices, never re-priced against the live
// catalog, so a mid-session price change cannot silently alter an
// already-basketed item's contribution.
type Store struct {
	mu       sync.RWMutex
	bus      *events.Bus
	catalog  []domain.Product
	items    []domain.BasketItem
	members  map[string]struct{}
	order    domain.OrderDraft
	contacts domain.ContactsDraft
}

func New(bus *events.Bus) *Store {
	return &Store{
		bus:     bus,
		members: make(map[string]struct{}),
	}
}

// SetCatalog replaces the catalog snapshot wholesale and emits
// catalog-changed. The basket is untouched: it holds captured ids and
// prices, not live catalog references.
func (s *Store) SetCatalog(products []domain.Product) {
	s.mu.Lock()
	s.catalog = append([]domain.Product(nil), products...)
	snapshot := append([]domain.Product(nil), s.catalog...)
	s.mu.Unlock()

	s.bus.Emit(events.CatalogChanged, snapshot)
}

// UpsertProduct replaces a single catalog entry, or appends it when the
// id is new. Used when a product is refreshed after a detail view; a
// stale response applied late is harmless because entries are
// idempotently replaceable by id.
func (s *Store) UpsertProduct(p domain.Product) {
	s.mu.Lock()
	replaced := false
	for i := range s.catalog {
		if s.catalog[i].ID == p.ID {
			s.catalog[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		s.catalog = append(s.catalog, p)
	}
	snapshot := append([]domain.Product(nil), s.catalog...)
	s.mu.Unlock()

	s.bus.Emit(events.CatalogChanged, snapshot)
}

// Catalog returns a copy of the current catalog snapshot.
func (s *Store) Catalog() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.catalog...)
}

// Product returns the catalog entry with the given id.
func (s *Store) Product(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

// AddItem inserts the product into the basket, capturing its current
// price. Adding an already-present id is a no-op. Products without a
// positive price never enter the basket.
func (s *Store) AddItem(p domain.Product) error {
	if !p.Purchasable() {
		return fmt.Errorf("%w: %s", ErrNotPurchasable, p.ID)
	}

	s.mu.Lock()
	if _, ok := s.members[p.ID]; ok {
		s.mu.Unlock()
		return nil
	}
	s.items = append(s.items, domain.BasketItem{ProductID: p.ID, Price: *p.Price})
	s.members[p.ID] = struct{}{}
	snapshot := s.basketLocked()
	s.mu.Unlock()

	s.bus.Emit(events.BasketChanged, snapshot)
	return nil
}

// RemoveItem deletes the item with the given product id. Removing an
// absent id is a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	if _, ok := s.members[id]; !ok {
		s.mu.Unlock()
		return
	}
	for i, item := range s.items {
		if item.ProductID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	delete(s.members, id)
	snapshot := s.basketLocked()
	s.mu.Unlock()

	s.bus.Emit(events.BasketChanged, snapshot)
}

// IsInBasket reports basket membership for the given product id.
func (s *Store) IsInBasket(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[id]
	return ok
}

// Basket returns a snapshot of the current basket.
func (s *Store) Basket() domain.Basket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.basketLocked()
}

// BasketItems returns the catalog products currently in the basket, in
// insertion order. Items whose id is no longer in the catalog stay in
// the basket but are skipped here; they still count toward the total.
func (s *Store) BasketItems() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.items))
	for _, item := range s.items {
		for _, p := range s.catalog {
			if p.ID == item.ProductID {
				products = append(products, p)
				break
			}
		}
	}
	return products
}

func (s *Store) basketLocked() domain.Basket {
	basket := domain.Basket{Items: append([]domain.BasketItem(nil), s.items...)}
	for _, item := range s.items {
		basket.Total += item.Price
	}
	return basket
}

// SetOrderDraft replaces the delivery draft wholesale. An unset payment
// method defaults to cash.
func (s *Store) SetOrderDraft(draft domain.OrderDraft) {
	if draft.Payment == "" {
		draft.Payment = domain.PaymentCash
	}
	s.mu.Lock()
	s.order = draft
	s.mu.Unlock()
}

// SetContactsDraft replaces the contact draft wholesale.
func (s *Store) SetContactsDraft(draft domain.ContactsDraft) {
	s.mu.Lock()
	s.contacts = draft
	s.mu.Unlock()
}

// OrderDraft returns the current delivery draft.
func (s *Store) OrderDraft() domain.OrderDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order
}

// ContactsDraft returns the current contact draft.
func (s *Store) ContactsDraft() domain.ContactsDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contacts
}

// ClearBasket empties the basket and emits basket-changed.
func (s *Store) ClearBasket() {
	s.mu.Lock()
	s.items = nil
	s.members = make(map[string]struct{})
	snapshot := s.basketLocked()
	s.mu.Unlock()

	s.bus.Emit(events.BasketChanged, snapshot)
}

// ClearOrderDraft resets the delivery draft to its empty value.
func (s *Store) ClearOrderDraft() {
	s.mu.Lock()
	s.order = domain.OrderDraft{}
	s.mu.Unlock()
}

// ClearContactsDraft resets the contact draft to its empty value.
func (s *Store) ClearContactsDraft() {
	s.mu.Lock()
	s.contacts = domain.ContactsDraft{}
	s.mu.Unlock()
}

// BuildSubmission assembles the final order from the basket and both
// drafts. Items without a positive captured price are excluded, and the
// total is the sum of the included prices. Fails on an empty basket.
func (s *Store) BuildSubmission() (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		return domain.Order{}, ErrEmptyBasket
	}

	order := domain.Order{
		Payment: s.order.Payment,
		Email:   s.contacts.Email,
		Phone:   s.contacts.Phone,
		Address: s.order.Address,
		Items:   make([]string, 0, len(s.items)),
	}
	for _, item := range s.items {
		if item.Price <= 0 {
			continue
		}
		order.Items = append(order.Items, item.ProductID)
		order.Total += item.Price
	}
	return order, nil
}
