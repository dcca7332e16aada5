// Package events provides the synchronous publish/subscribe bus that
// decouples the state store from the views and the checkout controller.
package events

import "sync"

// Wildcard subscribes a handler to every event on the bus.
const Wildcard = "*"

// Event names the core emits and expects. Payload shapes are agreed out
// of band per name; the bus itself does not check them.
const (
	CatalogChanged    = "catalog-changed"     // []domain.Product
	BasketChanged     = "basket-changed"      // domain.Basket
	ProductSelected   = "product-selected"    // product id (string)
	BasketToggle      = "basket-toggle"       // product id (string)
	BasketOpen        = "basket-open"         // nil
	BasketItemRemoved = "basket-item-removed" // product id (string)
	BasketSubmit      = "basket-submit"       // nil
	OrderSubmit       = "order-submit"        // domain.OrderDraft
	ContactsSubmit    = "contacts-submit"     // domain.ContactsDraft
	OrderComplete     = "order-complete"      // domain.OrderConfirmation
	ModalClose        = "modal-close"         // nil
)

// Handler receives the event name and its payload.
type Handler func(event string, payload any)

// Bus dispatches events to subscribers synchronously and in
// registration order. Emit runs every handler to completion before
// returning; nothing is queued or dropped. A handler that emits the
// same event recurses — guarding against cycles is the caller's
// responsibility.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[string][]subscription
}

type subscription struct {
	id int
	fn Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]subscription)}
}

// Subscribe registers a handler for the named event, or for every event
// when the name is Wildcard. It returns a function that removes the
// registration. Go funcs are not comparable, so the unsubscribe closure
// stands in for an unsubscribe(name, handler) call.
func (b *Bus) Subscribe(event string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[event] = append(b.handlers[event], subscription{id: id, fn: fn})
	return func() { b.remove(event, id) }
}

func (b *Bus) remove(event string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[event]
	for i, s := range subs {
		if s.id == id {
			b.handlers[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit invokes every handler subscribed to the exact event name, then
// every wildcard handler, each group in registration order. The handler
// list is snapshotted up front, so handlers subscribed during dispatch
// only see later emits.
func (b *Bus) Emit(event string, payload any) {
	b.mu.Lock()
	subs := make([]subscription, 0, len(b.handlers[event])+len(b.handlers[Wildcard]))
	subs = append(subs, b.handlers[event]...)
	if event != Wildcard {
		subs = append(subs, b.handlers[Wildcard]...)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(event, payload)
	}
}
