// Package flow sequences the checkout: which view is active and how
// bus events move the user from catalog to confirmation. The
// controller never mutates product, basket or draft fields itself; it
// only calls store operations and picks the next view.
package flow

import (
	"context"
	"log"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
	"github.com/oqdoku94/web-larek-frontend/internal/events"
	"github.com/oqdoku94/web-larek-frontend/internal/shopapi"
	"github.com/oqdoku94/web-larek-frontend/internal/store"
	"github.com/oqdoku94/web-larek-frontend/internal/view"
)

// Controller drives the checkout stage machine. All handlers run on
// the bus dispatch goroutine; the controller is confined to it and
// needs no locking of its own. A handler must never re-emit an event
// it handles.
type Controller struct {
	bus   *events.Bus
	store *store.Store
	api   shopapi.ShopAPI
	page  view.Page
	modal view.Modal

	ctx     context.Context
	stage   Stage
	preview domain.Product

	catalogCard  view.CatalogCard
	previewCard  view.PreviewCard
	basketRow    view.BasketRow
	basketView   view.BasketView
	orderForm    view.OrderFormView
	contactsForm view.ContactsFormView
	success      view.SuccessView
}

func NewController(bus *events.Bus, st *store.Store, api shopapi.ShopAPI, page view.Page, modal view.Modal) *Controller {
	return &Controller{
		bus:   bus,
		store: st,
		api:   api,
		page:  page,
		modal: modal,
		stage: StageCatalog,
	}
}

// Run subscribes the controller to its events. The returned function
// unsubscribes everything. ctx bounds the outbound shop API calls made
// from handlers.
func (c *Controller) Run(ctx context.Context) func() {
	c.ctx = ctx

	unsubscribes := []func(){
		c.bus.Subscribe(events.CatalogChanged, c.onCatalogChanged),
		c.bus.Subscribe(events.BasketChanged, c.onBasketChanged),
		c.bus.Subscribe(events.ProductSelected, c.onProductSelected),
		c.bus.Subscribe(events.BasketToggle, c.onBasketToggle),
		c.bus.Subscribe(events.BasketOpen, c.onBasketOpen),
		c.bus.Subscribe(events.BasketItemRemoved, c.onBasketItemRemoved),
		c.bus.Subscribe(events.BasketSubmit, c.onBasketSubmit),
		c.bus.Subscribe(events.OrderSubmit, c.onOrderSubmit),
		c.bus.Subscribe(events.ContactsSubmit, c.onContactsSubmit),
		c.bus.Subscribe(events.ModalClose, c.onModalClose),
	}
	return func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
	}
}

// Stage returns the current checkout stage.
func (c *Controller) Stage() Stage {
	return c.stage
}

func (c *Controller) onCatalogChanged(_ string, payload any) {
	products, ok := payload.([]domain.Product)
	if !ok {
		log.Printf("catalog-changed: unexpected payload %T", payload)
		return
	}

	cards := make([]*view.Container, 0, len(products))
	for _, p := range products {
		cards = append(cards, c.catalogCard.Render(view.CardData{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Image:    p.Image,
			Price:    p.Price,
		}))
	}
	c.page.SetCatalog(cards)
}

func (c *Controller) onBasketChanged(_ string, payload any) {
	basket, ok := payload.(domain.Basket)
	if !ok {
		log.Printf("basket-changed: unexpected payload %T", payload)
		return
	}
	c.page.SetBasketCount(len(basket.Items))
}

func (c *Controller) onProductSelected(_ string, payload any) {
	id, ok := payload.(string)
	if !ok {
		log.Printf("product-selected: unexpected payload %T", payload)
		return
	}
	if !CanTransition(c.stage, StagePreview) {
		log.Printf("%v: %s -> %s", ErrIllegalTransition, c.stage, StagePreview)
		return
	}

	product, err := c.api.GetProduct(c.ctx, id)
	if err != nil {
		log.Printf("failed to fetch product %s: %v", id, err)
		return
	}

	c.store.UpsertProduct(product)
	c.stage = StagePreview
	c.preview = product
	c.renderPreview()
}

func (c *Controller) onBasketToggle(_ string, payload any) {
	id, ok := payload.(string)
	if !ok {
		log.Printf("basket-toggle: unexpected payload %T", payload)
		return
	}
	if c.stage != StagePreview {
		log.Printf("basket-toggle outside preview, stage = %s", c.stage)
		return
	}

	if c.store.IsInBasket(id) {
		c.store.RemoveItem(id)
	} else {
		product, err := c.store.Product(id)
		if err != nil {
			log.Printf("basket-toggle: %v", err)
			return
		}
		if err := c.store.AddItem(product); err != nil {
			log.Printf("basket-toggle: %v", err)
			return
		}
	}

	// Idempotent toggle: the preview stays open with the flipped state.
	c.renderPreview()
}

func (c *Controller) onBasketOpen(_ string, _ any) {
	if !CanTransition(c.stage, StageBasket) {
		log.Printf("%v: %s -> %s", ErrIllegalTransition, c.stage, StageBasket)
		return
	}
	c.stage = StageBasket
	c.renderBasket()
}

func (c *Controller) onBasketItemRemoved(_ string, payload any) {
	id, ok := payload.(string)
	if !ok {
		log.Printf("basket-item-removed: unexpected payload %T", payload)
		return
	}
	if c.stage != StageBasket {
		log.Printf("basket-item-removed outside basket, stage = %s", c.stage)
		return
	}

	c.store.RemoveItem(id)
	c.renderBasket()
}

func (c *Controller) onBasketSubmit(_ string, _ any) {
	if !CanTransition(c.stage, StageDelivery) {
		log.Printf("%v: %s -> %s", ErrIllegalTransition, c.stage, StageDelivery)
		return
	}
	if len(c.store.Basket().Items) == 0 {
		log.Printf("basket-submit on empty basket ignored")
		return
	}

	c.store.ClearOrderDraft()
	c.stage = StageDelivery
	draft := c.store.OrderDraft()
	c.modal.Show(c.orderForm.Render(view.OrderFormData{
		Address: draft.Address,
		Payment: draft.Payment,
	}))
}

func (c *Controller) onOrderSubmit(_ string, payload any) {
	draft, ok := payload.(domain.OrderDraft)
	if !ok {
		log.Printf("order-submit: unexpected payload %T", payload)
		return
	}
	if !CanTransition(c.stage, StageContacts) {
		log.Printf("%v: %s -> %s", ErrIllegalTransition, c.stage, StageContacts)
		return
	}

	// Rejected input: no draft stored, no stage change.
	if msg := validateOrderDraft(draft); msg != "" {
		c.modal.Show(c.orderForm.Render(view.OrderFormData{
			Address: draft.Address,
			Payment: draft.Payment,
			Err:     msg,
		}))
		return
	}

	c.store.SetOrderDraft(draft)
	c.store.ClearContactsDraft()
	c.stage = StageContacts
	contacts := c.store.ContactsDraft()
	c.modal.Show(c.contactsForm.Render(view.ContactsFormData{
		Email: contacts.Email,
		Phone: contacts.Phone,
	}))
}

func (c *Controller) onContactsSubmit(_ string, payload any) {
	draft, ok := payload.(domain.ContactsDraft)
	if !ok {
		log.Printf("contacts-submit: unexpected payload %T", payload)
		return
	}
	if !CanTransition(c.stage, StageConfirmation) {
		log.Printf("%v: %s -> %s", ErrIllegalTransition, c.stage, StageConfirmation)
		return
	}

	if msg := validateContactsDraft(draft); msg != "" {
		c.modal.Show(c.contactsForm.Render(view.ContactsFormData{
			Email: draft.Email,
			Phone: draft.Phone,
			Err:   msg,
		}))
		return
	}

	c.store.SetContactsDraft(draft)

	order, err := c.store.BuildSubmission()
	if err != nil {
		// Sequencing error: the basket emptied under an open contact
		// form. Surface it and stay put.
		log.Printf("failed to build submission: %v", err)
		c.modal.Show(c.contactsForm.Render(view.ContactsFormData{
			Email: draft.Email,
			Phone: draft.Phone,
			Err:   err.Error(),
		}))
		return
	}

	confirmation, err := c.api.SubmitOrder(c.ctx, order)
	if err != nil {
		// No retry: the user resubmits the form. Basket and drafts are
		// untouched.
		log.Printf("order submission failed: %v", err)
		c.modal.Show(c.contactsForm.Render(view.ContactsFormData{
			Email: draft.Email,
			Phone: draft.Phone,
			Err:   err.Error(),
		}))
		return
	}

	c.stage = StageConfirmation
	c.modal.Show(c.success.Render(view.SuccessData{
		ID:    confirmation.ID,
		Total: confirmation.Total,
	}))

	c.store.ClearBasket()
	c.store.ClearOrderDraft()
	c.store.ClearContactsDraft()

	c.bus.Emit(events.OrderComplete, confirmation)
}

func (c *Controller) onModalClose(_ string, _ any) {
	c.modal.Close()
	c.stage = StageCatalog
	c.preview = domain.Product{}
}

func (c *Controller) renderPreview() {
	c.modal.Show(c.previewCard.Render(view.PreviewData{
		CardData: view.CardData{
			ID:       c.preview.ID,
			Title:    c.preview.Title,
			Category: c.preview.Category,
			Image:    c.preview.Image,
			Price:    c.preview.Price,
		},
		Description: c.preview.Description,
		InBasket:    c.store.IsInBasket(c.preview.ID),
	}))
}

func (c *Controller) renderBasket() {
	basket := c.store.Basket()
	rows := make([]*view.Container, 0, len(basket.Items))
	for i, item := range basket.Items {
		title := item.ProductID
		if product, err := c.store.Product(item.ProductID); err == nil {
			title = product.Title
		}
		rows = append(rows, c.basketRow.Render(view.BasketRowData{
			Index: i + 1,
			ID:    item.ProductID,
			Title: title,
			Price: item.Price,
		}))
	}
	c.modal.Show(c.basketView.Render(view.BasketData{Rows: rows, Total: basket.Total}))
}

func validateOrderDraft(draft domain.OrderDraft) string {
	if draft.Address == "" {
		return "address is required"
	}
	switch draft.Payment {
	case domain.PaymentCard, domain.PaymentCash:
		return ""
	case "":
		return "payment method is required"
	default:
		return "unknown payment method"
	}
}

func validateContactsDraft(draft domain.ContactsDraft) string {
	if draft.Email == "" {
		return "email is required"
	}
	if draft.Phone == "" {
		return "phone is required"
	}
	return ""
}
