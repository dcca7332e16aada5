package view

import (
	"fmt"
	"strings"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
)

// OrderFormData carries the delivery form state, including a validation
// error to surface on a rejected submit.
type OrderFormData struct {
	Address string
	Payment domain.Payment
	Err     string
}

// OrderFormView renders the delivery details step.
type OrderFormView struct{}

func (OrderFormView) Render(data OrderFormData) *Container {
	var b strings.Builder
	b.WriteString("Delivery details\n")
	fmt.Fprintf(&b, "  payment: %s\n", paymentLabel(data.Payment))
	fmt.Fprintf(&b, "  address: %s\n", data.Address)
	if data.Err != "" {
		fmt.Fprintf(&b, "  ! %s\n", data.Err)
	}
	return &Container{Kind: "order-form", Body: b.String()}
}

// ContactsFormData carries the contact form state.
type ContactsFormData struct {
	Email string
	Phone string
	Err   string
}

// ContactsFormView renders the contact details step.
type ContactsFormView struct{}

func (ContactsFormView) Render(data ContactsFormData) *Container {
	var b strings.Builder
	b.WriteString("Contact details\n")
	fmt.Fprintf(&b, "  email: %s\n", data.Email)
	fmt.Fprintf(&b, "  phone: %s\n", data.Phone)
	if data.Err != "" {
		fmt.Fprintf(&b, "  ! %s\n", data.Err)
	}
	return &Container{Kind: "contacts-form", Body: b.String()}
}

// SuccessData is the order confirmation payload.
type SuccessData struct {
	ID    string
	Total float64
}

// SuccessView renders the final confirmation step.
type SuccessView struct{}

func (SuccessView) Render(data SuccessData) *Container {
	var b strings.Builder
	b.WriteString("Order placed\n")
	fmt.Fprintf(&b, "  order id: %s\n", data.ID)
	fmt.Fprintf(&b, "  written off: %s\n", formatTotal(data.Total))
	b.WriteString("[ continue shopping ]\n")
	return &Container{Kind: "success", Body: b.String()}
}

func paymentLabel(p domain.Payment) string {
	if p == "" {
		return "not selected"
	}
	return string(p)
}
