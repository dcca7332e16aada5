package domain

// Payment is the payment method chosen on the delivery step.
type Payment string

const (
	PaymentCard Payment = "card"
	PaymentCash Payment = "cash"
)

// OrderDraft holds the delivery form input before final submission.
// Replaced wholesale when the delivery form submits.
type OrderDraft struct {
	Address string  `json:"address"`
	Payment Payment `json:"payment"`
}

// ContactsDraft holds the contact form input before final submission.
type ContactsDraft struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order is the finalized submission payload sent once to the shop API.
// Items contains only product ids with a positive captured price.
type Order struct {
	Payment Payment  `json:"payment"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Total   float64  `json:"total"`
	Items   []string `json:"items"`
}

// OrderConfirmation is the shop API response to a submitted order.
type OrderConfirmation struct {
	ID    string  `json:"id"`
	Total float64 `json:"total"`
}
