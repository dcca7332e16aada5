package domain

// BasketItem pairs a product id with the price captured when the item
// was added. The captured price never changes, even if the catalog
// entry is re-priced mid-session.
type BasketItem struct {
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
}

// Basket is a snapshot of the user's current selection, price-locked at
// add-time. Total is always the sum of the captured item prices.
type Basket struct {
	Items []BasketItem `json:"items"`
	Total float64      `json:"total"`
}
