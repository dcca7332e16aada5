package store

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyBasket     = errors.New("basket is empty, nothing to submit")
	ErrNotPurchasable  = errors.New("product has no price and cannot be added to the basket")
)
