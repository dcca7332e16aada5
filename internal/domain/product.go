package domain

// Product is an immutable catalog entry. Entries are replaced wholesale
// when the catalog is reloaded or a single product is refreshed after a
// detail view.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Price       *float64 `json:"price"`
}

// Purchasable reports whether the product can enter the basket.
// Products without a price are display-only.
func (p Product) Purchasable() bool {
	return p.Price != nil && *p.Price > 0
}

// PriceOrZero returns the price value, or 0 for display-only products.
func (p Product) PriceOrZero() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// Known catalog categories. Unknown categories render with the
// "other" style.
const (
	CategorySoftSkill  = "soft-skill"
	CategoryHardSkill  = "hard-skill"
	CategoryAdditional = "additional"
	CategoryButton     = "button"
	CategoryOther      = "other"
)

// CategoryStyle maps a category to its display style name.
func CategoryStyle(category string) string {
	switch category {
	case CategorySoftSkill:
		return "soft"
	case CategoryHardSkill:
		return "hard"
	case CategoryAdditional:
		return "additional"
	case CategoryButton:
		return "button"
	default:
		return "other"
	}
}
