package view

import (
	"fmt"
	"strings"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
)

// CardData is the shared card payload for catalog and preview variants.
type CardData struct {
	ID       string
	Title    string
	Category string
	Image    string
	Price    *float64
}

// CatalogCard renders one product tile on the catalog page.
type CatalogCard struct{}

func (CatalogCard) Render(data CardData) *Container {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", domain.CategoryStyle(data.Category), data.Title)
	fmt.Fprintf(&b, "  %s  (id %s)\n", FormatPrice(data.Price), data.ID)
	return &Container{Kind: "catalog-card", Body: b.String()}
}

// PreviewData extends the card payload for the product detail modal.
type PreviewData struct {
	CardData
	Description string
	InBasket    bool
}

// PreviewCard renders the product detail modal, with the basket button
// reflecting current membership.
type PreviewCard struct{}

func (PreviewCard) Render(data PreviewData) *Container {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", domain.CategoryStyle(data.Category), data.Title)
	fmt.Fprintf(&b, "%s\n", data.Description)
	fmt.Fprintf(&b, "%s\n", FormatPrice(data.Price))

	switch {
	case data.Price == nil || *data.Price <= 0:
		b.WriteString("(not for sale)\n")
	case data.InBasket:
		b.WriteString("[ remove from basket ]\n")
	default:
		b.WriteString("[ add to basket ]\n")
	}
	return &Container{Kind: "preview-card", Body: b.String()}
}

// BasketRowData is one line of the basket list.
type BasketRowData struct {
	Index int
	ID    string
	Title string
	Price float64
}

// BasketRow renders one basket line with its stable index.
type BasketRow struct{}

func (BasketRow) Render(data BasketRowData) *Container {
	body := fmt.Sprintf("%d. %s — %s (id %s)\n",
		data.Index, data.Title, formatTotal(data.Price), data.ID)
	return &Container{Kind: "basket-row", Body: body}
}
