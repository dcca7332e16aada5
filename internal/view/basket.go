package view

import (
	"fmt"
	"strings"
)

// BasketData is the basket modal payload: pre-rendered rows plus the
// price-locked total.
type BasketData struct {
	Rows  []*Container
	Total float64
}

// BasketView renders the basket modal. Checkout is unavailable while
// the total is zero.
type BasketView struct{}

func (BasketView) Render(data BasketData) *Container {
	var b strings.Builder
	b.WriteString("Basket\n")
	if len(data.Rows) == 0 {
		b.WriteString("  (empty)\n")
	}
	for _, row := range data.Rows {
		b.WriteString("  " + row.Body)
	}
	fmt.Fprintf(&b, "Total: %s\n", formatTotal(data.Total))
	if data.Total > 0 {
		b.WriteString("[ checkout ]\n")
	} else {
		b.WriteString("( checkout unavailable )\n")
	}
	return &Container{Kind: "basket", Body: b.String()}
}
