package view

import "strconv"

// FormatPrice renders a price for display. Display-only products show
// as "Priceless".
func FormatPrice(price *float64) string {
	if price == nil || *price <= 0 {
		return "Priceless"
	}
	return strconv.FormatFloat(*price, 'f', -1, 64) + " synapses"
}

func formatTotal(total float64) string {
	return strconv.FormatFloat(total, 'f', -1, 64) + " synapses"
}
