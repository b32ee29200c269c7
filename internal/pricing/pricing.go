// Package pricing holds the money presentation rules of the store: Brazilian
// Real formatting, promotional price selection and cart totals.
package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatBRL renders a price in Brazilian Real, e.g. "R$ 1.234,56".
func FormatBRL(value float64) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("R$ %.2f", value)
}

// EffectivePrice returns the promotional price when one is set, otherwise the
// regular price.
func EffectivePrice(price, promoPrice float64) float64 {
	if promoPrice > 0 {
		return promoPrice
	}
	return price
}

// CartLine is one priced line of a cart: a quantity plus the line totals at
// the regular and the promotional price.
type CartLine struct {
	Quantity       int
	LineTotal      float64
	PromoLineTotal float64
}

// CartTotalQty sums the quantities of all cart lines.
func CartTotalQty(lines []CartLine) int {
	var total int
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

// CartTotals sums the cart lines, preferring the promotional line total
// whenever one is set.
func CartTotals(lines []CartLine) float64 {
	var total float64
	for _, line := range lines {
		if line.PromoLineTotal > 0 {
			total += line.PromoLineTotal
		} else {
			total += line.LineTotal
		}
	}
	return total
}
