// Package checkout totals a cart snapshot for display.
package checkout

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"motorbikes/pkg/catalog"
)

// Line is one cart entry as shown in the summary.
type Line struct {
	ListingID string          `json:"listingId"`
	Make      string          `json:"make"`
	Model     string          `json:"model"`
	Price     decimal.Decimal `json:"price"`
}

// Summary is the checkout view of a cart.
type Summary struct {
	Lines     []Line          `json:"lines"`
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
	Formatted string          `json:"formattedTotal"`
}

// Summarize builds the summary for cart. Entries keep their cart order.
func Summarize(cart []catalog.Listing) Summary {
	s := Summary{Lines: make([]Line, 0, len(cart)), Count: len(cart), Total: decimal.Zero}
	for _, l := range cart {
		price := decimal.NewFromFloat(l.Price)
		s.Lines = append(s.Lines, Line{ListingID: l.ID, Make: l.Make, Model: l.Model, Price: price})
		s.Total = s.Total.Add(price)
	}
	s.Formatted = FormatPrice(s.Total)
	return s
}

// FormatPrice renders an amount in dollars with two decimal places.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// WriteText renders the summary as plain text.
func (s Summary) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Checkout"); err != nil {
		return err
	}
	for _, l := range s.Lines {
		if _, err := fmt.Fprintf(w, "%s %s\nPrice: $%s\n", l.Make, l.Model, l.Price.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total: %s\n", s.Formatted)
	return err
}
