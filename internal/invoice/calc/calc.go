// Package calc holds the pure computation pipeline: collecting line
// items out of raw form rows and deriving subtotal/VAT/total from them.
// Nothing in here touches the store; the host re-invokes these
// functions after every relevant state change.
package calc

import (
	"strconv"
	"strings"

	"github.com/smallbiznis/invoicepad/internal/invoice/domain"
)

// CollectLineItems turns raw form rows into line items. Rows with an
// empty (after trimming) description are skipped entirely. A quantity
// that does not parse, or parses to zero, falls back to 1; a price that
// does not parse falls back to 0. Negative values pass through.
func CollectLineItems(rows []domain.RawLineItem) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(rows))
	for _, row := range rows {
		desc := strings.TrimSpace(row.Description)
		if desc == "" {
			continue
		}
		qty := parseNumber(row.Quantity, 1)
		if qty == 0 {
			qty = 1
		}
		items = append(items, domain.LineItem{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   parseNumber(row.Price, 0),
		})
	}
	return items
}

// ComputeTotals derives the frozen amounts persisted on a record.
func ComputeTotals(items []domain.LineItem, isVATRegistered bool, vatRate float64) domain.Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount()
	}
	return applyVAT(subtotal, isVATRegistered, vatRate)
}

// Preview is the live on-screen surface: unlike CollectLineItems it
// counts every row, blank descriptions included, because the user may
// not have typed a description yet when the amounts update.
type Preview struct {
	LineTotals []float64     `json:"lineTotals"`
	Totals     domain.Totals `json:"totals"`
}

// LivePreview recomputes the running totals for the form as it stands.
// Unparseable quantities count as 0 here, not 1: an untouched quantity
// field must not contribute to the running subtotal.
func LivePreview(rows []domain.RawLineItem, isVATRegistered bool, vatRate float64) Preview {
	lineTotals := make([]float64, len(rows))
	var subtotal float64
	for i, row := range rows {
		total := parseNumber(row.Quantity, 0) * parseNumber(row.Price, 0)
		lineTotals[i] = total
		subtotal += total
	}
	return Preview{
		LineTotals: lineTotals,
		Totals:     applyVAT(subtotal, isVATRegistered, vatRate),
	}
}

func applyVAT(subtotal float64, isVATRegistered bool, vatRate float64) domain.Totals {
	var vat float64
	if isVATRegistered {
		vat = subtotal * vatRate
	}
	return domain.Totals{
		Subtotal: subtotal,
		VAT:      vat,
		Total:    subtotal + vat,
	}
}

func parseNumber(raw string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback
	}
	return value
}
