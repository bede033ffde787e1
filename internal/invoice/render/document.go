// Package render projects a stored invoice plus the business settings
// into a structured document. The tree is presentation-agnostic; the
// HTML serializer in this package is one consumer, the PDF renderer
// walks the same source data through its own layout.
package render

import (
	"github.com/smallbiznis/invoicepad/internal/invoice/domain"
	"github.com/smallbiznis/invoicepad/internal/invoice/format"
)

// Document is the on-screen detail view of one invoice.
type Document struct {
	InvoiceNumber string
	Date          string
	Status        domain.InvoiceStatus

	From   Party
	BillTo Party

	Items  []ItemRow
	Totals TotalsBlock

	Notes   string
	Payment *PaymentBlock
}

// Party is an issuer or recipient block. Lines carries only the
// detail lines that are actually present.
type Party struct {
	Name  string
	Lines []string
}

// ItemRow is one pre-formatted table row.
type ItemRow struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

// TotalsBlock carries the formatted frozen amounts. The VAT row is
// rendered only when ShowVAT is set.
type TotalsBlock struct {
	Subtotal string
	ShowVAT  bool
	VATLabel string
	VAT      string
	Total    string
}

// PaymentBlock is present only when both sort code and account number
// are configured. AccountName may be empty.
type PaymentBlock struct {
	SortCode      string
	AccountNumber string
	AccountName   string
}

// BuildDocument is a pure projection of (invoice, settings). Calling it
// twice with the same inputs yields an identical tree.
func BuildDocument(inv domain.Invoice, settings domain.Settings) Document {
	doc := Document{
		InvoiceNumber: inv.InvoiceNumber,
		Date:          format.Date(inv.CreatedAt),
		Status:        inv.Status,
		Notes:         inv.Notes,
	}

	doc.From = Party{Name: settings.DisplayBusinessName()}
	if settings.BusinessAddress != "" {
		doc.From.Lines = append(doc.From.Lines, settings.BusinessAddress)
	}
	if settings.VATNumber != "" {
		doc.From.Lines = append(doc.From.Lines, "VAT: "+settings.VATNumber)
	}

	doc.BillTo = Party{Name: inv.ClientName}
	if inv.ClientCompany != "" {
		doc.BillTo.Lines = append(doc.BillTo.Lines, inv.ClientCompany)
	}
	doc.BillTo.Lines = append(doc.BillTo.Lines, inv.ClientEmail)
	if inv.ClientAddress != "" {
		doc.BillTo.Lines = append(doc.BillTo.Lines, inv.ClientAddress)
	}

	doc.Items = make([]ItemRow, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		doc.Items = append(doc.Items, ItemRow{
			Description: item.Description,
			Quantity:    format.Quantity(item.Quantity),
			Rate:        format.Currency(item.UnitPrice),
			Amount:      format.Currency(item.Amount()),
		})
	}

	doc.Totals = TotalsBlock{
		Subtotal: format.Currency(inv.Subtotal),
		ShowVAT:  inv.IsVATRegistered,
		Total:    format.Currency(inv.Total),
	}
	if inv.IsVATRegistered {
		doc.Totals.VATLabel = format.VATLabel(inv.VATRate)
		doc.Totals.VAT = format.Currency(inv.VAT)
	}

	if settings.HasPaymentDetails() {
		doc.Payment = &PaymentBlock{
			SortCode:      settings.SortCode,
			AccountNumber: settings.AccountNumber,
			AccountName:   settings.AccountName,
		}
	}

	return doc
}
