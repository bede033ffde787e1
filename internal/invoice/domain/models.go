// Package domain contains the persisted invoice records and the
// business-settings singleton.
package domain

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// LineItem is one billable entry on an invoice. The line total is always
// derived as Quantity*UnitPrice and never stored.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Amount returns the derived line total.
func (li LineItem) Amount() float64 {
	return li.Quantity * li.UnitPrice
}

// Totals holds the derived amounts for a set of line items.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	VAT      float64 `json:"vat"`
	Total    float64 `json:"total"`
}

// Invoice is an append-only record. Once created it is immutable: no
// update or delete path exists, and the stored subtotal/vat/total are
// frozen at creation time rather than recomputed from LineItems.
//
// JSON field names match the on-disk records the key-value store holds.
type Invoice struct {
	ID              string        `json:"id"`
	InvoiceNumber   string        `json:"invoiceNumber"`
	ClientName      string        `json:"clientName"`
	ClientCompany   string        `json:"clientCompany"`
	ClientEmail     string        `json:"clientEmail"`
	ClientAddress   string        `json:"clientAddress"`
	LineItems       []LineItem    `json:"lineItems"`
	IsVATRegistered bool          `json:"isVATRegistered"`
	VATRate         float64       `json:"vatRate"`
	Subtotal        float64       `json:"subtotal"`
	VAT             float64       `json:"vat"`
	Total           float64       `json:"total"`
	Notes           string        `json:"notes"`
	Status          InvoiceStatus `json:"status"`
	CreatedAt       string        `json:"createdAt"`
}

// Settings is the issuing business profile. Every field is optional and
// the record is saved wholesale.
type Settings struct {
	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`
	BusinessEmail   string `json:"businessEmail"`
	BusinessPhone   string `json:"businessPhone"`
	VATNumber       string `json:"vatNumber"`
	CompaniesHouse  string `json:"companiesHouse"`
	SortCode        string `json:"sortCode"`
	AccountNumber   string `json:"accountNumber"`
	AccountName     string `json:"accountName"`
	BankName        string `json:"bankName"`
}

// HasPaymentDetails reports whether the settings carry enough bank
// detail to show a payment section on rendered documents.
func (s Settings) HasPaymentDetails() bool {
	return s.SortCode != "" && s.AccountNumber != ""
}

// DisplayBusinessName falls back to a placeholder when the business
// profile has not been filled in yet.
func (s Settings) DisplayBusinessName() string {
	if s.BusinessName == "" {
		return "Your Business"
	}
	return s.BusinessName
}
