package domain

import "context"

// RawLineItem is one uncollected form row: free-text description,
// quantity and price exactly as the user typed them.
type RawLineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
}

// CreateInvoiceRequest carries everything needed to build one record.
type CreateInvoiceRequest struct {
	ClientName      string        `json:"clientName"`
	ClientCompany   string        `json:"clientCompany"`
	ClientEmail     string        `json:"clientEmail"`
	ClientAddress   string        `json:"clientAddress"`
	Items           []RawLineItem `json:"items"`
	IsVATRegistered bool          `json:"isVATRegistered"`
	VATRate         float64       `json:"vatRate"`
	Notes           string        `json:"notes"`
}

// PDFExport is one generated document ready to hand to the user.
type PDFExport struct {
	FileName string
	Content  []byte
}

// ShareResult reports which path actually delivered the invoice.
type ShareResult struct {
	Shared   bool       `json:"shared"`
	Fallback *PDFExport `json:"-"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)

	Settings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) error

	RenderHTML(ctx context.Context, id string) (string, error)
	RenderPDF(ctx context.Context, id string) (PDFExport, error)
	Share(ctx context.Context, id string) (ShareResult, error)
}
