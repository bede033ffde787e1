package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/invoicepad/internal/invoice/domain"
)

func sampleInvoice() domain.Invoice {
	return domain.Invoice{
		ID:            "01HV0000000000000000000000",
		InvoiceNumber: "INV-20240305-0042",
		ClientName:    "Ada Lovelace",
		ClientEmail:   "ada@example.com",
		LineItems: []domain.LineItem{
			{Description: "Consulting", Quantity: 5, UnitPrice: 100},
			{Description: "Hosting", Quantity: 1, UnitPrice: 20},
		},
		IsVATRegistered: true,
		VATRate:         0.20,
		Subtotal:        520,
		VAT:             104,
		Total:           624,
		Status:          domain.InvoiceStatusSent,
		CreatedAt:       "2024-03-05T09:30:00Z",
	}
}

func TestBuildDocument(t *testing.T) {
	settings := domain.Settings{
		BusinessName:  "Acme Ltd",
		VATNumber:     "GB123456789",
		SortCode:      "12-34-56",
		AccountNumber: "87654321",
		AccountName:   "Acme Ltd",
	}

	doc := BuildDocument(sampleInvoice(), settings)

	assert.Equal(t, "INV-20240305-0042", doc.InvoiceNumber)
	assert.Equal(t, "05/03/2024", doc.Date)
	assert.Equal(t, domain.InvoiceStatusSent, doc.Status)

	assert.Equal(t, "Acme Ltd", doc.From.Name)
	assert.Equal(t, []string{"VAT: GB123456789"}, doc.From.Lines)

	assert.Equal(t, "Ada Lovelace", doc.BillTo.Name)
	assert.Equal(t, []string{"ada@example.com"}, doc.BillTo.Lines)

	require.Len(t, doc.Items, 2)
	assert.Equal(t, ItemRow{Description: "Consulting", Quantity: "5", Rate: "£100.00", Amount: "£500.00"}, doc.Items[0])

	assert.True(t, doc.Totals.ShowVAT)
	assert.Equal(t, "VAT (20%)", doc.Totals.VATLabel)
	assert.Equal(t, "£104.00", doc.Totals.VAT)
	assert.Equal(t, "£624.00", doc.Totals.Total)

	require.NotNil(t, doc.Payment)
	assert.Equal(t, "12-34-56", doc.Payment.SortCode)
	assert.Equal(t, "Acme Ltd", doc.Payment.AccountName)
}

func TestBuildDocument_FractionalQuantityRendersExactly(t *testing.T) {
	inv := sampleInvoice()
	inv.LineItems = []domain.LineItem{
		{Description: "Consulting", Quantity: 2.555, UnitPrice: 100},
	}

	doc := BuildDocument(inv, domain.Settings{})

	require.Len(t, doc.Items, 1)
	assert.Equal(t, "2.555", doc.Items[0].Quantity)
}

func TestBuildDocument_ConditionalSections(t *testing.T) {
	inv := sampleInvoice()
	inv.IsVATRegistered = false
	inv.VAT = 0
	inv.Total = inv.Subtotal

	doc := BuildDocument(inv, domain.Settings{})

	// Unset business name falls back to the placeholder.
	assert.Equal(t, "Your Business", doc.From.Name)
	assert.Empty(t, doc.From.Lines)

	assert.False(t, doc.Totals.ShowVAT)
	assert.Empty(t, doc.Totals.VATLabel)

	assert.Empty(t, doc.Notes)
	assert.Nil(t, doc.Payment)
}

func TestBuildDocument_PaymentNeedsBothFields(t *testing.T) {
	doc := BuildDocument(sampleInvoice(), domain.Settings{SortCode: "12-34-56"})
	assert.Nil(t, doc.Payment)

	doc = BuildDocument(sampleInvoice(), domain.Settings{AccountNumber: "87654321"})
	assert.Nil(t, doc.Payment)
}

func TestBuildDocument_Idempotent(t *testing.T) {
	inv := sampleInvoice()
	settings := domain.Settings{BusinessName: "Acme Ltd"}

	first := BuildDocument(inv, settings)
	second := BuildDocument(inv, settings)

	assert.Equal(t, first, second)
}

func TestRenderHTML_EscapesUserInput(t *testing.T) {
	inv := sampleInvoice()
	inv.ClientName = `<script>alert("x")</script>`
	inv.Notes = `a < b & c`

	renderer := NewRenderer()
	html, err := renderer.RenderHTML(BuildDocument(inv, domain.Settings{}))
	require.NoError(t, err)

	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "a &lt; b &amp; c")
}

func TestRenderHTML_Idempotent(t *testing.T) {
	renderer := NewRenderer()
	doc := BuildDocument(sampleInvoice(), domain.Settings{BusinessName: "Acme Ltd"})

	first, err := renderer.RenderHTML(doc)
	require.NoError(t, err)
	second, err := renderer.RenderHTML(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "INV-20240305-0042")
	assert.Contains(t, first, "£624.00")
}

func TestRenderHTML_VATRowOnlyWhenRegistered(t *testing.T) {
	renderer := NewRenderer()

	inv := sampleInvoice()
	withVAT, err := renderer.RenderHTML(BuildDocument(inv, domain.Settings{}))
	require.NoError(t, err)
	assert.Contains(t, withVAT, "VAT (20%)")

	inv.IsVATRegistered = false
	withoutVAT, err := renderer.RenderHTML(BuildDocument(inv, domain.Settings{}))
	require.NoError(t, err)
	assert.NotContains(t, withoutVAT, "VAT (20%)")
}
