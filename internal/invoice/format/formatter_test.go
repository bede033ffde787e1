package format

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{500, "£500.00"},
		{0, "£0.00"},
		{19.9, "£19.90"},
		{1234.5, "£1,234.50"},
		{1234567.89, "£1,234,567.89"},
		{-1234.5, "£-1,234.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.amount))
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "05/03/2024", Date("2024-03-05T09:30:00Z"))
	assert.Equal(t, "31/12/2023", Date("2023-12-31T23:59:59.123Z"))
	assert.Equal(t, "05/03/2024", Date("2024-03-05"))
	// Unparseable input renders as-is rather than erroring.
	assert.Equal(t, "not a date", Date("not a date"))
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "5", Quantity(5))
	assert.Equal(t, "2.5", Quantity(2.5))
	// No rounding: the stored value renders exactly.
	assert.Equal(t, "2.555", Quantity(2.555))
	assert.Equal(t, "0.125", Quantity(0.125))
}

func TestVATLabel(t *testing.T) {
	assert.Equal(t, "VAT (20%)", VATLabel(0.20))
	assert.Equal(t, "VAT (5%)", VATLabel(0.05))
	assert.Equal(t, "VAT (0%)", VATLabel(0))
}

func TestInvoiceNumber(t *testing.T) {
	createdAt := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	number, err := InvoiceNumber(DefaultInvoiceNumberTemplate, createdAt, 42)
	assert.NoError(t, err)
	assert.Equal(t, "INV-20240305-0042", number)

	assert.Regexp(t, regexp.MustCompile(`^INV-20240305-\d{4}$`), number)
}

func TestInvoiceNumber_ZeroSequence(t *testing.T) {
	createdAt := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	number, err := InvoiceNumber(DefaultInvoiceNumberTemplate, createdAt, 0)
	assert.NoError(t, err)
	assert.Equal(t, "INV-20240305-0000", number)
}

func TestInvoiceNumber_Errors(t *testing.T) {
	createdAt := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	_, err := InvoiceNumber("", createdAt, 1)
	assert.Error(t, err)

	_, err = InvoiceNumber("INV-{NOPE}", createdAt, 1)
	assert.Error(t, err)

	_, err = InvoiceNumber(DefaultInvoiceNumberTemplate, createdAt, -1)
	assert.Error(t, err)
}

func TestPDFFileName(t *testing.T) {
	assert.Equal(t, "Invoice_INV-20240305-0042.pdf", PDFFileName("INV-20240305-0042"))
	assert.Equal(t, "Invoice_INV-2024-03.pdf", PDFFileName("INV/2024/03"))
}
