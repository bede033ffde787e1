package pdf

import (
	"strings"

	"github.com/smallbiznis/invoicepad/internal/invoice/domain"
	"github.com/smallbiznis/invoicepad/internal/invoice/format"
)

// Page geometry and cursor increments, in millimetres.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 20.0

	headingStep  = 15.0
	fieldStep    = 6.0
	addrLineStep = 5.0
	tableRowStep = 10.0
	sectionGap   = 10.0
)

type rgb struct{ r, g, b int }

var (
	colorPrimary = rgb{37, 99, 235}   // #2563EB
	colorBlack   = rgb{0, 0, 0}       // #000000
	colorGray    = rgb{102, 102, 102} // #666666
	colorWhite   = rgb{255, 255, 255} // #FFFFFF
	colorShade   = rgb{243, 244, 246} // #F3F4F6

	colorPaid    = rgb{16, 185, 129} // #10B981
	colorOverdue = rgb{239, 68, 68}  // #EF4444
	colorSent    = rgb{245, 158, 11} // #F59E0B
)

// Generator lays an invoice out on a Canvas. A nil factory models the
// missing drawing capability and yields ErrPDFUnavailable instead of a
// crash.
type Generator struct {
	newCanvas CanvasFactory
}

func NewGenerator(factory CanvasFactory) *Generator {
	return &Generator{newCanvas: factory}
}

// Generate draws the document and returns its bytes together with the
// download file name. Content overflowing one page overlaps the footer
// rather than paginating.
func (g *Generator) Generate(inv domain.Invoice, settings domain.Settings) (domain.PDFExport, error) {
	if g == nil || g.newCanvas == nil {
		return domain.PDFExport{}, domain.ErrPDFUnavailable
	}
	canvas := g.newCanvas()
	if canvas == nil {
		return domain.PDFExport{}, domain.ErrPDFUnavailable
	}

	drawInvoice(canvas, inv, settings)

	content, err := canvas.Output()
	if err != nil {
		return domain.PDFExport{}, err
	}
	return domain.PDFExport{
		FileName: format.PDFFileName(inv.InvoiceNumber),
		Content:  content,
	}, nil
}

func drawInvoice(c Canvas, inv domain.Invoice, settings domain.Settings) {
	y := margin

	// Header
	text(c, "INVOICE", margin, y, 24, colorPrimary, false)
	y += headingStep

	text(c, "Invoice #: "+inv.InvoiceNumber, margin, y, 12, colorBlack, false)
	y += fieldStep
	text(c, "Date: "+format.Date(inv.CreatedAt), margin, y, 10, colorGray, false)
	y += fieldStep
	if inv.Total > 0 {
		text(c, strings.ToUpper(string(inv.Status)), pageWidth-margin, margin, 10, statusColor(inv.Status), true)
	}

	y += sectionGap * 2

	// From
	text(c, "FROM", margin, y, 8, colorGray, false)
	y += fieldStep
	text(c, settings.DisplayBusinessName(), margin, y, 12, colorBlack, false)
	y += fieldStep
	if settings.BusinessAddress != "" {
		for _, line := range c.SplitText(settings.BusinessAddress, 80) {
			text(c, line, margin, y, 10, colorGray, false)
			y += addrLineStep
		}
	}
	if settings.VATNumber != "" {
		text(c, "VAT: "+settings.VATNumber, margin, y, 10, colorGray, false)
		y += fieldStep
	}

	y += sectionGap

	// Bill To
	text(c, "BILL TO", margin, y, 8, colorGray, false)
	y += fieldStep
	text(c, inv.ClientName, margin, y, 12, colorBlack, false)
	y += fieldStep
	if inv.ClientCompany != "" {
		text(c, inv.ClientCompany, margin, y, 10, colorGray, false)
		y += fieldStep
	}
	text(c, inv.ClientEmail, margin, y, 10, colorGray, false)
	y += fieldStep
	if inv.ClientAddress != "" {
		text(c, inv.ClientAddress, margin, y, 10, colorGray, false)
		y += sectionGap
	}

	y += sectionGap

	// Table header band
	tableTop := y
	fill(c, margin, tableTop, pageWidth-2*margin, 10, colorPrimary)
	y = tableTop + 7
	text(c, "DESCRIPTION", margin+2, y, 9, colorWhite, false)
	text(c, "QTY", pageWidth-margin-35, y, 9, colorWhite, false)
	text(c, "RATE", pageWidth-margin-18, y, 9, colorWhite, false)
	text(c, "AMOUNT", pageWidth-margin, y, 9, colorWhite, true)

	y += tableRowStep

	// Rows, every odd-indexed one on a light band
	for idx, item := range inv.LineItems {
		if idx%2 == 1 {
			fill(c, margin, y-4, pageWidth-2*margin, 10, colorShade)
		}
		text(c, item.Description, margin+2, y, 9, colorBlack, false)
		text(c, format.Quantity(item.Quantity), pageWidth-margin-35, y, 9, colorBlack, false)
		text(c, format.Currency(item.UnitPrice), pageWidth-margin-18, y, 9, colorBlack, false)
		text(c, format.Currency(item.Amount()), pageWidth-margin, y, 9, colorBlack, true)
		y += tableRowStep
	}

	y += sectionGap

	// Totals column
	totalsX := pageWidth - margin - 50
	text(c, "Subtotal:", totalsX, y, 10, colorGray, false)
	text(c, format.Currency(inv.Subtotal), pageWidth-margin, y, 10, colorBlack, true)
	y += 7

	if inv.IsVATRegistered {
		text(c, format.VATLabel(inv.VATRate)+":", totalsX, y, 10, colorGray, false)
		text(c, format.Currency(inv.VAT), pageWidth-margin, y, 10, colorBlack, true)
		y += 7
	}

	fill(c, totalsX-5, y-4, 55, 12, colorPrimary)
	text(c, "TOTAL:", totalsX, y+3, 12, colorWhite, false)
	text(c, format.Currency(inv.Total), pageWidth-margin, y+3, 12, colorWhite, true)

	// Payment footer, anchored near the page bottom
	if settings.HasPaymentDetails() {
		y = pageHeight - 30
		text(c, "Payment Details", margin, y, 10, colorGray, false)
		y += fieldStep
		text(c, "Sort Code: "+settings.SortCode+"  |  Account: "+settings.AccountNumber, margin, y, 9, colorGray, false)
	}
}

func text(c Canvas, s string, x, y, size float64, color rgb, alignRight bool) {
	c.SetFontSize(size)
	c.SetTextColor(color.r, color.g, color.b)
	c.Text(x, y, s, alignRight)
}

func fill(c Canvas, x, y, w, h float64, color rgb) {
	c.SetFillColor(color.r, color.g, color.b)
	c.Rect(x, y, w, h)
}

func statusColor(status domain.InvoiceStatus) rgb {
	switch status {
	case domain.InvoiceStatusPaid:
		return colorPaid
	case domain.InvoiceStatusOverdue:
		return colorOverdue
	default:
		return colorSent
	}
}
