// Package pdf renders an invoice onto an absolute-positioned A4 page.
// The drawing-canvas capability is abstracted behind Canvas so the
// layout stays testable without a PDF library in the loop.
package pdf

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// Canvas is the minimal drawing surface the renderer needs. Coordinates
// are millimetres from the top-left corner of the page.
type Canvas interface {
	SetFontSize(size float64)
	SetTextColor(r, g, b int)
	// Text draws s with its left edge at x, or its right edge at x
	// when alignRight is set.
	Text(x, y float64, s string, alignRight bool)
	SetFillColor(r, g, b int)
	Rect(x, y, w, h float64)
	// SplitText wraps s into lines no wider than width.
	SplitText(s string, width float64) []string
	// Output finalizes the document.
	Output() ([]byte, error)
}

// CanvasFactory opens a fresh single-page canvas. A nil factory means
// the capability is unavailable.
type CanvasFactory func() Canvas

type fpdfCanvas struct {
	doc       *gofpdf.Fpdf
	translate func(string) string
}

// NewFpdfCanvas returns a gofpdf-backed A4 portrait canvas.
func NewFpdfCanvas() Canvas {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 10)
	doc.AddPage()
	return &fpdfCanvas{
		doc: doc,
		// Core fonts are cp1252; the translator keeps "£" intact.
		translate: doc.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *fpdfCanvas) SetFontSize(size float64) {
	c.doc.SetFontSize(size)
}

func (c *fpdfCanvas) SetTextColor(r, g, b int) {
	c.doc.SetTextColor(r, g, b)
}

func (c *fpdfCanvas) Text(x, y float64, s string, alignRight bool) {
	s = c.translate(s)
	if alignRight {
		x -= c.doc.GetStringWidth(s)
	}
	c.doc.Text(x, y, s)
}

func (c *fpdfCanvas) SetFillColor(r, g, b int) {
	c.doc.SetFillColor(r, g, b)
}

func (c *fpdfCanvas) Rect(x, y, w, h float64) {
	c.doc.Rect(x, y, w, h, "F")
}

func (c *fpdfCanvas) SplitText(s string, width float64) []string {
	return c.doc.SplitText(c.translate(s), width)
}

func (c *fpdfCanvas) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
