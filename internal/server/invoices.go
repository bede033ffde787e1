package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/invoicepad/internal/invoice/calc"
	"github.com/smallbiznis/invoicepad/internal/invoice/domain"
)

func (s *Server) ListInvoices(c *gin.Context) {
	invoices, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req domain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	inv, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (s *Server) GetInvoice(c *gin.Context) {
	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) InvoiceHTML(c *gin.Context) {
	html, err := s.invoiceSvc.RenderHTML(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) InvoicePDF(c *gin.Context) {
	export, err := s.invoiceSvc.RenderPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", export.Content)
}

func (s *Server) ShareInvoice(c *gin.Context) {
	result, err := s.invoiceSvc.Share(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if result.Shared {
		c.JSON(http.StatusOK, gin.H{"shared": true})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Fallback.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", result.Fallback.Content)
}

func (s *Server) GetSettings(c *gin.Context) {
	settings, err := s.invoiceSvc.Settings(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) SaveSettings(c *gin.Context) {
	var settings domain.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.invoiceSvc.SaveSettings(c.Request.Context(), settings); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, s.defaults.Get())
}

type previewRequest struct {
	Items           []domain.RawLineItem `json:"items"`
	IsVATRegistered bool                 `json:"isVATRegistered"`
	VATRate         float64              `json:"vatRate"`
}

// PreviewTotals is the reactive recompute surface: the UI calls it on
// every line-item or VAT change to refresh the running totals.
func (s *Server) PreviewTotals(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, calc.LivePreview(req.Items, req.IsVATRegistered, req.VATRate))
}

func (s *Server) respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err), "code": err.Error()})
	case errors.Is(err, domain.ErrInvoiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
	case errors.Is(err, domain.ErrPDFUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "PDF generation not available"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingClientName):
		return "client name is required"
	case errors.Is(err, domain.ErrMissingClientEmail):
		return "client email is required"
	case errors.Is(err, domain.ErrNoLineItems):
		return "Please add at least one item"
	default:
		return "invalid request"
	}
}
