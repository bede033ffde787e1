// Package service implements the invoice operations: the sole creation
// path, read access, settings, and the two render targets.
package service

import (
	"context"
	"crypto/rand"
	"io"
	mathrand "math/rand/v2"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/invoicepad/internal/clock"
	"github.com/smallbiznis/invoicepad/internal/config"
	"github.com/smallbiznis/invoicepad/internal/invoice/calc"
	"github.com/smallbiznis/invoicepad/internal/invoice/domain"
	"github.com/smallbiznis/invoicepad/internal/invoice/format"
	"github.com/smallbiznis/invoicepad/internal/invoice/pdf"
	"github.com/smallbiznis/invoicepad/internal/invoice/render"
	"github.com/smallbiznis/invoicepad/internal/invoice/store"
	"github.com/smallbiznis/invoicepad/internal/observability/metrics"
	"github.com/smallbiznis/invoicepad/internal/share"
)

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Store    *store.Store
	Defaults *config.DefaultsHolder
	Renderer render.Renderer
	PDF      *pdf.Generator
	Metrics  *metrics.Metrics `optional:"true"`
	Sharer   share.Sharer     `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	store    *store.Store
	defaults *config.DefaultsHolder
	renderer render.Renderer
	pdf      *pdf.Generator
	metrics  *metrics.Metrics
	sharer   share.Sharer

	entropy io.Reader
	seq     func() int64
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:      p.Log.Named("invoice.service"),
		clock:    p.Clock,
		store:    p.Store,
		defaults: p.Defaults,
		renderer: p.Renderer,
		pdf:      p.PDF,
		metrics:  p.Metrics,
		sharer:   p.Sharer,
		entropy:  ulid.Monotonic(rand.Reader, 0),
		seq:      func() int64 { return mathrand.Int64N(10000) },
	}
}

// Create validates the request, builds the record and prepends it to
// the store. Validation failure creates nothing, partial or otherwise.
func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return domain.Invoice{}, s.reject(domain.ErrMissingClientName)
	}
	if strings.TrimSpace(req.ClientEmail) == "" {
		return domain.Invoice{}, s.reject(domain.ErrMissingClientEmail)
	}

	items := calc.CollectLineItems(req.Items)
	if len(items) == 0 {
		return domain.Invoice{}, s.reject(domain.ErrNoLineItems)
	}

	totals := calc.ComputeTotals(items, req.IsVATRegistered, req.VATRate)

	now := s.clock.Now()
	number, err := format.InvoiceNumber(s.numberTemplate(), now, s.seq())
	if err != nil {
		return domain.Invoice{}, err
	}

	inv := domain.Invoice{
		ID:              ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		InvoiceNumber:   number,
		ClientName:      req.ClientName,
		ClientCompany:   req.ClientCompany,
		ClientEmail:     req.ClientEmail,
		ClientAddress:   req.ClientAddress,
		LineItems:       items,
		IsVATRegistered: req.IsVATRegistered,
		VATRate:         req.VATRate,
		Subtotal:        totals.Subtotal,
		VAT:             totals.VAT,
		Total:           totals.Total,
		Notes:           req.Notes,
		Status:          domain.InvoiceStatusSent,
		CreatedAt:       now.Format(time.RFC3339),
	}

	if err := s.store.Prepend(ctx, inv); err != nil {
		return domain.Invoice{}, err
	}

	if s.metrics != nil {
		s.metrics.InvoicesCreated.Inc()
	}
	s.log.Info("invoice created",
		zap.String("id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int("line_items", len(inv.LineItems)),
		zap.Float64("total", inv.Total),
	)
	return inv, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Invoice, error) {
	_ = ctx
	return s.store.Invoices(), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	_ = ctx
	inv, ok := s.store.InvoiceByID(strings.TrimSpace(id))
	if !ok {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	return inv, nil
}

func (s *Service) Settings(ctx context.Context) (domain.Settings, error) {
	_ = ctx
	return s.store.Settings(), nil
}

func (s *Service) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return err
	}
	s.log.Info("settings saved")
	return nil
}

// RenderHTML projects one record into the on-screen detail document.
func (s *Service) RenderHTML(ctx context.Context, id string) (string, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	doc := render.BuildDocument(inv, s.store.Settings())
	html, err := s.renderer.RenderHTML(doc)
	if err != nil {
		return "", err
	}
	s.countRender("html")
	return html, nil
}

// RenderPDF projects one record into the downloadable document.
func (s *Service) RenderPDF(ctx context.Context, id string) (domain.PDFExport, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.PDFExport{}, err
	}
	export, err := s.pdf.Generate(inv, s.store.Settings())
	if err != nil {
		return domain.PDFExport{}, err
	}
	s.countRender("pdf")
	return export, nil
}

// Share hands the invoice to the platform share capability; on absence
// or rejection it falls back to the PDF export.
func (s *Service) Share(ctx context.Context, id string) (domain.ShareResult, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.ShareResult{}, err
	}

	if s.sharer != nil {
		payload := share.Payload{
			Title: "Invoice " + inv.InvoiceNumber,
			Text:  "Invoice from " + s.store.Settings().DisplayBusinessName() + " to " + inv.ClientName,
			URL:   "/api/invoices/" + inv.ID,
		}
		if err := s.sharer.Share(ctx, payload); err == nil {
			return domain.ShareResult{Shared: true}, nil
		}
		s.log.Warn("share rejected, falling back to PDF", zap.String("id", inv.ID))
	}

	export, err := s.RenderPDF(ctx, id)
	if err != nil {
		return domain.ShareResult{}, err
	}
	return domain.ShareResult{Shared: false, Fallback: &export}, nil
}

func (s *Service) numberTemplate() string {
	if s.defaults == nil {
		return format.DefaultInvoiceNumberTemplate
	}
	return s.defaults.Get().NumberTemplate
}

func (s *Service) reject(err error) error {
	if s.metrics != nil {
		s.metrics.ValidationFailures.WithLabelValues(err.Error()).Inc()
	}
	s.log.Warn("invoice rejected", zap.String("code", err.Error()))
	return err
}

func (s *Service) countRender(target string) {
	if s.metrics != nil {
		s.metrics.Renders.WithLabelValues(target).Inc()
	}
}
