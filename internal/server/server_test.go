package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smallbiznis/invoicepad/internal/config"
	"github.com/smallbiznis/invoicepad/internal/invoice/domain"
)

// fakeService scripts the domain layer so handler mapping can be
// asserted without storage or renderers.
type fakeService struct {
	invoices []domain.Invoice
	settings domain.Settings

	createErr error
	shared    bool
}

func (f *fakeService) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	if f.createErr != nil {
		return domain.Invoice{}, f.createErr
	}
	inv := domain.Invoice{
		ID:            "01HV0000000000000000000000",
		InvoiceNumber: "INV-20240305-0042",
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		Status:        domain.InvoiceStatusSent,
	}
	f.invoices = append([]domain.Invoice{inv}, f.invoices...)
	return inv, nil
}

func (f *fakeService) List(ctx context.Context) ([]domain.Invoice, error) {
	return f.invoices, nil
}

func (f *fakeService) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return domain.Invoice{}, domain.ErrInvoiceNotFound
}

func (f *fakeService) Settings(ctx context.Context) (domain.Settings, error) {
	return f.settings, nil
}

func (f *fakeService) SaveSettings(ctx context.Context, settings domain.Settings) error {
	f.settings = settings
	return nil
}

func (f *fakeService) RenderHTML(ctx context.Context, id string) (string, error) {
	if _, err := f.GetByID(ctx, id); err != nil {
		return "", err
	}
	return "<html><body>INV-20240305-0042</body></html>", nil
}

func (f *fakeService) RenderPDF(ctx context.Context, id string) (domain.PDFExport, error) {
	if _, err := f.GetByID(ctx, id); err != nil {
		return domain.PDFExport{}, err
	}
	return domain.PDFExport{FileName: "Invoice_INV-20240305-0042.pdf", Content: []byte("%PDF")}, nil
}

func (f *fakeService) Share(ctx context.Context, id string) (domain.ShareResult, error) {
	if _, err := f.GetByID(ctx, id); err != nil {
		return domain.ShareResult{}, err
	}
	if f.shared {
		return domain.ShareResult{Shared: true}, nil
	}
	export, _ := f.RenderPDF(ctx, id)
	return domain.ShareResult{Shared: false, Fallback: &export}, nil
}

func setupServer(t *testing.T, svc domain.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := NewEngine(zap.NewNop(), nil)
	NewServer(ServerParams{
		Gin:        engine,
		Cfg:        config.Config{AppName: "invoicepad"},
		Log:        zap.NewNop(),
		InvoiceSvc: svc,
		Defaults:   config.NewStaticDefaultsHolder(config.DefaultInvoiceDefaults()),
	})
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	engine := setupServer(t, &fakeService{})

	w := doJSON(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateInvoice(t *testing.T) {
	engine := setupServer(t, &fakeService{})

	w := doJSON(t, engine, http.MethodPost, "/api/invoices", domain.CreateInvoiceRequest{
		ClientName:  "Ada Lovelace",
		ClientEmail: "ada@example.com",
		Items:       []domain.RawLineItem{{Description: "Consulting", Quantity: "2", Price: "150"}},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var inv domain.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Equal(t, "INV-20240305-0042", inv.InvoiceNumber)
}

func TestCreateInvoice_ValidationMapsTo400(t *testing.T) {
	engine := setupServer(t, &fakeService{createErr: domain.ErrNoLineItems})

	w := doJSON(t, engine, http.MethodPost, "/api/invoices", domain.CreateInvoiceRequest{
		ClientName:  "Ada Lovelace",
		ClientEmail: "ada@example.com",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Please add at least one item", body["error"])
	assert.Equal(t, "no_line_items", body["code"])
}

func TestCreateInvoice_MalformedBody(t *testing.T) {
	engine := setupServer(t, &fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetInvoice_NotFound(t *testing.T) {
	engine := setupServer(t, &fakeService{})

	w := doJSON(t, engine, http.MethodGet, "/api/invoices/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceHTML(t *testing.T) {
	svc := &fakeService{invoices: []domain.Invoice{{ID: "a"}}}
	engine := setupServer(t, svc)

	w := doJSON(t, engine, http.MethodGet, "/api/invoices/a/html", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "INV-20240305-0042")
}

func TestInvoicePDF(t *testing.T) {
	svc := &fakeService{invoices: []domain.Invoice{{ID: "a"}}}
	engine := setupServer(t, svc)

	w := doJSON(t, engine, http.MethodGet, "/api/invoices/a/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Invoice_INV-20240305-0042.pdf"`, w.Header().Get("Content-Disposition"))
}

func TestShareInvoice_Delivered(t *testing.T) {
	svc := &fakeService{invoices: []domain.Invoice{{ID: "a"}}, shared: true}
	engine := setupServer(t, svc)

	w := doJSON(t, engine, http.MethodPost, "/api/invoices/a/share", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"shared":true}`, w.Body.String())
}

func TestShareInvoice_FallsBackToPDF(t *testing.T) {
	svc := &fakeService{invoices: []domain.Invoice{{ID: "a"}}}
	engine := setupServer(t, svc)

	w := doJSON(t, engine, http.MethodPost, "/api/invoices/a/share", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("Content-Disposition"))
}

func TestSettingsRoundTrip(t *testing.T) {
	engine := setupServer(t, &fakeService{})

	put := doJSON(t, engine, http.MethodPut, "/api/settings", domain.Settings{BusinessName: "Acme Ltd"})
	require.Equal(t, http.StatusOK, put.Code)

	get := doJSON(t, engine, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, get.Code)
	var settings domain.Settings
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &settings))
	assert.Equal(t, "Acme Ltd", settings.BusinessName)
}

func TestGetDefaults(t *testing.T) {
	engine := setupServer(t, &fakeService{})

	w := doJSON(t, engine, http.MethodGet, "/api/defaults", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var defaults config.InvoiceDefaults
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &defaults))
	assert.InDelta(t, 0.20, defaults.VATRate, 1e-9)
}

func TestPreviewTotals(t *testing.T) {
	engine := setupServer(t, &fakeService{})

	w := doJSON(t, engine, http.MethodPost, "/api/preview/totals", map[string]any{
		"items": []map[string]string{
			{"description": "Consulting", "quantity": "2", "price": "150"},
			{"description": "", "quantity": "1", "price": "40"},
		},
		"isVATRegistered": true,
		"vatRate":         0.20,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var preview struct {
		LineTotals []float64     `json:"lineTotals"`
		Totals     domain.Totals `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	// The live preview counts rows with blank descriptions too.
	assert.Equal(t, []float64{300, 40}, preview.LineTotals)
	assert.InDelta(t, 340.0, preview.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 68.0, preview.Totals.VAT, 1e-9)
	assert.InDelta(t, 408.0, preview.Totals.Total, 1e-9)
}
