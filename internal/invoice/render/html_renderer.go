package render

import (
	"bytes"
	"html/template"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.InvoiceNumber}}</title>
  <style>
    body {
      margin: 0;
      padding: 40px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
    }
    .invoice-card {
      background: #ffffff;
      max-width: 760px;
      margin: 0 auto;
      padding: 60px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .detail-header {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .detail-header h1 { margin: 0; font-size: 24px; }
    .detail-meta { text-align: right; color: #697386; font-size: 14px; }
    .status-badge {
      text-transform: uppercase;
      font-size: 11px;
      font-weight: 600;
      padding: 2px 8px;
      border-radius: 10px;
      background: #fef3c7;
      color: #92400e;
    }
    .status-paid { background: #d1fae5; color: #065f46; }
    .status-overdue { background: #fee2e2; color: #991b1b; }
    .section { margin-bottom: 30px; }
    .section h4 {
      margin: 0 0 8px;
      font-size: 11px;
      text-transform: uppercase;
      letter-spacing: 0.3px;
      color: #8792a2;
    }
    .section p { margin: 2px 0; font-size: 14px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
    }
    td { padding: 12px 0; border-bottom: 1px solid #e3e8ee; font-size: 14px; }
    .amount { text-align: right; }
    .totals { display: flex; flex-direction: column; align-items: flex-end; }
    .totals .row {
      display: flex;
      justify-content: space-between;
      width: 250px;
      padding: 6px 0;
      font-size: 14px;
    }
    .totals .total {
      border-top: 1px solid #e3e8ee;
      font-weight: 700;
      font-size: 16px;
    }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="detail-header">
      <h1>{{.InvoiceNumber}}</h1>
      <div class="detail-meta">
        <p>Date: {{.Date}}</p>
        <p>Status: <span class="status-badge status-{{.Status}}">{{.Status}}</span></p>
      </div>
    </div>

    <div class="section">
      <h4>FROM</h4>
      <p><strong>{{.From.Name}}</strong></p>
      {{range .From.Lines}}<p>{{.}}</p>
      {{end}}
    </div>

    <div class="section">
      <h4>BILL TO</h4>
      <p><strong>{{.BillTo.Name}}</strong></p>
      {{range .BillTo.Lines}}<p>{{.}}</p>
      {{end}}
    </div>

    <div class="section">
      <h4>ITEMS</h4>
      <table>
        <thead>
          <tr>
            <th>Description</th>
            <th>Qty</th>
            <th>Rate</th>
            <th class="amount">Amount</th>
          </tr>
        </thead>
        <tbody>
          {{range .Items}}
          <tr>
            <td>{{.Description}}</td>
            <td>{{.Quantity}}</td>
            <td>{{.Rate}}</td>
            <td class="amount">{{.Amount}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>

      <div class="totals">
        <div class="row">
          <span>Subtotal</span>
          <span>{{.Totals.Subtotal}}</span>
        </div>
        {{if .Totals.ShowVAT}}
        <div class="row">
          <span>{{.Totals.VATLabel}}</span>
          <span>{{.Totals.VAT}}</span>
        </div>
        {{end}}
        <div class="row total">
          <span>TOTAL</span>
          <span>{{.Totals.Total}}</span>
        </div>
      </div>
    </div>

    {{if .Notes}}
    <div class="section">
      <h4>NOTES</h4>
      <p>{{.Notes}}</p>
    </div>
    {{end}}

    {{if .Payment}}
    <div class="section">
      <h4>PAYMENT DETAILS</h4>
      <p>Sort Code: {{.Payment.SortCode}}</p>
      <p>Account: {{.Payment.AccountNumber}}</p>
      {{if .Payment.AccountName}}<p>Account Name: {{.Payment.AccountName}}</p>{{end}}
    </div>
    {{end}}
  </div>
</body>
</html>
`

// Renderer serializes a Document to markup.
type Renderer interface {
	RenderHTML(doc Document) (string, error)
}

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Parse(invoiceHTMLTemplate)),
	}
}

// RenderHTML executes the detail template. html/template escapes every
// user-supplied value on insertion, which is the whole injection story
// for this surface.
func (r *HTMLRenderer) RenderHTML(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
