package invoice

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/invoicepad/internal/invoice/pdf"
	"github.com/smallbiznis/invoicepad/internal/invoice/render"
	"github.com/smallbiznis/invoicepad/internal/invoice/service"
	"github.com/smallbiznis/invoicepad/internal/invoice/store"
)

var Module = fx.Module("invoice.service",
	store.Module,
	fx.Provide(render.NewRenderer),
	fx.Provide(providePDFGenerator),
	fx.Provide(service.NewService),
)

func providePDFGenerator() *pdf.Generator {
	return pdf.NewGenerator(pdf.NewFpdfCanvas)
}
