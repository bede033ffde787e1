package main

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/invoicepad/internal/clock"
	"github.com/smallbiznis/invoicepad/internal/config"
	"github.com/smallbiznis/invoicepad/internal/invoice"
	"github.com/smallbiznis/invoicepad/internal/kv"
	"github.com/smallbiznis/invoicepad/internal/observability"
	"github.com/smallbiznis/invoicepad/internal/server"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		kv.Module,

		invoice.Module,

		server.Module,
	)
	app.Run()
}
