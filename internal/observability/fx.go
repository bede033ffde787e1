package observability

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/invoicepad/internal/config"
	"github.com/smallbiznis/invoicepad/internal/observability/logger"
	"github.com/smallbiznis/invoicepad/internal/observability/metrics"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideLoggerConfig,
		logger.New,
		metrics.New,
		metrics.NewHTTPMetrics,
	),
)

func provideLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     cfg.AppVersion,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	}
}
