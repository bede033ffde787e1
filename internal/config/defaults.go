package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// InvoiceDefaults are the form defaults the host UI seeds new invoices
// with. They live in an optional config file so a business can change
// its standard VAT rate without rebuilding.
type InvoiceDefaults struct {
	VATRate        float64 `json:"vatRate" mapstructure:"vatRate"`
	NumberTemplate string  `json:"numberTemplate" mapstructure:"numberTemplate"`
}

func DefaultInvoiceDefaults() InvoiceDefaults {
	return InvoiceDefaults{
		VATRate:        0.20,
		NumberTemplate: "INV-{YYYY}{MM}{DD}-{SEQ4}",
	}
}

// DefaultsHolder serves the current defaults and swaps them atomically
// on file change.
type DefaultsHolder struct {
	current atomic.Value // holds InvoiceDefaults
}

func NewDefaultsHolder() (*DefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("invoicepad")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/invoicepad")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INVOICEPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultInvoiceDefaults()
		v.SetDefault("invoice.vatRate", defaults.VATRate)
		v.SetDefault("invoice.numberTemplate", defaults.NumberTemplate)
	}

	var cfg InvoiceDefaults
	if err := v.UnmarshalKey("invoice", &cfg); err != nil {
		return nil, err
	}
	if err := validateInvoiceDefaults(cfg); err != nil {
		return nil, err
	}

	holder := &DefaultsHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated InvoiceDefaults
		if err := v.UnmarshalKey("invoice", &updated); err != nil {
			log.Printf("[invoice-defaults] reload failed: %v", err)
			return
		}
		if err := validateInvoiceDefaults(updated); err != nil {
			log.Printf("[invoice-defaults] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[invoice-defaults] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticDefaultsHolder wraps fixed defaults without file watching.
func NewStaticDefaultsHolder(defaults InvoiceDefaults) *DefaultsHolder {
	holder := &DefaultsHolder{}
	holder.current.Store(defaults)
	return holder
}

func (h *DefaultsHolder) Get() InvoiceDefaults {
	return h.current.Load().(InvoiceDefaults)
}

func validateInvoiceDefaults(cfg InvoiceDefaults) error {
	if cfg.VATRate < 0 || cfg.VATRate > 1 {
		return errors.New("invoice.vatRate must be a fraction between 0 and 1")
	}
	if strings.TrimSpace(cfg.NumberTemplate) == "" {
		return errors.New("invoice.numberTemplate cannot be empty")
	}
	return nil
}
