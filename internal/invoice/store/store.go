// Package store owns the in-memory application state: the append-only
// invoice list (newest first) and the settings singleton. State is
// loaded from the key-value collaborator at startup and written back
// after every mutation.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/invoicepad/internal/invoice/domain"
	"github.com/smallbiznis/invoicepad/internal/kv"
)

var Module = fx.Module("invoice.store",
	fx.Provide(New),
	fx.Invoke(registerLoad),
)

func registerLoad(lc fx.Lifecycle, s *Store) {
	lc.Append(fx.Hook{OnStart: s.Load})
}

// Store guards the state with a mutex: each operation is one atomic
// read-modify-write even though the HTTP host serves requests
// concurrently.
type Store struct {
	mu  sync.Mutex
	kv  kv.Store
	log *zap.Logger

	invoices []domain.Invoice
	settings domain.Settings
}

func New(kvStore kv.Store, log *zap.Logger) *Store {
	return &Store{
		kv:       kvStore,
		log:      log.Named("invoice.store"),
		invoices: []domain.Invoice{},
	}
}

// Load reads both keys. A missing key is an empty list or zero
// settings, not an error.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.kv.Get(ctx, kv.KeyInvoices)
	if err != nil {
		return err
	}
	if found {
		var invoices []domain.Invoice
		if err := json.Unmarshal([]byte(raw), &invoices); err != nil {
			return err
		}
		s.invoices = invoices
	}

	raw, found, err = s.kv.Get(ctx, kv.KeySettings)
	if err != nil {
		return err
	}
	if found {
		var settings domain.Settings
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			return err
		}
		s.settings = settings
	}

	s.log.Info("state loaded", zap.Int("invoices", len(s.invoices)))
	return nil
}

// Invoices returns a copy of the list, newest first.
func (s *Store) Invoices() []domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// InvoiceByID looks a record up by its internal id.
func (s *Store) InvoiceByID(id string) (domain.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return domain.Invoice{}, false
}

// Prepend inserts a new record at the front and persists the state.
// There is no update or delete counterpart.
func (s *Store) Prepend(ctx context.Context, inv domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = append([]domain.Invoice{inv}, s.invoices...)
	if err := s.persistLocked(ctx); err != nil {
		s.invoices = s.invoices[1:]
		return err
	}
	return nil
}

// Settings returns the current settings singleton.
func (s *Store) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SaveSettings replaces the singleton wholesale and persists.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.settings
	s.settings = settings
	if err := s.persistLocked(ctx); err != nil {
		s.settings = previous
		return err
	}
	return nil
}

// persistLocked writes both keys back after each mutation; the whole
// state is small enough that partial writes are not worth the
// bookkeeping.
func (s *Store) persistLocked(ctx context.Context) error {
	invoices, err := json.Marshal(s.invoices)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, kv.KeyInvoices, string(invoices)); err != nil {
		return err
	}
	settings, err := json.Marshal(s.settings)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, kv.KeySettings, string(settings))
}
