// Package kv is the external key-value collaborator: two well-known
// string keys, each holding a JSON document, backed by a sqlite file.
package kv

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/invoicepad/internal/config"
)

// Well-known keys.
const (
	KeyInvoices = "invoices"
	KeySettings = "settings"
)

// Store reads and writes JSON-serialized values by key. A missing key
// is not an error; Get reports it through the found flag.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Entry is one persisted key-value pair.
type Entry struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "kv_entries" }

var Module = fx.Module("kv",
	fx.Provide(OpenDatabase),
	fx.Provide(NewStore),
)

// OpenDatabase opens the sqlite file and ensures the kv table exists.
func OpenDatabase(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	log.Info("kv store ready", zap.String("path", cfg.DBPath))
	return db, nil
}

type sqliteStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Save(&entry).Error
}
