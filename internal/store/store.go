// Package store persists collection sessions. The pipeline itself never
// touches storage; commands and the HTTP server read sessions here and pass
// them in. Computed aggregates are never persisted.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospector-cli/internal/config"
	"github.com/sells-group/prospector-cli/internal/model"
)

// SessionFilter specifies criteria for listing sessions. City is a substring
// match; the other fields are exact.
type SessionFilter struct {
	City     string              `json:"city,omitempty"`
	Category string              `json:"category,omitempty"`
	Status   model.SessionStatus `json:"status,omitempty"`
	Limit    int                 `json:"limit,omitempty"`
	Offset   int                 `json:"offset,omitempty"`
}

// Store defines the persistence interface for collection sessions.
type Store interface {
	CreateSession(ctx context.Context, s model.Session) (*model.Session, error)
	GetSession(ctx context.Context, id string) (*model.Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]model.Session, error)
	UpdateSessionStatus(ctx context.Context, id string, status model.SessionStatus) error
	ReplaceRecords(ctx context.Context, id string, records []model.Record) error
	DeleteSession(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
