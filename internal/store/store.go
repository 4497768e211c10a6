package store

import (
	"context"

	"github.com/hamed0406/sitewatch/internal/domain"
)

// StatusStore is the port for the durable URL -> StatusRecord mapping.
// Load runs once at startup; Get/Upsert are in-memory accessors mutated
// only from within a check cycle; Save flushes to durable storage and is
// called when a cycle changed at least one record, and on shutdown.
type StatusStore interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Get(url string) (domain.StatusRecord, bool)
	Upsert(rec domain.StatusRecord)
	All() []domain.StatusRecord
}
