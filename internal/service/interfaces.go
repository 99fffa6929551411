// Package service defines the interfaces between the application's
// components. Consumers depend on these rather than on concrete types.
package service

import (
	"context"

	"github.com/finsheet/finsheet/internal/model"
)

// Op identifies a per-record sync operation kind.
type Op string

// Sync operation kinds.
const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Backend is the remote REST store, one resource per record kind.
type Backend interface {
	// FetchAll retrieves the full collection for a kind.
	FetchAll(ctx context.Context, kind model.Kind) ([]model.Record, error)
	// CreateItem creates one record and returns the backend-assigned id.
	CreateItem(ctx context.Context, kind model.Kind, rec model.Record) (string, error)
	// UpdateItem replaces one record by id with its full current state.
	UpdateItem(ctx context.Context, kind model.Kind, id string, rec model.Record) error
	// DeleteItem removes one record by id.
	DeleteItem(ctx context.Context, kind model.Kind, id string) error
	// BulkReplace replaces the entire remote collection.
	BulkReplace(ctx context.Context, kind model.Kind, records []model.Record) error
}

// Prober reports backend liveness within a bounded time. It never returns
// an error; any failure means unavailable.
type Prober interface {
	Available(ctx context.Context, kind model.Kind) bool
}

// Cache is the local persistent fallback for whole collections. Load
// yields nil for a missing or unreadable entry and Save swallows its own
// failures; neither ever surfaces an error to the caller.
type Cache interface {
	Load(ctx context.Context, kind model.Kind) *model.Collection
	Save(ctx context.Context, kind model.Kind, collection *model.Collection)
}

// Reconciler rewrites a temp id to its backend-assigned canonical id.
// It reports whether a record still carried the temp id.
type Reconciler interface {
	ReconcileID(tempID, canonicalID string) bool
}

// Syncer accepts per-record operations for debounced, health-gated
// dispatch against the backend.
type Syncer interface {
	Enqueue(op Op, id string, rec model.Record)
}

// CollectionSource exposes a point-in-time copy of the canonical
// collection, used by the bulk submitter.
type CollectionSource interface {
	Snapshot() *model.Collection
}

// Confirmer gates destructive operations behind a user prompt.
type Confirmer interface {
	Confirm(message string) bool
}
