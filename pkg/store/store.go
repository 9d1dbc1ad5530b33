// Package store persists layout documents for the HTTP server.
//
// The MongoStore is the production backend; MemoryStore serves tests and
// single-process deployments without a database.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/mosaic/pkg/mosaic"
)

// StoredLayout is a layout document with storage metadata.
type StoredLayout struct {
	ID        string        `json:"id" bson:"_id"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Layout    mosaic.Layout `json:"layout" bson:"layout"`
}

// Store persists layouts keyed by server-assigned ids.
//
// Get returns an error with code LAYOUT_NOT_FOUND when the id is unknown.
type Store interface {
	Put(ctx context.Context, l mosaic.Layout) (StoredLayout, error)
	Get(ctx context.Context, id string) (StoredLayout, error)
	Delete(ctx context.Context, id string) error
	// List returns stored layouts, newest first, at most limit entries.
	List(ctx context.Context, limit int) ([]StoredLayout, error)
	Close(ctx context.Context) error
}
