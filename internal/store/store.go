// Package store provides document persistence over named collections.
// Every entity's records live in their own collection whose shape is
// defined at runtime by the owning schema, so the store deals only in
// opaque JSON documents keyed by id.
package store

import (
	"context"
	"errors"

	"github.com/mfgworks/dynaform/internal/types"
)

// ErrNotFound is returned when a document or collection lookup misses.
var ErrNotFound = errors.New("not found")

// Store is the document storage contract. Implementations preserve
// insertion order within a collection.
type Store interface {
	// List returns every document of the collection in insertion order.
	// An unknown collection lists as empty, not as an error.
	List(ctx context.Context, collection string) ([]types.Record, error)

	// Get returns one document by id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (types.Record, error)

	// Put inserts or replaces the document with the given id.
	Put(ctx context.Context, collection, id string, doc types.Record) error

	// Delete removes one document, or returns ErrNotFound.
	Delete(ctx context.Context, collection, id string) error

	// Drop removes a whole collection. Dropping an unknown collection is
	// a no-op.
	Drop(ctx context.Context, collection string) error
}
