// Package repository defines the client book store interface and errors.
package repository

import (
	"context"

	"github.com/okian/baton/internal/domain/model"
)

// Store provides read/write access to the client book. Snapshots are
// value copies in insertion order so engine calls never observe
// concurrent mutation.
type Store interface {
	// Upsert inserts or replaces a client record, keyed by id. A record
	// without an id is assigned one and the final id is returned.
	Upsert(ctx context.Context, c model.Client) (string, error)

	// Get returns the client with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Client, error)

	// Delete removes a client record.
	// Returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id string) error

	// Snapshot returns a value copy of the full book in insertion order.
	Snapshot(ctx context.Context) []model.Client

	// Count returns the number of clients in the book.
	Count(ctx context.Context) int
}
