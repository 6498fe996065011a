// Package repository defines the rating record store interface and errors.
package repository

import (
	"context"

	"github.com/okian/fullcircle/internal/domain/model"
)

// Record is the payload type persisted by the store.
type Record = model.RatingRecord

// Store provides append-only access to rating records. Records are never
// updated or deleted; reports are regenerated from them on demand.
type Store interface {
	// Append persists one accepted rating record.
	Append(ctx context.Context, rec Record) error

	// ListByRatee returns a consistent snapshot of all records for a ratee,
	// in insertion order. An unknown ratee yields an empty slice, not an error.
	ListByRatee(ctx context.Context, ratee string) ([]Record, error)

	// Ratees returns the ids of all ratees with a self record, sorted.
	// These are the candidates a peer or manager may assess.
	Ratees(ctx context.Context) ([]string, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) int
}
