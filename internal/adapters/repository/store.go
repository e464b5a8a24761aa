// Package repository defines the tournament state store interface and its
// in-memory implementation. Persistence beyond the process is out of scope;
// this store only holds transient engine state between calls.
package repository

import (
	"context"

	"github.com/okian/piste/internal/domain/formula"
)

// Store provides access to per-tournament engine state.
type Store interface {
	// Put stores or replaces the state for its tournament id.
	Put(ctx context.Context, state *formula.State) error

	// Get returns the state for a tournament id.
	// Returns ErrNotFound if the tournament is unknown.
	Get(ctx context.Context, tournamentID string) (*formula.State, error)

	// Delete removes a tournament's state; removing an unknown id is a no-op.
	Delete(ctx context.Context, tournamentID string)

	// IDs lists the stored tournament ids in no particular order.
	IDs(ctx context.Context) []string

	// Count returns the number of tournaments tracked.
	Count(ctx context.Context) int
}
