// Package store defines the persistence contract for the ledger's state
// document and provides the canonical JSON file implementation plus an
// in-memory one for tests.
package store

import (
	"context"
	"errors"

	"budsjetto/internal/core"
)

// ErrCorruptState marks a persisted document that exists but cannot be
// decoded. Load returns it together with the empty default state so callers
// can keep running while signaling the problem loudly.
var ErrCorruptState = errors.New("corrupt state document")

// StateStore persists the whole AppState as one atomic document. There is no
// partial write: Save replaces the prior document completely, and the prior
// document stays intact until the replacement is durable.
type StateStore interface {
	Load(ctx context.Context) (core.AppState, error)
	Save(ctx context.Context, state core.AppState) error
}
