// Package backend selects and constructs the state store from configuration.
package backend

import (
	"budsjetto/internal/store"
)

// Type identifies a state store implementation.
type Type string

const (
	// JSONBackend is the canonical single-file JSON document store.
	JSONBackend Type = "json"
	// SQLiteBackend keeps the document in a local SQLite database.
	SQLiteBackend Type = "sqlite"
	// MemoryBackend holds state in memory only; data dies with the process.
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result bundles a constructed store with its optional cleanup.
type Result struct {
	Store   store.StateStore
	Cleanup CleanupFunc
}

// Config holds what the factory needs to build a store.
type Config struct {
	Type Type

	// JSON backend
	DataFile string

	// SQLite backend
	SQLiteDBPath string
}
