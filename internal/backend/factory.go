package backend

import (
	"fmt"
	"log/slog"

	"budsjetto/internal/storage"
	"budsjetto/internal/store"
)

// Factory creates state stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the store named by config.Type.
func (f *Factory) Create(config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLite(config)
	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return &Result{Store: store.NewMemoryStore()}, nil
	default:
		return f.createJSON(config)
	}
}

func (f *Factory) createJSON(config Config) (*Result, error) {
	fs, err := store.NewFileStore(config.DataFile)
	if err != nil {
		return nil, fmt.Errorf("initialize json file store: %w", err)
	}
	f.logger.Info("Initialized json file backend", "data_file", config.DataFile)
	return &Result{Store: fs}, nil
}

func (f *Factory) createSQLite(config Config) (*Result, error) {
	db, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite store: %w", err)
	}
	f.logger.Info("Initialized sqlite backend", "db_path", config.SQLiteDBPath)
	return &Result{Store: db, Cleanup: db.Close}, nil
}
