package store

import (
	"fmt"
	"os"
	"path/filepath"

	"boilerInspector/internal/config"

	"go.uber.org/zap"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Open returns the store selected by cfg.Store. On error the returned
// Store is a nil interface, never a nil pointer wrapped in one.
func Open(cfg config.Config, logger *zap.Logger) (Store, error) {
	logger = logger.With(zap.String("backend", cfg.Store))

	switch cfg.Store {
	case BackendFile, "":
		st, err := NewFileStore(cfg.DataDir, logger)
		if err != nil {
			return nil, err
		}
		return st, nil
	case BackendBadger:
		st, err := NewBadgerStore(filepath.Join(cfg.DataDir, "badger"), logger)
		if err != nil {
			return nil, err
		}
		return st, nil
	case BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		st, err := NewSQLiteStore(filepath.Join(cfg.DataDir, HistoryKey+".db"), logger)
		if err != nil {
			return nil, err
		}
		return st, nil
	case BackendMongo:
		st, err := NewMongoStore(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
		if err != nil {
			return nil, err
		}
		return st, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q: use file, badger, sqlite, mongo or memory", cfg.Store)
	}
}
