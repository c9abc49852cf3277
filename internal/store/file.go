package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"boilerInspector/internal/models"

	"go.uber.org/zap"
)

// FileStore keeps the whole history as one JSON array in
// <dir>/inspections.json. Writes go to a temporary file that is renamed
// over the old one, so readers never see a partial document.
type FileStore struct {
	path   string
	logger *zap.Logger

	mu        sync.Mutex
	writeFile func(path string, data []byte) error
}

// NewFileStore creates dir if needed and returns a store inside it.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{
		path:      filepath.Join(dir, HistoryKey+".json"),
		logger:    logger,
		writeFile: writeFileAtomic,
	}, nil
}

// Path is the history file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) LoadAll(ctx context.Context) []models.InspectionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		s.logger.Warn("Reading history failed, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return []models.InspectionRecord{}
	}
	return records
}

func (s *FileStore) Append(ctx context.Context, rec models.InspectionRecord) error {
	if err := ctx.Err(); err != nil {
		return persistErr("file", "append record", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A history that exists but cannot be parsed is not overwritten.
	history, err := s.read()
	if err != nil {
		return persistErr("file", "read history", err)
	}
	next, err := prepend(history, rec)
	if err != nil {
		return persistErr("file", "append record", err)
	}
	data, err := encodeHistory(next)
	if err != nil {
		return persistErr("file", "encode history", err)
	}
	if err := s.writeFile(s.path, data); err != nil {
		return persistErr("file", "write history", err)
	}

	s.logger.Debug("Appended record", zap.String("id", rec.ID), zap.Int("records", len(next)))
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) read() ([]models.InspectionRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.InspectionRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	return decodeHistory(data)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
