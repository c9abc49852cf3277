package store

import (
	"context"
	"errors"
	"fmt"

	"boilerInspector/internal/models"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// BadgerStore keeps the history as one JSON array under the HistoryKey
// key of an embedded Badger database. Append reads, prepends and writes
// inside a single update transaction.
type BadgerStore struct {
	db     *badger.DB
	logger *zap.Logger
}

// NewBadgerStore opens (or creates) a Badger database in dir. Writes are
// synced before Append returns.
func NewBadgerStore(dir string, logger *zap.Logger) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir).WithSyncWrites(true), logger)
}

func openBadger(opts badger.Options, logger *zap.Logger) (*BadgerStore, error) {
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return &BadgerStore{db: db, logger: logger}, nil
}

func (s *BadgerStore) LoadAll(ctx context.Context) []models.InspectionRecord {
	var records []models.InspectionRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		records, err = readHistory(txn)
		return err
	})
	if err != nil {
		s.logger.Warn("Reading history failed, treating as empty", zap.Error(err))
		return []models.InspectionRecord{}
	}
	return records
}

func (s *BadgerStore) Append(ctx context.Context, rec models.InspectionRecord) error {
	if err := ctx.Err(); err != nil {
		return persistErr("badger", "append record", err)
	}

	var count int
	err := s.db.Update(func(txn *badger.Txn) error {
		history, err := readHistory(txn)
		if err != nil {
			return err
		}
		next, err := prepend(history, rec)
		if err != nil {
			return err
		}
		data, err := encodeHistory(next)
		if err != nil {
			return err
		}
		count = len(next)
		return txn.Set([]byte(HistoryKey), data)
	})
	if err != nil {
		return persistErr("badger", "append record", err)
	}

	s.logger.Debug("Appended record", zap.String("id", rec.ID), zap.Int("records", count))
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func readHistory(txn *badger.Txn) ([]models.InspectionRecord, error) {
	item, err := txn.Get([]byte(HistoryKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []models.InspectionRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history key: %w", err)
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read history value: %w", err)
	}
	return decodeHistory(data)
}
