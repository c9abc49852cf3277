// Package store persists inspection records as an append-only,
// newest-first history.
//
// Every backend follows the same contract: LoadAll never fails (missing or
// unreadable history reads as empty and is logged), and Append either
// commits the whole record or leaves the history exactly as it was.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"boilerInspector/internal/models"
)

// HistoryKey is the logical key the record list is stored under.
const HistoryKey = "inspections"

// ErrDuplicateID is wrapped by Append when the record id already exists.
var ErrDuplicateID = errors.New("record id already exists")

// Store is an append-only inspection history.
type Store interface {
	// LoadAll returns every record, newest first.
	LoadAll(ctx context.Context) []models.InspectionRecord
	// Append commits rec at the front of the history.
	Append(ctx context.Context, rec models.InspectionRecord) error
	Close() error
}

// PersistenceError reports a failed write. The history is unchanged.
type PersistenceError struct {
	Backend string
	Op      string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s store: failed to %s: %v", e.Backend, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistErr(backend, op string, err error) error {
	return &PersistenceError{Backend: backend, Op: op, Err: err}
}

// decodeHistory parses a stored JSON array. Empty input is an empty history.
func decodeHistory(data []byte) ([]models.InspectionRecord, error) {
	if len(data) == 0 {
		return []models.InspectionRecord{}, nil
	}
	var records []models.InspectionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	if records == nil {
		records = []models.InspectionRecord{}
	}
	for i := range records {
		records[i].Normalize()
	}
	return records, nil
}

func encodeHistory(records []models.InspectionRecord) ([]byte, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return data, nil
}

// prepend returns a new history with rec in front, rejecting duplicate ids.
func prepend(history []models.InspectionRecord, rec models.InspectionRecord) ([]models.InspectionRecord, error) {
	for _, existing := range history {
		if existing.ID == rec.ID {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
	}
	next := make([]models.InspectionRecord, 0, len(history)+1)
	next = append(next, rec.Clone())
	return append(next, history...), nil
}
