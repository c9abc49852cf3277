package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"boilerInspector/internal/models"

	"go.uber.org/zap"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS inspections (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	body       TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`

// SQLiteStore keeps one row per record; the autoincrement sequence gives
// the append order.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (or creates) the database file at path.
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) LoadAll(ctx context.Context) []models.InspectionRecord {
	records, err := s.query(ctx)
	if err != nil {
		s.logger.Warn("Reading history failed, treating as empty", zap.Error(err))
		return []models.InspectionRecord{}
	}
	return records
}

func (s *SQLiteStore) query(ctx context.Context) ([]models.InspectionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT body FROM inspections ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	records := []models.InspectionRecord{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var rec models.InspectionRecord
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		rec.Normalize()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) Append(ctx context.Context, rec models.InspectionRecord) error {
	rec = rec.Clone()
	body, err := json.Marshal(rec)
	if err != nil {
		return persistErr("sqlite", "encode record", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO inspections (id, body, created_at) VALUES (?, ?, ?)`,
		rec.ID, string(body), rec.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			err = fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
		return persistErr("sqlite", "insert record", err)
	}

	s.logger.Debug("Appended record", zap.String("id", rec.ID))
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
