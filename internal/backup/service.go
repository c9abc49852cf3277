package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"boilerInspector/internal/csv"
	"boilerInspector/internal/models"
	"boilerInspector/internal/store"

	"go.uber.org/zap"
)

// Supported backup formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type Service struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(st store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger, now: time.Now}
}

// RestoreResult counts what a restore did.
type RestoreResult struct {
	Total    int
	Restored int
	Skipped  int
	Failed   int
}

// BackupHistory writes the whole history, newest first, to a timestamped
// file in outputDir and returns its path.
func (s *Service) BackupHistory(ctx context.Context, outputDir, format string) (string, int, error) {
	if format != FormatJSON && format != FormatCSV {
		return "", 0, fmt.Errorf("invalid format: %s. Use 'json' or 'csv'", format)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	records := s.store.LoadAll(ctx)

	timestamp := s.now().Format("20060102_150405")
	filename := fmt.Sprintf("backup_%s_%s.%s", store.HistoryKey, timestamp, format)
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create backup file: %w", err)
	}

	if format == FormatJSON {
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		err = enc.Encode(records)
	} else {
		err = csv.WriteRecords(file, records)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("backup failed: %w", err)
	}

	s.logger.Info("Backup completed", zap.String("file", path), zap.Int("records", len(records)))
	return path, len(records), nil
}

// ReadBackup loads records from a JSON or CSV backup file. A JSON file is
// either an array of records or an object with an "inspections" array, the
// shape of a browser storage export.
func ReadBackup(filename, format string) ([]models.InspectionRecord, error) {
	if format == "" {
		format = DetectFormat(filename)
	}
	switch format {
	case FormatCSV:
		return csv.NewParser(filename).ParseRecords()
	case FormatJSON:
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open backup file: %w", err)
		}
		return decodeJSONBackup(data)
	default:
		return nil, fmt.Errorf("cannot detect format of %s. Please specify --format", filename)
	}
}

func decodeJSONBackup(data []byte) ([]models.InspectionRecord, error) {
	var records []models.InspectionRecord
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode JSON backup: %w", err)
		}
		raw, ok := wrapped[store.HistoryKey]
		if !ok {
			return nil, fmt.Errorf("JSON backup has no %q key", store.HistoryKey)
		}
		// Browser exports keep the array as a JSON-encoded string.
		var encoded string
		if json.Unmarshal(raw, &encoded) == nil {
			raw = json.RawMessage(encoded)
		}
		data = raw
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON backup: %w", err)
	}
	for i := range records {
		records[i].Normalize()
	}
	return records, nil
}

// DetectFormat guesses the backup format from the file extension.
func DetectFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	}
	return ""
}

// RestoreHistory appends the backed-up records that are not in the store
// yet. Backups are newest first, so records are appended oldest first to
// keep that order.
func (s *Service) RestoreHistory(ctx context.Context, records []models.InspectionRecord) (RestoreResult, error) {
	result := RestoreResult{Total: len(records)}

	existing := make(map[string]struct{})
	for _, rec := range s.store.LoadAll(ctx) {
		existing[rec.ID] = struct{}{}
	}

	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if strings.TrimSpace(rec.ID) == "" {
			s.logger.Warn("Skipping record without id", zap.Int("index", i))
			result.Skipped++
			continue
		}
		if _, ok := existing[rec.ID]; ok {
			result.Skipped++
			continue
		}
		rec.Normalize()
		if err := rec.Validate(); err != nil {
			s.logger.Warn("Skipping invalid record", zap.String("id", rec.ID), zap.Error(err))
			result.Failed++
			continue
		}

		if err := s.store.Append(ctx, rec); err != nil {
			if errors.Is(err, store.ErrDuplicateID) {
				result.Skipped++
				continue
			}
			result.Failed++
			s.logger.Warn("Failed to restore record", zap.String("id", rec.ID), zap.Error(err))
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			continue
		}
		existing[rec.ID] = struct{}{}
		result.Restored++
	}

	s.logger.Info("Restore completed",
		zap.Int("restored", result.Restored),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result, nil
}

// ValidateBackupFile checks that filename exists, is not empty and matches
// the expected format.
func ValidateBackupFile(filename, expectedFormat string) error {
	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("cannot open backup file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("backup file is empty")
	}

	extension := filepath.Ext(filename)
	if expectedFormat == FormatJSON && !strings.EqualFold(extension, ".json") {
		return fmt.Errorf("expected JSON file but got %s", extension)
	}
	if expectedFormat == FormatCSV && !strings.EqualFold(extension, ".csv") {
		return fmt.Errorf("expected CSV file but got %s", extension)
	}
	return nil
}
