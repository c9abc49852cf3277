package inspection

import (
	"context"
	"errors"
	"time"

	"boilerInspector/internal/models"
	"boilerInspector/internal/report"
	"boilerInspector/internal/store"
	"boilerInspector/internal/summary"

	"go.uber.org/zap"
)

// Service is the entry point the CLI and TUI use to commit and review
// inspections.
type Service struct {
	store     store.Store
	deliverer report.Deliverer
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces NewID.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(st store.Store, deliverer report.Deliverer, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:     st,
		deliverer: deliverer,
		logger:    logger,
		now:       time.Now,
		newID:     NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submission is the outcome of a committed inspection. DeliveryErr is set
// when the report could not be handed over; the record stays committed.
type Submission struct {
	Record      models.InspectionRecord
	Report      string
	ReportFile  string
	ReportPath  string
	DeliveryErr error
}

// Submit validates d, commits the record and delivers its report. A
// *ValidationError or *store.PersistenceError means nothing was committed.
func (s *Service) Submit(ctx context.Context, d Draft) (*Submission, error) {
	now := s.now()

	rec, err := d.Build(now, s.newID)
	if err != nil {
		s.logger.Info("Inspection rejected", zap.Error(err))
		return nil, err
	}

	if err := s.store.Append(ctx, rec); err != nil {
		s.logger.Error("Failed to save inspection", zap.String("id", rec.ID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Inspection saved",
		zap.String("id", rec.ID),
		zap.String("site", rec.SiteName),
		zap.String("result", string(rec.Result)))

	sub := &Submission{
		Record:     rec,
		Report:     report.Generate(rec, now),
		ReportFile: report.Filename(rec),
	}
	sub.ReportPath, sub.DeliveryErr = s.deliverer.Deliver(sub.ReportFile, sub.Report)
	if sub.DeliveryErr != nil {
		s.logger.Warn("Report delivery failed", zap.String("id", rec.ID), zap.Error(sub.DeliveryErr))
	}
	return sub, nil
}

// History returns every committed record, newest first.
func (s *Service) History(ctx context.Context) []models.InspectionRecord {
	return s.store.LoadAll(ctx)
}

// Today is the current date on the service clock.
func (s *Service) Today() models.Date {
	return models.DateOf(s.now())
}

// Dashboard returns the summary figures and the most recent records.
func (s *Service) Dashboard(ctx context.Context, recent int) (summary.Stats, []models.InspectionRecord) {
	records := s.store.LoadAll(ctx)
	return summary.Summarize(records, s.now()), summary.Recent(records, recent)
}

// ErrNotFound is returned by Find for an unknown record id.
var ErrNotFound = errors.New("inspection not found")

// Find looks a record up by id.
func (s *Service) Find(ctx context.Context, id string) (models.InspectionRecord, error) {
	for _, rec := range s.store.LoadAll(ctx) {
		if rec.ID == id {
			return rec, nil
		}
	}
	return models.InspectionRecord{}, ErrNotFound
}

// Redeliver regenerates and delivers the report of an existing record.
func (s *Service) Redeliver(ctx context.Context, id string) (string, error) {
	rec, err := s.Find(ctx, id)
	if err != nil {
		return "", err
	}
	return s.deliverer.Deliver(report.Filename(rec), report.Generate(rec, s.now()))
}
