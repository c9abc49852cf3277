package inspection

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"boilerInspector/internal/models"
	"boilerInspector/internal/report"
	"boilerInspector/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingStore struct {
	*store.MemoryStore
}

func (f failingStore) Append(ctx context.Context, rec models.InspectionRecord) error {
	return &store.PersistenceError{Backend: "test", Op: "append record", Err: errors.New("disk full")}
}

type failingDeliverer struct{}

func (failingDeliverer) Deliver(filename, content string) (string, error) {
	return "", &report.DeliveryError{Filename: filename, Err: errors.New("no space")}
}

func newTestService(t *testing.T, st store.Store, d report.Deliverer) *Service {
	t.Helper()
	n := 0
	return NewService(st, d, zap.NewNop(),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			n++
			return "id-" + string(rune('0'+n))
		}),
	)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	dir := t.TempDir()
	svc := newTestService(t, st, report.NewFileDeliverer(dir))

	sub, err := svc.Submit(ctx, completeDraft().WithProduct("NPW-351K", 3).WithProduct("NCB790", 2))
	require.NoError(t, err)
	require.NoError(t, sub.DeliveryErr)

	assert.Equal(t, "id-1", sub.Record.ID)
	assert.Equal(t, "점검보고서_행복아파트_2026-10-18.txt", sub.ReportFile)
	assert.Contains(t, sub.Report, "총 설치 대수: 5대")

	data, err := os.ReadFile(sub.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, sub.Report, string(data))

	history := svc.History(ctx)
	require.Len(t, history, 1)
	assert.Equal(t, "id-1", history[0].ID)
}

func TestSubmitValidationFailureDoesNotAppend(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newTestService(t, st, report.NewFileDeliverer(t.TempDir()))

	d := completeDraft()
	d.Inspector = ""
	sub, err := svc.Submit(ctx, d)

	assert.Nil(t, sub)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has(FieldInspector))
	assert.Empty(t, st.LoadAll(ctx))
}

func TestSubmitPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	st := failingStore{store.NewMemoryStore()}
	dir := t.TempDir()
	svc := newTestService(t, st, report.NewFileDeliverer(dir))

	sub, err := svc.Submit(ctx, completeDraft())
	assert.Nil(t, sub)
	var perr *store.PersistenceError
	require.ErrorAs(t, err, &perr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no report for an uncommitted record")
}

func TestSubmitDeliveryFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newTestService(t, st, failingDeliverer{})

	sub, err := svc.Submit(ctx, completeDraft())
	require.NoError(t, err)
	var derr *report.DeliveryError
	require.ErrorAs(t, sub.DeliveryErr, &derr)
	assert.NotEmpty(t, sub.Report)
	assert.Len(t, st.LoadAll(ctx), 1)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryStore(), report.NewFileDeliverer(t.TempDir()))

	for _, r := range []models.Result{models.ResultNormal, models.ResultCaution, models.ResultDefective, models.ResultNormal} {
		d := completeDraft()
		d.Result = r
		_, err := svc.Submit(ctx, d)
		require.NoError(t, err)
	}

	stats, recent := svc.Dashboard(ctx, 2)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 4, stats.ThisMonth)
	assert.Equal(t, 2, stats.Normal)
	assert.Equal(t, 1, stats.Caution)
	assert.Equal(t, 1, stats.Defective)
	require.Len(t, recent, 2)
	assert.Equal(t, "id-4", recent[0].ID)
	assert.Equal(t, "id-3", recent[1].ID)
}

func TestFindAndRedeliver(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	svc := newTestService(t, store.NewMemoryStore(), report.NewFileDeliverer(dir))

	sub, err := svc.Submit(ctx, completeDraft())
	require.NoError(t, err)
	require.NoError(t, os.Remove(sub.ReportPath))

	path, err := svc.Redeliver(ctx, sub.Record.ID)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), report.Title))

	_, err = svc.Find(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
