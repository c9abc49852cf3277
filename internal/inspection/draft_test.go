package inspection

import (
	"testing"
	"time"

	"boilerInspector/internal/catalog"
	"boilerInspector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 18, 14, 0, 0, 0, time.UTC)

func fixedID() string { return "fixed-id" }

func completeDraft() Draft {
	d := NewDraft(testNow)
	d.Inspector = "김점검"
	d.SiteName = "행복아파트"
	d.City = "서울특별시"
	d.District = "강남구"
	d.Result = models.ResultNormal
	return d
}

func TestNewDraftDefaultsToToday(t *testing.T) {
	d := NewDraft(testNow)
	assert.Equal(t, models.Date{Year: 2026, Month: time.October, Day: 18}, d.InspectionDate)
	assert.Empty(t, d.Products())
	assert.Zero(t, d.AnsweredCount())
}

func TestWithProduct(t *testing.T) {
	d := NewDraft(testNow)

	d = d.WithProduct("NPW-351K", 3).WithProduct("NCB790", 2).WithProduct("NPW-351K", 1)
	assert.Equal(t, []models.ProductLine{
		{Name: "NPW-351K", Count: 3},
		{Name: "NCB790", Count: 2},
		{Name: "NPW-351K", Count: 1},
	}, d.Products())
	assert.Equal(t, 6, d.TotalProducts())

	ignored := []struct {
		name  string
		count int
	}{
		{"", 1},
		{"UNKNOWN", 1},
		{"NCB790", 0},
		{"NCB790", -2},
	}
	for _, in := range ignored {
		assert.Len(t, d.WithProduct(in.name, in.count).Products(), 3, "%q x %d", in.name, in.count)
	}
}

func TestWithoutProduct(t *testing.T) {
	d := NewDraft(testNow).WithProduct("NPW-351K", 3).WithProduct("NCB790", 2).WithProduct("NFB-500", 1)

	got := d.WithoutProduct(1).Products()
	assert.Equal(t, []models.ProductLine{{Name: "NPW-351K", Count: 3}, {Name: "NFB-500", Count: 1}}, got)

	assert.Len(t, d.WithoutProduct(-1).Products(), 3)
	assert.Len(t, d.WithoutProduct(3).Products(), 3)
	assert.Len(t, d.Products(), 3, "receiver is unchanged")
}

func TestDraftIsImmutable(t *testing.T) {
	base := NewDraft(testNow).WithProduct("NPW-351K", 1)
	next := base.WithProduct("NCB790", 1).WithChecklistAnswer("pump", models.AnswerYes, "")

	assert.Len(t, base.Products(), 1)
	assert.Zero(t, base.AnsweredCount())
	assert.Len(t, next.Products(), 2)
	assert.Equal(t, 1, next.AnsweredCount())

	lines := next.Products()
	lines[0].Count = 50
	assert.Equal(t, 1, next.Products()[0].Count)
}

func TestWithChecklistAnswer(t *testing.T) {
	d := NewDraft(testNow)

	d = d.WithChecklistAnswer("gas_valve", models.AnswerNo, " 누수 ")
	assert.Equal(t, models.ChecklistAnswer{Answer: models.AnswerNo, Reason: "누수"}, d.Answer("gas_valve"))

	d = d.WithChecklistAnswer("gas_valve", models.AnswerYes, "stale reason")
	assert.Equal(t, models.ChecklistAnswer{Answer: models.AnswerYes}, d.Answer("gas_valve"))

	d = d.WithChecklistAnswer("gas_valve", models.AnswerUnset, "")
	assert.Zero(t, d.AnsweredCount())

	assert.Equal(t, d, d.WithChecklistAnswer("not_an_item", models.AnswerYes, ""))
}

func TestWithAllAnswersYes(t *testing.T) {
	d := NewDraft(testNow).WithChecklistAnswer("pump", models.AnswerNo, "소음")

	all := d.WithAllAnswersYes()
	assert.Equal(t, 23, all.AnsweredCount())
	for _, item := range catalog.Checklist() {
		assert.Equal(t, models.ChecklistAnswer{Answer: models.AnswerYes}, all.Answer(item.ID))
	}
	assert.Equal(t, models.AnswerNo, d.Answer("pump").Answer)
}

func TestBuild(t *testing.T) {
	d := completeDraft().
		WithProduct("NCN-45HD", 2).
		WithChecklistAnswer("pump", models.AnswerNo, "소음")
	d.Summary = "양호"
	d.PhotoCount = 2

	rec, err := d.Build(testNow, fixedID)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", rec.ID)
	assert.Equal(t, "서울특별시 강남구", rec.Address)
	assert.Equal(t, testNow, rec.CreatedAt)
	assert.Equal(t, "양호", rec.Summary)
	assert.Equal(t, 2, rec.PhotoCount)
	assert.Equal(t, []models.ProductLine{{Name: "NCN-45HD", Count: 2}}, rec.Products)
	assert.Equal(t, models.AnswerNo, rec.ChecklistAnswers["pump"].Answer)

	// The built record does not share state with the draft.
	rec.ChecklistAnswers["blower"] = models.ChecklistAnswer{Answer: models.AnswerYes}
	assert.Equal(t, 1, d.AnsweredCount())
}

func TestBuildWithoutAnswersOrProducts(t *testing.T) {
	rec, err := completeDraft().Build(testNow, fixedID)
	require.NoError(t, err)
	assert.NotNil(t, rec.Products)
	assert.Empty(t, rec.Products)
	assert.NotNil(t, rec.ChecklistAnswers)
	assert.Empty(t, rec.ChecklistAnswers)
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		fields []string
	}{
		{"inspector", func(d *Draft) { d.Inspector = "  " }, []string{FieldInspector}},
		{"site", func(d *Draft) { d.SiteName = "" }, []string{FieldSiteName}},
		{"date", func(d *Draft) { d.InspectionDate = models.Date{} }, []string{FieldInspectionDate}},
		{"location", func(d *Draft) { d.City, d.District = "", "" }, []string{FieldCity, FieldDistrict}},
		{"result empty", func(d *Draft) { d.Result = "" }, []string{FieldResult}},
		{"result unknown", func(d *Draft) { d.Result = "보류" }, []string{FieldResult}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completeDraft()
			tt.mutate(&d)

			called := false
			_, err := d.Build(testNow, func() string { called = true; return "x" })

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
			for _, f := range tt.fields {
				assert.True(t, verr.Has(f))
				assert.Contains(t, err.Error(), f)
			}
			assert.False(t, called, "no id is allocated for an invalid draft")
		})
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.False(t, seen[id])
		seen[id] = true
	}
}
