package cmd

import (
	"testing"
	"time"

	"boilerInspector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductFlag(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		count   int
		wantErr bool
	}{
		{in: "NPW-351K=3", name: "NPW-351K", count: 3},
		{in: " NCB790 = 2 ", name: "NCB790", count: 2},
		{in: "NFB-500", name: "NFB-500", count: 1},
		{in: "NPW-351K=0", wantErr: true},
		{in: "NPW-351K=two", wantErr: true},
		{in: "UNKNOWN=1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, count, err := parseProductFlag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestParseAnswerFlag(t *testing.T) {
	id, answer, reason, err := parseAnswerFlag("gas_valve=no:누수 확인")
	require.NoError(t, err)
	assert.Equal(t, "gas_valve", id)
	assert.Equal(t, models.AnswerNo, answer)
	assert.Equal(t, "누수 확인", reason)

	_, answer, reason, err = parseAnswerFlag("gas_valve=YES:ignored")
	require.NoError(t, err)
	assert.Equal(t, models.AnswerYes, answer)
	assert.Empty(t, reason)

	_, _, _, err = parseAnswerFlag("not_an_item=yes")
	assert.Error(t, err)
	_, _, _, err = parseAnswerFlag("gas_valve=maybe")
	assert.Error(t, err)
	_, _, _, err = parseAnswerFlag("gas_valve")
	assert.Error(t, err)
}

func TestDraftFromFlags(t *testing.T) {
	t.Cleanup(func() {
		inspectDate, inspectResult = "", ""
		inspectProducts, inspectAnswers = nil, nil
		inspectAllYes = false
	})

	inspectDate = "2026-10-01"
	inspectResult = "caution"
	inspectProducts = []string{"NPW-351K=3"}
	inspectAllYes = true
	inspectAnswers = []string{"gas_valve=no:누수"}

	d, err := draftFromFlags(time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01", d.InspectionDate.String())
	assert.Equal(t, models.ResultCaution, d.Result)
	assert.Equal(t, []models.ProductLine{{Name: "NPW-351K", Count: 3}}, d.Products())
	assert.Equal(t, 23, d.AnsweredCount())
	assert.Equal(t, models.ChecklistAnswer{Answer: models.AnswerNo, Reason: "누수"}, d.Answer("gas_valve"))

	inspectResult = "great"
	_, err = draftFromFlags(time.Now())
	assert.Error(t, err)
}
