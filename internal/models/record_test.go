package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDecodeLegacyRecord(t *testing.T) {
	// Shape written by the browser version, without the optional fields.
	raw := `{
		"id": "1736920200000",
		"inspection_date": "2025-01-15",
		"inspector": "김점검",
		"site_name": "행복아파트",
		"address": "서울특별시 강남구",
		"result": "정상",
		"summary": "",
		"created_at": "2025-01-15T06:30:00.000Z"
	}`

	var rec InspectionRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.Nil(t, rec.Products)

	rec.Normalize()
	assert.Empty(t, rec.Products)
	assert.NotNil(t, rec.ChecklistAnswers)
	assert.Equal(t, Date{Year: 2025, Month: time.January, Day: 15}, rec.InspectionDate)
	assert.Equal(t, ResultNormal, rec.Result)
	assert.Equal(t, 2025, rec.CreatedAt.Year())
	assert.Equal(t, AnswerUnset, rec.AnswerFor("burner_nozzle").Answer)
}

func TestDateEncoding(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 7}
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-07"`, string(data))

	var zero Date
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-07T00:00:00.000Z"`), &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"07/03/2024"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`20240307`), &back))
}

func TestDateBSONRoundTrip(t *testing.T) {
	type doc struct {
		D Date `bson:"d"`
	}
	in := doc{D: Date{Year: 2025, Month: time.December, Day: 31}}
	data, err := bson.Marshal(in)
	require.NoError(t, err)

	raw := bson.Raw(data)
	assert.Equal(t, "2025-12-31", raw.Lookup("d").StringValue())

	var out doc
	require.NoError(t, bson.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestSameMonth(t *testing.T) {
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	assert.True(t, Date{2026, time.October, 1}.SameMonth(now))
	assert.False(t, Date{2026, time.September, 30}.SameMonth(now))
	assert.False(t, Date{2025, time.October, 18}.SameMonth(now))
}

func TestResultValid(t *testing.T) {
	for _, r := range Results {
		assert.True(t, r.Valid())
	}
	assert.False(t, Result("").Valid())
	assert.False(t, Result("normal").Valid())
}

func TestParseResult(t *testing.T) {
	tests := map[string]Result{
		"정상":        ResultNormal,
		" Caution ": ResultCaution,
		"불량":        ResultDefective,
		"DEFECTIVE": ResultDefective,
	}
	for in, want := range tests {
		got, ok := ParseResult(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseResult("good")
	assert.False(t, ok)
}

func TestTotalProductsAndClone(t *testing.T) {
	rec := InspectionRecord{
		Products:         []ProductLine{{Name: "NPW-351K", Count: 3}, {Name: "NCB790", Count: 2}},
		ChecklistAnswers: map[string]ChecklistAnswer{"pump": {Answer: AnswerNo, Reason: "소음"}},
	}
	assert.Equal(t, 5, rec.TotalProducts())

	c := rec.Clone()
	c.Products[0].Count = 10
	c.ChecklistAnswers["pump"] = ChecklistAnswer{Answer: AnswerYes}
	assert.Equal(t, 3, rec.Products[0].Count)
	assert.Equal(t, AnswerNo, rec.ChecklistAnswers["pump"].Answer)
}

func TestValidate(t *testing.T) {
	valid := InspectionRecord{
		ID:             "1736920200000",
		InspectionDate: Date{Year: 2026, Month: time.October, Day: 18},
		Inspector:      "김점검",
		SiteName:       "행복아파트",
		Address:        "서울특별시 강남구",
		Result:         ResultNormal,
		Products:       []ProductLine{{Name: "NPW-351K", Count: 3}},
		ChecklistAnswers: map[string]ChecklistAnswer{
			"gas_valve":     {Answer: AnswerNo, Reason: "누수"},
			"burner_nozzle": {Answer: AnswerYes},
		},
	}
	require.NoError(t, valid.Validate())

	bad := InspectionRecord{
		ID:               "bad1",
		Result:           "보류",
		Products:         []ProductLine{{Name: "UNKNOWN", Count: -3}},
		ChecklistAnswers: map[string]ChecklistAnswer{"nope": {Answer: "maybe"}},
	}
	err := bad.Validate()
	var invalid *InvalidRecordError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "bad1", invalid.ID)
	assert.Contains(t, invalid.Problems, "inspector is empty")
	assert.Contains(t, invalid.Problems, `unknown result "보류"`)
	assert.Contains(t, invalid.Problems, `unknown product "UNKNOWN"`)
	assert.Contains(t, invalid.Problems, "product UNKNOWN has count -3")
	assert.Contains(t, invalid.Problems, `unknown checklist item "nope"`)
	assert.Contains(t, invalid.Problems, `checklist item nope has answer "maybe"`)
}

func TestNormalizeDropsReasonUnlessNo(t *testing.T) {
	rec := InspectionRecord{ChecklistAnswers: map[string]ChecklistAnswer{
		"gas_valve":     {Answer: AnswerYes, Reason: "stale"},
		"burner_nozzle": {Answer: AnswerNo, Reason: "누수"},
	}}
	rec.Normalize()
	assert.Empty(t, rec.ChecklistAnswers["gas_valve"].Reason)
	assert.Equal(t, "누수", rec.ChecklistAnswers["burner_nozzle"].Reason)
	assert.NotNil(t, rec.Products)
}
