package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"boilerInspector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

var generatedAt = time.Date(2026, time.October, 18, 15, 4, 5, 0, time.UTC)

func baseRecord() models.InspectionRecord {
	rec := models.InspectionRecord{
		ID:             "r1",
		InspectionDate: models.Date{Year: 2026, Month: time.October, Day: 2},
		Inspector:      "박기사",
		SiteName:       "한빛빌딩",
		Address:        "서울특별시 마포구",
		Result:         models.ResultNormal,
		CreatedAt:      generatedAt,
	}
	rec.Normalize()
	return rec
}

func lines(s string) []string {
	return strings.Split(s, "\n")
}

func TestGenerateIsDeterministic(t *testing.T) {
	rec := baseRecord()
	rec.Products = []models.ProductLine{{Name: "NPW-351K", Count: 3}}
	rec.ChecklistAnswers["pump"] = models.ChecklistAnswer{Answer: models.AnswerNo, Reason: "소음"}

	assert.Equal(t, Generate(rec, generatedAt), Generate(rec, generatedAt))
	assert.NotEqual(t, Generate(rec, generatedAt), Generate(rec, generatedAt.Add(time.Second)))
}

func TestGenerateBasicInfoOrder(t *testing.T) {
	out := lines(Generate(baseRecord(), generatedAt))

	require.GreaterOrEqual(t, len(out), 10)
	assert.Equal(t, Title, out[0])
	assert.Equal(t, "점검 기본 정보", out[3])
	assert.Equal(t, []string{
		"점검일: 2026-10-02",
		"점검자: 박기사",
		"현장명: 한빛빌딩",
		"주소: 서울특별시 마포구",
		"점검 결과: 정상",
	}, out[5:10])
}

func TestGenerateProductTotals(t *testing.T) {
	rec := baseRecord()
	rec.Products = []models.ProductLine{
		{Name: "NPW-351K", Count: 3},
		{Name: "NCB790", Count: 2},
	}
	out := Generate(rec, generatedAt)

	assert.Contains(t, out, "NPW-351K: 3대\nNCB790: 2대\n총 설치 대수: 5대\n")
}

func TestGenerateChecklistStatus(t *testing.T) {
	rec := baseRecord()
	rec.ChecklistAnswers["gas_valve"] = models.ChecklistAnswer{Answer: models.AnswerNo, Reason: "누수"}
	rec.ChecklistAnswers["pump"] = models.ChecklistAnswer{Answer: models.AnswerNo}
	rec.ChecklistAnswers["blower"] = models.ChecklistAnswer{Answer: models.AnswerYes, Reason: "ignored"}
	out := lines(Generate(rec, generatedAt))

	assert.Contains(t, out, "가스 밸브 작동 확인: ✗ 불량 (사유: 누수)")
	assert.Contains(t, out, "펌프 작동 상태 확인: ✗ 불량")
	assert.Contains(t, out, "송풍기 작동 상태 확인: ✓ 정상")
	assert.Contains(t, out, "버너 노즐 상태 확인: ○ 미확인")
}

func TestGenerateChecklistSections(t *testing.T) {
	out := lines(Generate(baseRecord(), generatedAt))

	install := indexOf(out, "[설치 항목 - 12개]")
	check := indexOf(out, "[점검 항목 - 11개]")
	require.NotEqual(t, -1, install)
	require.NotEqual(t, -1, check)
	assert.Equal(t, install+14, check, "12 items and a blank line separate the subsections")
	assert.Equal(t, "버너 노즐 상태 확인: ○ 미확인", out[install+1])
	assert.Equal(t, "안전밸브 작동 확인: ○ 미확인", out[install+12])
	assert.Equal(t, "수위 조절 장치 확인: ○ 미확인", out[check+1])
	assert.Equal(t, "전체 시스템 통합 작동 확인: ○ 미확인", out[check+11])
}

func TestGenerateEmptyState(t *testing.T) {
	rec := baseRecord()
	rec.Products = nil
	rec.ChecklistAnswers = nil
	out := Generate(rec, generatedAt)

	assert.Contains(t, out, "설치 제품 정보\n"+sectionRule+"\n\n총 설치 대수: 0대\n")
	assert.Equal(t, 23, strings.Count(out, StatusUnset))
	assert.Zero(t, strings.Count(out, StatusYes))
	assert.Contains(t, out, "점검 요약\n"+sectionRule+"\n"+NoSummary+"\n")
}

func TestGenerateFooter(t *testing.T) {
	rec := baseRecord()
	rec.Summary = "전반적으로 양호"
	out := Generate(rec, generatedAt)

	assert.Contains(t, out, "\n전반적으로 양호\n")
	assert.NotContains(t, out, NoSummary)
	assert.True(t, strings.HasSuffix(out,
		"생성 시간: 2026. 10. 18. 오후 3:04:05\n시스템: 보일러 점검 관리 시스템 v1.0\n"))
}

func TestFormatKoreanTime(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 1, 5, 0, 7, 9, 0, time.UTC), "2026. 1. 5. 오전 12:07:09"},
		{time.Date(2026, 1, 5, 11, 59, 0, 0, time.UTC), "2026. 1. 5. 오전 11:59:00"},
		{time.Date(2026, 12, 25, 12, 0, 0, 0, time.UTC), "2026. 12. 25. 오후 12:00:00"},
		{time.Date(2026, 12, 25, 23, 30, 1, 0, time.UTC), "2026. 12. 25. 오후 11:30:01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatKoreanTime(tt.in))
	}
}

func TestFilename(t *testing.T) {
	rec := baseRecord()
	assert.Equal(t, "점검보고서_한빛빌딩_2026-10-02.txt", Filename(rec))

	rec.SiteName = "A/B 동"
	assert.Equal(t, "점검보고서_A_B 동_2026-10-02.txt", Filename(rec))

	// Decomposed Hangul (as typed on some systems) is composed.
	rec.SiteName = norm.NFD.String("한빛")
	assert.Equal(t, "점검보고서_한빛_2026-10-02.txt", Filename(rec))
}

func TestFileDeliverer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	d := NewFileDeliverer(dir)

	path, err := d.Deliver("report.txt", "hello")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	_, err = NewFileDeliverer(blocker).Deliver("report.txt", "hello")
	var derr *DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "report.txt", derr.Filename)
}

func indexOf(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}
