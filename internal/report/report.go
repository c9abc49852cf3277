// Package report renders an inspection record as the fixed plain-text
// report handed to the customer.
package report

import (
	"fmt"
	"strings"
	"time"

	"boilerInspector/internal/catalog"
	"boilerInspector/internal/models"
)

const (
	Title         = "보일러 점검 보고서"
	SystemLabel   = "보일러 점검 관리 시스템 v1.0"
	NoSummary     = "점검 요약이 입력되지 않았습니다."
	TotalLabel    = "총 설치 대수"
	MIMEType      = "text/plain;charset=utf-8"
	StatusYes     = "✓ 정상"
	StatusNo      = "✗ 불량"
	StatusUnset   = "○ 미확인"
	sectionRule   = "========================================"
	reasonPattern = " (사유: %s)"
)

// Generate renders rec. The output depends only on rec and generatedAt.
func Generate(rec models.InspectionRecord, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(Title + "\n\n")

	section(&b, "점검 기본 정보")
	fmt.Fprintf(&b, "점검일: %s\n", rec.InspectionDate)
	fmt.Fprintf(&b, "점검자: %s\n", rec.Inspector)
	fmt.Fprintf(&b, "현장명: %s\n", rec.SiteName)
	fmt.Fprintf(&b, "주소: %s\n", rec.Address)
	fmt.Fprintf(&b, "점검 결과: %s\n", rec.Result)
	b.WriteString("\n")

	section(&b, "설치 제품 정보")
	lines := make([]string, 0, len(rec.Products))
	for _, p := range rec.Products {
		lines = append(lines, fmt.Sprintf("%s: %d대", p.Name, p.Count))
	}
	b.WriteString(strings.Join(lines, "\n") + "\n")
	fmt.Fprintf(&b, "%s: %d대\n", TotalLabel, rec.TotalProducts())
	b.WriteString("\n")

	section(&b, "점검 체크리스트 결과")
	b.WriteString("\n")
	checklistBlock(&b, rec, "설치 항목", catalog.ChecklistByCategory(catalog.CategoryInstall))
	b.WriteString("\n")
	checklistBlock(&b, rec, "점검 항목", catalog.ChecklistByCategory(catalog.CategoryCheck))
	b.WriteString("\n")

	section(&b, "점검 요약")
	summary := rec.Summary
	if strings.TrimSpace(summary) == "" {
		summary = NoSummary
	}
	b.WriteString(summary + "\n\n")

	section(&b, "보고서 생성 정보")
	fmt.Fprintf(&b, "생성 시간: %s\n", FormatKoreanTime(generatedAt))
	fmt.Fprintf(&b, "시스템: %s\n", SystemLabel)

	return b.String()
}

func section(b *strings.Builder, heading string) {
	b.WriteString(sectionRule + "\n" + heading + "\n" + sectionRule + "\n")
}

func checklistBlock(b *strings.Builder, rec models.InspectionRecord, heading string, items []catalog.Item) {
	fmt.Fprintf(b, "[%s - %d개]\n", heading, len(items))
	for _, item := range items {
		b.WriteString(ChecklistLine(item.Label, rec.AnswerFor(item.ID)) + "\n")
	}
}

// ChecklistLine renders one checklist item. The reason suffix only appears
// for a NO answer that has a reason.
func ChecklistLine(label string, a models.ChecklistAnswer) string {
	status := StatusUnset
	suffix := ""
	switch a.Answer {
	case models.AnswerYes:
		status = StatusYes
	case models.AnswerNo:
		status = StatusNo
		if reason := strings.TrimSpace(a.Reason); reason != "" {
			suffix = fmt.Sprintf(reasonPattern, reason)
		}
	}
	return label + ": " + status + suffix
}

// FormatKoreanTime formats t the way the ko-KR locale prints a date and
// time, e.g. "2026. 10. 18. 오후 3:04:05".
func FormatKoreanTime(t time.Time) string {
	meridiem := "오전"
	if t.Hour() >= 12 {
		meridiem = "오후"
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), meridiem, hour, t.Minute(), t.Second())
}
