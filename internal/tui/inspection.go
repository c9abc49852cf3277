package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"boilerInspector/internal/catalog"
	"boilerInspector/internal/inspection"
	"boilerInspector/internal/models"
	"boilerInspector/internal/report"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

type InspectionState int

const (
	InspectionFormState InspectionState = iota
	InspectionChecklistState
	InspectionReasonState
	InspectionSubmittingState
	InspectionResultState
)

type formField int

const (
	fieldDate formField = iota
	fieldInspector
	fieldSite
	fieldCity
	fieldDistrict
	fieldProduct
	fieldProductCount
	fieldProductList
	fieldChecklist
	fieldResult
	fieldSummary
	fieldPhotos
	numFields
)

var fieldLabels = map[string]string{
	inspection.FieldInspectionDate: "점검일",
	inspection.FieldInspector:      "점검자",
	inspection.FieldSiteName:       "현장명",
	inspection.FieldCity:           "시/도",
	inspection.FieldDistrict:       "구/군",
	inspection.FieldResult:         "점검 결과",
}

var fieldForMissing = map[string]formField{
	inspection.FieldInspectionDate: fieldDate,
	inspection.FieldInspector:      fieldInspector,
	inspection.FieldSiteName:       fieldSite,
	inspection.FieldCity:           fieldCity,
	inspection.FieldDistrict:       fieldDistrict,
	inspection.FieldResult:         fieldResult,
}

type SubmitCompleteMsg struct {
	Submission *inspection.Submission
	Err        error
}

type InspectionModel struct {
	svc   *inspection.Service
	now   func() time.Time
	state InspectionState
	draft inspection.Draft

	dateInput      textinput.Model
	inspectorInput textinput.Model
	siteInput      textinput.Model
	countInput     textinput.Model
	summaryInput   textinput.Model
	photosInput    textinput.Model
	reasonInput    textinput.Model
	focused        formField

	productIndex    int
	productCursor   int
	items           []catalog.Item
	checklistCursor int
	progress        progress.Model

	missing    []string
	formErr    error
	submission *inspection.Submission
	width      int
	height     int
}

func NewInspectionModel(svc *inspection.Service) *InspectionModel {
	m := &InspectionModel{
		svc:   svc,
		now:   time.Now,
		items: catalog.Checklist(),
		progress: progress.New(
			progress.WithSolidFill("#00aadd"),
			progress.WithoutPercentage(),
		),
	}

	m.dateInput = newInput("YYYY-MM-DD", 10)
	m.inspectorInput = newInput("점검자 이름", 40)
	m.siteInput = newInput("현장명", 80)
	m.countInput = newInput("1", 4)
	m.summaryInput = newInput("점검 요약 (선택)", 500)
	m.photosInput = newInput("0", 4)
	m.reasonInput = newInput("불량 사유", 200)

	m.resetForm()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.TextStyle = inputStyle
	return input
}

func (m *InspectionModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *InspectionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *InspectionModel) Capturing() bool {
	return m.state == InspectionChecklistState || m.state == InspectionReasonState
}

// Draft returns the form state as it would be submitted.
func (m *InspectionModel) Draft() inspection.Draft {
	return m.draft
}

func (m *InspectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case InspectionFormState:
			return m.updateFormState(msg)
		case InspectionChecklistState:
			return m.updateChecklistState(msg)
		case InspectionReasonState:
			return m.updateReasonState(msg)
		case InspectionSubmittingState:
			return m, nil
		case InspectionResultState:
			if msg.String() == "enter" || msg.String() == " " {
				m.state = InspectionFormState
				m.submission = nil
				return m, nil
			}
		}

	case SubmitCompleteMsg:
		return m.handleSubmitComplete(msg)
	}

	return m, nil
}

func (m *InspectionModel) updateFormState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus((m.focused + 1) % numFields)
		return m, nil
	case "shift+tab", "up":
		m.focus((m.focused - 1 + numFields) % numFields)
		return m, nil
	case "ctrl+s":
		return m.startSubmit()
	case "ctrl+r":
		m.resetForm()
		return m, nil
	}

	switch m.focused {
	case fieldCity:
		if delta := cycleDelta(msg); delta != 0 {
			m.draft.City = cycle(catalog.Cities(), m.draft.City, delta)
			m.draft.District = ""
		}
		return m, nil
	case fieldDistrict:
		if delta := cycleDelta(msg); delta != 0 {
			m.draft.District = cycle(catalog.Districts(m.draft.City), m.draft.District, delta)
		}
		return m, nil
	case fieldProduct:
		products := catalog.Products()
		if delta := cycleDelta(msg); delta != 0 {
			m.productIndex = (m.productIndex + delta + len(products)) % len(products)
		}
		if msg.String() == "enter" {
			m.addProduct()
		}
		return m, nil
	case fieldProductList:
		lines := m.draft.Products()
		switch msg.String() {
		case "left", "h":
			if m.productCursor > 0 {
				m.productCursor--
			}
		case "right", "l":
			if m.productCursor < len(lines)-1 {
				m.productCursor++
			}
		case "delete", "backspace", "x":
			m.draft = m.draft.WithoutProduct(m.productCursor)
			if m.productCursor >= len(m.draft.Products()) && m.productCursor > 0 {
				m.productCursor--
			}
		}
		return m, nil
	case fieldChecklist:
		if msg.String() == "enter" || msg.String() == " " {
			m.state = InspectionChecklistState
		}
		return m, nil
	case fieldResult:
		if delta := cycleDelta(msg); delta != 0 {
			results := make([]string, len(models.Results))
			for i, r := range models.Results {
				results[i] = string(r)
			}
			m.draft.Result = models.Result(cycle(results, string(m.draft.Result), delta))
		}
		return m, nil
	}

	if msg.String() == "enter" {
		if m.focused == fieldProductCount {
			m.addProduct()
			return m, nil
		}
		m.focus((m.focused + 1) % numFields)
		return m, nil
	}

	var cmd tea.Cmd
	if input := m.input(m.focused); input != nil {
		*input, cmd = input.Update(msg)
	}
	return m, cmd
}

func (m *InspectionModel) updateChecklistState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.items[m.checklistCursor]

	switch msg.String() {
	case "up", "k":
		if m.checklistCursor > 0 {
			m.checklistCursor--
		}
	case "down", "j":
		if m.checklistCursor < len(m.items)-1 {
			m.checklistCursor++
		}
	case "y":
		m.draft = m.draft.WithChecklistAnswer(item.ID, models.AnswerYes, "")
		if m.checklistCursor < len(m.items)-1 {
			m.checklistCursor++
		}
	case "n":
		reason := m.draft.Answer(item.ID).Reason
		m.draft = m.draft.WithChecklistAnswer(item.ID, models.AnswerNo, reason)
		m.reasonInput.SetValue(reason)
		m.reasonInput.CursorEnd()
		m.reasonInput.Focus()
		m.state = InspectionReasonState
		return m, textinput.Blink
	case "u", "delete", "backspace":
		m.draft = m.draft.WithChecklistAnswer(item.ID, models.AnswerUnset, "")
	case "a":
		m.draft = m.draft.WithAllAnswersYes()
	case "esc", "enter":
		m.state = InspectionFormState
	}
	return m, nil
}

func (m *InspectionModel) updateReasonState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		item := m.items[m.checklistCursor]
		m.draft = m.draft.WithChecklistAnswer(item.ID, models.AnswerNo, m.reasonInput.Value())
		fallthrough
	case "esc":
		m.reasonInput.Blur()
		m.reasonInput.SetValue("")
		m.state = InspectionChecklistState
		return m, nil
	}

	var cmd tea.Cmd
	m.reasonInput, cmd = m.reasonInput.Update(msg)
	return m, cmd
}

func (m *InspectionModel) input(f formField) *textinput.Model {
	switch f {
	case fieldDate:
		return &m.dateInput
	case fieldInspector:
		return &m.inspectorInput
	case fieldSite:
		return &m.siteInput
	case fieldProductCount:
		return &m.countInput
	case fieldSummary:
		return &m.summaryInput
	case fieldPhotos:
		return &m.photosInput
	}
	return nil
}

func (m *InspectionModel) focus(f formField) {
	m.focused = f
	for i := formField(0); i < numFields; i++ {
		if input := m.input(i); input != nil {
			if i == f {
				input.Focus()
			} else {
				input.Blur()
			}
		}
	}
}

func (m *InspectionModel) addProduct() {
	count, err := strconv.Atoi(strings.TrimSpace(m.countInput.Value()))
	if err != nil || count < 1 {
		m.formErr = fmt.Errorf("수량은 1 이상의 숫자여야 합니다")
		return
	}
	m.formErr = nil
	m.draft = m.draft.WithProduct(catalog.Products()[m.productIndex].Name, count)
	m.productCursor = len(m.draft.Products()) - 1
	m.countInput.SetValue("1")
}

// syncDraft copies the free-text inputs into the draft.
func (m *InspectionModel) syncDraft() error {
	d := m.draft

	d.InspectionDate = models.Date{}
	if text := strings.TrimSpace(m.dateInput.Value()); text != "" {
		date, err := models.ParseDate(text)
		if err != nil {
			return fmt.Errorf("점검일 형식이 올바르지 않습니다 (YYYY-MM-DD)")
		}
		d.InspectionDate = date
	}

	d.Inspector = m.inspectorInput.Value()
	d.SiteName = m.siteInput.Value()
	d.Summary = m.summaryInput.Value()

	d.PhotoCount = 0
	if text := strings.TrimSpace(m.photosInput.Value()); text != "" {
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 {
			return fmt.Errorf("사진 수는 0 이상의 숫자여야 합니다")
		}
		d.PhotoCount = n
	}

	m.draft = d
	return nil
}

func (m *InspectionModel) startSubmit() (tea.Model, tea.Cmd) {
	if err := m.syncDraft(); err != nil {
		m.formErr = err
		return m, nil
	}
	m.formErr = nil
	m.missing = nil
	m.state = InspectionSubmittingState
	return m, m.performSubmit(m.draft)
}

func (m *InspectionModel) performSubmit(d inspection.Draft) tea.Cmd {
	return func() tea.Msg {
		sub, err := m.svc.Submit(context.Background(), d)
		return SubmitCompleteMsg{Submission: sub, Err: err}
	}
}

func (m *InspectionModel) handleSubmitComplete(msg SubmitCompleteMsg) (tea.Model, tea.Cmd) {
	var verr *inspection.ValidationError
	switch {
	case errors.As(msg.Err, &verr):
		m.state = InspectionFormState
		m.missing = verr.Fields
		if f, ok := fieldForMissing[verr.Fields[0]]; ok {
			m.focus(f)
		}
		return m, nil
	case msg.Err != nil:
		m.state = InspectionFormState
		m.formErr = fmt.Errorf("저장에 실패했습니다: %w", msg.Err)
		return m, nil
	}

	m.resetForm()
	m.submission = msg.Submission
	m.state = InspectionResultState
	return m, nil
}

func (m *InspectionModel) resetForm() {
	m.draft = inspection.NewDraft(m.now())
	m.dateInput.SetValue(m.draft.InspectionDate.String())
	m.inspectorInput.SetValue("")
	m.siteInput.SetValue("")
	m.countInput.SetValue("1")
	m.summaryInput.SetValue("")
	m.photosInput.SetValue("")
	m.reasonInput.SetValue("")
	m.productIndex = 0
	m.productCursor = 0
	m.checklistCursor = 0
	m.missing = nil
	m.formErr = nil
	m.focus(fieldDate)
}

func cycleDelta(msg tea.KeyMsg) int {
	switch msg.String() {
	case "right", "l", " ":
		return 1
	case "left", "h":
		return -1
	}
	return 0
}

// cycle steps through options starting from current. An empty current
// selects the first (or last) option.
func cycle(options []string, current string, delta int) string {
	if len(options) == 0 {
		return ""
	}
	for i, o := range options {
		if o == current {
			return options[(i+delta+len(options))%len(options)]
		}
	}
	if delta < 0 {
		return options[len(options)-1]
	}
	return options[0]
}

func (m *InspectionModel) View() string {
	switch m.state {
	case InspectionFormState:
		return m.renderForm()
	case InspectionChecklistState, InspectionReasonState:
		return m.renderChecklist()
	case InspectionSubmittingState:
		return titleStyle.Render("📝 저장 중...")
	case InspectionResultState:
		return m.renderResult()
	}
	return ""
}

func (m *InspectionModel) label(f formField, text string) string {
	if m.focused == f {
		return focusedLabelStyle.Render("> " + text)
	}
	return labelStyle.Render("  " + text)
}

func selector(value, empty string) string {
	if value == "" {
		return mutedStyle.Render("◀ " + empty + " ▶")
	}
	return inputStyle.Render("◀ " + value + " ▶")
}

func (m *InspectionModel) renderForm() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := screenStyles(m.width)

	title := adaptiveTitleStyle.Render("📝 새 점검")

	var products []string
	for i, p := range m.draft.Products() {
		line := fmt.Sprintf("%s × %d", p.Name, p.Count)
		if m.focused == fieldProductList && i == m.productCursor {
			line = selectedItemStyle.Render(line)
		}
		products = append(products, line)
	}
	productList := mutedStyle.Render("추가된 제품 없음")
	if len(products) > 0 {
		productList = strings.Join(products, "  ")
	}

	product := catalog.Products()[m.productIndex]
	answered := m.draft.AnsweredCount()

	form := adaptiveFormStyle.Render(
		m.label(fieldDate, "점검일") + "\n" + m.dateInput.View() + "\n" +
			m.label(fieldInspector, "점검자") + "\n" + m.inspectorInput.View() + "\n" +
			m.label(fieldSite, "현장명") + "\n" + m.siteInput.View() + "\n" +
			m.label(fieldCity, "시/도") + " " + selector(m.draft.City, "선택") + "   " +
			m.label(fieldDistrict, "구/군") + " " + selector(m.draft.District, "선택") + "\n\n" +
			m.label(fieldProduct, "제품") + " " + selector(product.Name+" "+product.Label, "") + "   " +
			m.label(fieldProductCount, "수량") + " " + m.countInput.View() + "\n" +
			m.label(fieldProductList, "설치 제품") + " " + productList +
			fmt.Sprintf("  (%s: %d대)\n\n", report.TotalLabel, m.draft.TotalProducts()) +
			m.label(fieldChecklist, "체크리스트") + " " +
			fmt.Sprintf("%d/%d 항목 응답", answered, len(m.items)) + "\n\n" +
			m.label(fieldResult, "점검 결과") + " " + selector(string(m.draft.Result), "선택") + "\n" +
			m.label(fieldSummary, "점검 요약") + "\n" + m.summaryInput.View() + "\n" +
			m.label(fieldPhotos, "사진 수") + "\n" + m.photosInput.View(),
	)

	var status string
	if len(m.missing) > 0 {
		names := make([]string, len(m.missing))
		for i, f := range m.missing {
			names[i] = fieldLabels[f]
		}
		status = warningStyle.Render("필수 항목을 입력하세요: " + strings.Join(names, ", "))
	}
	if m.formErr != nil {
		status = errorStyle.Render(m.formErr.Error())
	}

	help := adaptiveHelpStyle.Render("Tab/↑/↓: 이동 • ←/→: 선택 • Enter: 제품 추가/체크리스트 열기 • x: 제품 삭제 • Ctrl+S: 저장 • Ctrl+R: 초기화 • Esc: 메뉴")

	return lipgloss.JoinVertical(lipgloss.Left, title, form, status, help)
}

func (m *InspectionModel) renderChecklist() string {
	title := titleStyle.Render("✅ 점검 체크리스트")

	answered := m.draft.AnsweredCount()
	progressWidth := m.width - 10
	if progressWidth < 20 {
		progressWidth = 20
	}
	if progressWidth > 60 {
		progressWidth = 60
	}
	m.progress.Width = progressWidth
	bar := progressStyle.Render(
		m.progress.ViewAs(float64(answered)/float64(len(m.items))) +
			fmt.Sprintf("\n%d/%d 항목 응답", answered, len(m.items)),
	)

	var list strings.Builder
	var category catalog.Category
	for i, item := range m.items {
		if item.Category != category {
			category = item.Category
			heading := "설치 항목"
			if category == catalog.CategoryCheck {
				heading = "점검 항목"
			}
			list.WriteString("\n" + labelStyle.Render(heading) + "\n")
		}
		cursor := " "
		line := report.ChecklistLine(item.Label, m.draft.Answer(item.ID))
		if i == m.checklistCursor {
			cursor = ">"
			line = selectedItemStyle.Render(line)
		} else {
			line = itemStyle.Render(line)
		}
		list.WriteString(cursor + " " + line + "\n")
	}

	parts := []string{title, bar, list.String()}
	if m.state == InspectionReasonState {
		parts = append(parts, labelStyle.Render("불량 사유:")+"\n"+m.reasonInput.View())
		parts = append(parts, helpStyle.Render("Enter: 저장 • Esc: 취소"))
	} else {
		parts = append(parts, helpStyle.Render("↑/↓: 이동 • y: 정상 • n: 불량(사유) • u: 미확인 • a: 전체 정상 • Enter/Esc: 돌아가기"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *InspectionModel) renderResult() string {
	title := titleStyle.Render("📝 점검 저장 완료")
	sub := m.submission
	if sub == nil {
		return title
	}

	status := successStyle.Render("✅ 점검이 저장되었습니다!")
	info := fmt.Sprintf(
		"📋 점검 정보:\n"+
			"   ID: %s\n"+
			"   현장명: %s\n"+
			"   주소: %s\n"+
			"   점검 결과: %s\n"+
			"   %s: %d대",
		sub.Record.ID,
		sub.Record.SiteName,
		sub.Record.Address,
		resultBadge(sub.Record.Result),
		report.TotalLabel, sub.Record.TotalProducts(),
	)

	var delivery string
	if sub.DeliveryErr != nil {
		delivery = errorStyle.Render(fmt.Sprintf("❌ 보고서 저장 실패: %v", sub.DeliveryErr))
	} else {
		delivery = successStyle.Render("📄 보고서: " + sub.ReportPath)
	}

	help := helpStyle.Render("Enter: 새 점검 • Esc: 메뉴")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, info, delivery, help)
}
