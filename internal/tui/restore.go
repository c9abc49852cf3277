package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"boilerInspector/internal/backup"
	"boilerInspector/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

type RestoreModel struct {
	service         *backup.Service
	state           RestoreState
	backupFileInput textinput.Model
	format          string
	records         []models.InspectionRecord
	result          RestoreResult
	files           []string
	selectedFile    int
	err             error
	width           int
	height          int
}

type RestoreState int

const (
	RestoreInputState RestoreState = iota
	RestoreFileSelectState
	RestoreConfirmationState
	RestoreProgressState
	RestoreResultState
)

type RestoreResult struct {
	backup.RestoreResult
	Error error
}

type RestoreCompleteMsg struct {
	Result RestoreResult
}

func NewRestoreModel(service *backup.Service) *RestoreModel {
	backupFileInput := textinput.New()
	backupFileInput.Placeholder = "backups/backup_inspections_20261018_150405.json"
	backupFileInput.TextStyle = inputStyle
	backupFileInput.Focus()

	return &RestoreModel{
		service:         service,
		state:           RestoreInputState,
		backupFileInput: backupFileInput,
	}
}

func (m *RestoreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RestoreModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *RestoreModel) Capturing() bool {
	return m.state == RestoreFileSelectState || m.state == RestoreConfirmationState
}

func (m *RestoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case RestoreInputState:
			return m.updateInputState(msg)
		case RestoreFileSelectState:
			return m.updateFileSelectState(msg)
		case RestoreConfirmationState:
			return m.updateConfirmationState(msg)
		case RestoreProgressState:
			return m, nil
		case RestoreResultState:
			if msg.String() == "enter" || msg.String() == " " {
				m.reset()
				return m, nil
			}
		}

	case RestoreCompleteMsg:
		m.result = msg.Result
		m.records = nil
		m.state = RestoreResultState
		return m, nil
	}

	return m, nil
}

func (m *RestoreModel) updateInputState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+f":
		return m.browseFiles()
	case "enter":
		return m.loadBackup()
	}

	var cmd tea.Cmd
	m.backupFileInput, cmd = m.backupFileInput.Update(msg)
	return m, cmd
}

func (m *RestoreModel) updateFileSelectState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedFile > 0 {
			m.selectedFile--
		}
	case "down", "j":
		if m.selectedFile < len(m.files)-1 {
			m.selectedFile++
		}
	case "enter":
		if len(m.files) > 0 {
			m.backupFileInput.SetValue(m.files[m.selectedFile])
			m.backupFileInput.CursorEnd()
			m.state = RestoreInputState
		}
	case "esc":
		m.state = RestoreInputState
	}
	return m, nil
}

func (m *RestoreModel) updateConfirmationState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		return m.startRestore()
	case "n", "esc":
		m.records = nil
		m.state = RestoreInputState
	}
	return m, nil
}

// browseFiles lists backup files in the working directory and ./backups.
func (m *RestoreModel) browseFiles() (tea.Model, tea.Cmd) {
	cwd, _ := os.Getwd()
	var files []string
	for _, dir := range []string{cwd, filepath.Join(cwd, "backups")} {
		for _, pattern := range []string{"*.json", "*.csv"} {
			matches, _ := filepath.Glob(filepath.Join(dir, pattern))
			files = append(files, matches...)
		}
	}

	for i, file := range files {
		rel, _ := filepath.Rel(cwd, file)
		files[i] = rel
	}

	m.files = files
	m.selectedFile = 0
	m.state = RestoreFileSelectState
	return m, nil
}

// loadBackup reads the chosen file so the confirmation can show how many
// records it holds.
func (m *RestoreModel) loadBackup() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.backupFileInput.Value())
	if path == "" {
		return m, nil
	}

	m.err = nil
	format := backup.DetectFormat(path)
	if format == "" {
		m.err = fmt.Errorf("%s의 형식을 알 수 없습니다: .json 또는 .csv 파일을 사용하세요", path)
		return m, nil
	}
	if err := backup.ValidateBackupFile(path, format); err != nil {
		m.err = err
		return m, nil
	}
	records, err := backup.ReadBackup(path, format)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.format = format
	m.records = records
	m.state = RestoreConfirmationState
	return m, nil
}

func (m *RestoreModel) startRestore() (tea.Model, tea.Cmd) {
	m.state = RestoreProgressState
	return m, m.performRestore(m.records)
}

func (m *RestoreModel) performRestore(records []models.InspectionRecord) tea.Cmd {
	return func() tea.Msg {
		res, err := m.service.RestoreHistory(context.Background(), records)
		result := RestoreResult{RestoreResult: res}
		if err != nil {
			result.Error = fmt.Errorf("복원 실패: %w", err)
		}
		return RestoreCompleteMsg{Result: result}
	}
}

func (m *RestoreModel) reset() {
	m.state = RestoreInputState
	m.result = RestoreResult{}
	m.records = nil
	m.err = nil
	m.backupFileInput.SetValue("")
	m.backupFileInput.Focus()
}

func (m *RestoreModel) View() string {
	switch m.state {
	case RestoreInputState:
		return m.renderInputForm()
	case RestoreFileSelectState:
		return m.renderFileSelector()
	case RestoreConfirmationState:
		return m.renderConfirmation()
	case RestoreProgressState:
		return titleStyle.Render("🔄 복원 중...")
	case RestoreResultState:
		return m.renderResult()
	}
	return ""
}

func (m *RestoreModel) renderInputForm() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := screenStyles(m.width)

	title := adaptiveTitleStyle.Render("🔄 점검 기록 복원")

	form := adaptiveFormStyle.Render(
		labelStyle.Render("백업 파일 (.json / .csv):") + "\n" + m.backupFileInput.View(),
	)

	parts := []string{title, form}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	parts = append(parts, adaptiveHelpStyle.Render("Ctrl+F: 파일 찾기 • Enter: 계속 • Esc: 메뉴"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *RestoreModel) renderFileSelector() string {
	title := titleStyle.Render("📁 백업 파일 선택")

	if len(m.files) == 0 {
		content := warningStyle.Render("백업 파일을 찾을 수 없습니다")
		help := helpStyle.Render("Esc: 돌아가기")
		return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
	}

	var fileList string
	for i, file := range m.files {
		cursor := " "
		style := itemStyle
		if i == m.selectedFile {
			cursor = ">"
			style = selectedItemStyle
		}
		fileList += fmt.Sprintf("%s %s\n", cursor, style.Render(file))
	}

	help := helpStyle.Render("↑/↓: 이동 • Enter: 선택 • Esc: 취소")

	return lipgloss.JoinVertical(lipgloss.Left, title, fileList, help)
}

func (m *RestoreModel) renderConfirmation() string {
	title := titleStyle.Render("⚠️  복원 확인")

	warningText := warningStyle.Render("이미 있는 ID의 기록은 건너뜁니다.")

	details := fmt.Sprintf(
		"📋 복원 정보:\n"+
			"   파일: %s\n"+
			"   형식: %s\n"+
			"   점검 기록: %d건",
		m.backupFileInput.Value(),
		strings.ToUpper(m.format),
		len(m.records),
	)

	help := helpStyle.Render("Y/Enter: 복원 • N/Esc: 취소")

	return lipgloss.JoinVertical(lipgloss.Left, title, warningText, details, help)
}

func (m *RestoreModel) renderResult() string {
	title := titleStyle.Render("🔄 복원 완료")

	var status string
	if m.result.Error != nil {
		status = errorStyle.Render(fmt.Sprintf("❌ 복원 실패: %v", m.result.Error))
	} else {
		status = successStyle.Render("✅ 복원이 완료되었습니다!")
	}

	stats := fmt.Sprintf(
		"📊 복원 결과:\n"+
			"   전체: %d건\n"+
			"   복원: %d건\n"+
			"   건너뜀: %d건\n"+
			"   실패: %d건",
		m.result.Total,
		m.result.Restored,
		m.result.Skipped,
		m.result.Failed,
	)

	help := helpStyle.Render("Enter: 다른 파일 복원 • Esc: 메뉴")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, stats, help)
}
