package tui

import (
	"context"
	"fmt"
	"strings"

	"boilerInspector/internal/backup"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

type BackupModel struct {
	service         *backup.Service
	state           BackupState
	outputDirInput  textinput.Model
	formatSelection int
	formats         []string
	result          BackupResult
	width           int
	height          int
}

type BackupState int

const (
	BackupInputState BackupState = iota
	BackupFormatSelectState
	BackupProgressState
	BackupResultState
)

type BackupResult struct {
	RecordCount int
	FilePath    string
	Format      string
	Error       error
}

type BackupCompleteMsg struct {
	Result BackupResult
}

func NewBackupModel(service *backup.Service) *BackupModel {
	outputDirInput := textinput.New()
	outputDirInput.Placeholder = "./backups"
	outputDirInput.SetValue("./backups")
	outputDirInput.TextStyle = inputStyle
	outputDirInput.Focus()

	return &BackupModel{
		service:        service,
		state:          BackupInputState,
		outputDirInput: outputDirInput,
		formats:        []string{"JSON", "CSV"},
	}
}

func (m *BackupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *BackupModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *BackupModel) Capturing() bool {
	return m.state == BackupFormatSelectState
}

func (m *BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case BackupInputState:
			return m.updateInputState(msg)
		case BackupFormatSelectState:
			return m.updateFormatSelectState(msg)
		case BackupProgressState:
			return m, nil
		case BackupResultState:
			if msg.String() == "enter" || msg.String() == " " {
				m.reset()
				return m, nil
			}
		}

	case BackupCompleteMsg:
		m.result = msg.Result
		m.state = BackupResultState
		return m, nil
	}

	return m, nil
}

func (m *BackupModel) updateInputState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		if strings.TrimSpace(m.outputDirInput.Value()) != "" {
			m.state = BackupFormatSelectState
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.outputDirInput, cmd = m.outputDirInput.Update(msg)
	return m, cmd
}

func (m *BackupModel) updateFormatSelectState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.formatSelection > 0 {
			m.formatSelection--
		}
	case "down", "j":
		if m.formatSelection < len(m.formats)-1 {
			m.formatSelection++
		}
	case "enter":
		return m.startBackup()
	case "esc":
		m.state = BackupInputState
	}
	return m, nil
}

func (m *BackupModel) startBackup() (tea.Model, tea.Cmd) {
	m.state = BackupProgressState
	return m, m.performBackup(
		strings.TrimSpace(m.outputDirInput.Value()),
		strings.ToLower(m.formats[m.formatSelection]),
	)
}

func (m *BackupModel) performBackup(outputDir, format string) tea.Cmd {
	return func() tea.Msg {
		result := BackupResult{Format: format}

		path, count, err := m.service.BackupHistory(context.Background(), outputDir, format)
		if err != nil {
			result.Error = fmt.Errorf("백업 실패: %w", err)
			return BackupCompleteMsg{Result: result}
		}

		result.FilePath = path
		result.RecordCount = count
		return BackupCompleteMsg{Result: result}
	}
}

func (m *BackupModel) reset() {
	m.state = BackupInputState
	m.result = BackupResult{}
	m.outputDirInput.Focus()
}

func (m *BackupModel) View() string {
	switch m.state {
	case BackupInputState:
		return m.renderInputForm()
	case BackupFormatSelectState:
		return m.renderFormatSelector()
	case BackupProgressState:
		return titleStyle.Render("💾 백업 중...")
	case BackupResultState:
		return m.renderResult()
	}
	return ""
}

func (m *BackupModel) renderInputForm() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := screenStyles(m.width)

	title := adaptiveTitleStyle.Render("💾 점검 기록 백업")

	form := adaptiveFormStyle.Render(
		labelStyle.Render("백업 폴더:") + "\n" + m.outputDirInput.View(),
	)

	help := adaptiveHelpStyle.Render("Enter: 형식 선택 • Esc: 메뉴")

	return lipgloss.JoinVertical(lipgloss.Left, title, form, help)
}

func (m *BackupModel) renderFormatSelector() string {
	title := titleStyle.Render("📄 백업 형식 선택")

	var formatList string
	for i, format := range m.formats {
		cursor := " "
		style := itemStyle
		if i == m.formatSelection {
			cursor = ">"
			style = selectedItemStyle
		}
		formatList += fmt.Sprintf("%s %s\n", cursor, style.Render(format))
	}

	help := helpStyle.Render("↑/↓: 이동 • Enter: 백업 시작 • Esc: 뒤로")

	return lipgloss.JoinVertical(lipgloss.Left, title, formatList, help)
}

func (m *BackupModel) renderResult() string {
	title := titleStyle.Render("💾 백업 완료")

	if m.result.Error != nil {
		status := errorStyle.Render(fmt.Sprintf("❌ 백업 실패: %v", m.result.Error))
		help := helpStyle.Render("Enter: 다시 시도 • Esc: 메뉴")
		return lipgloss.JoinVertical(lipgloss.Left, title, status, help)
	}

	status := successStyle.Render("✅ 백업이 완료되었습니다!")
	stats := fmt.Sprintf(
		"📊 백업 정보:\n"+
			"   파일: %s\n"+
			"   형식: %s\n"+
			"   점검 기록: %d건",
		m.result.FilePath,
		strings.ToUpper(m.result.Format),
		m.result.RecordCount,
	)

	help := helpStyle.Render("Enter: 새 백업 • Esc: 메뉴")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, stats, help)
}
