package tui

import (
	"context"
	"fmt"
	"strings"

	"boilerInspector/internal/inspection"
	"boilerInspector/internal/models"
	"boilerInspector/internal/summary"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type DashboardLoadedMsg struct {
	Stats  summary.Stats
	Recent []models.InspectionRecord
}

type ReportRedeliveredMsg struct {
	Path string
	Err  error
}

type DashboardModel struct {
	svc    *inspection.Service
	stats  summary.Stats
	recent []models.InspectionRecord
	cursor int
	loaded bool
	status string
	width  int
	height int
}

func NewDashboardModel(svc *inspection.Service) *DashboardModel {
	return &DashboardModel{svc: svc}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads the figures from the store.
func (m *DashboardModel) Refresh() tea.Cmd {
	m.status = ""
	return func() tea.Msg {
		stats, recent := m.svc.Dashboard(context.Background(), summary.DefaultRecent)
		return DashboardLoadedMsg{Stats: stats, Recent: recent}
	}
}

func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *DashboardModel) Capturing() bool {
	return false
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DashboardLoadedMsg:
		m.stats = msg.Stats
		m.recent = msg.Recent
		m.loaded = true
		if m.cursor >= len(m.recent) {
			m.cursor = 0
		}
		return m, nil

	case ReportRedeliveredMsg:
		if msg.Err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("❌ 보고서 생성 실패: %v", msg.Err))
		} else {
			m.status = successStyle.Render("📄 보고서: " + msg.Path)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.recent)-1 {
				m.cursor++
			}
		case "r":
			return m, m.Refresh()
		case "enter":
			if len(m.recent) > 0 {
				return m, m.redeliver(m.recent[m.cursor].ID)
			}
		}
	}
	return m, nil
}

func (m *DashboardModel) redeliver(id string) tea.Cmd {
	return func() tea.Msg {
		path, err := m.svc.Redeliver(context.Background(), id)
		return ReportRedeliveredMsg{Path: path, Err: err}
	}
}

func (m *DashboardModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := screenStyles(m.width)
	title := adaptiveTitleStyle.Render("📊 점검 현황")

	if !m.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("불러오는 중..."))
	}

	stat := func(label string, value int) string {
		return statBoxStyle.Render(fmt.Sprintf("%s\n%d", label, value))
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("총 점검 수", m.stats.Total),
		stat("이번 달", m.stats.ThisMonth),
		stat(string(models.ResultNormal), m.stats.Normal),
		stat(string(models.ResultCaution), m.stats.Caution),
		stat(string(models.ResultDefective), m.stats.Defective),
	)

	var list strings.Builder
	if len(m.recent) == 0 {
		list.WriteString(mutedStyle.Render("아직 점검 기록이 없습니다."))
	}
	for i, rec := range m.recent {
		cursor := " "
		line := fmt.Sprintf("%s  %s  %s  %s  %d대",
			rec.InspectionDate, rec.SiteName, rec.Address, rec.Inspector, rec.TotalProducts())
		if i == m.cursor {
			cursor = ">"
			line = selectedItemStyle.Render(line)
		} else {
			line = itemStyle.Render(line)
		}
		list.WriteString(fmt.Sprintf("%s %s %s\n", cursor, resultBadge(rec.Result), line))
	}

	recentTitle := labelStyle.Render(fmt.Sprintf("최근 점검 기록 (%d)", len(m.recent)))
	help := adaptiveHelpStyle.Render("↑/↓: 이동 • Enter: 보고서 다시 생성 • r: 새로고침 • Esc: 메뉴")

	parts := []string{title, stats, "", recentTitle, list.String()}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
