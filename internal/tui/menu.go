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

// MenuLoadedMsg carries the figures shown above the menu.
type MenuLoadedMsg struct {
	Today  models.Date
	Stats  summary.Stats
	Latest *models.InspectionRecord
}

type menuEntry struct {
	label  string
	screen Screen
	quit   bool
}

var menuEntries = []menuEntry{
	{label: "📝 새 점검", screen: InspectionScreen},
	{label: "📊 대시보드", screen: DashboardScreen},
	{label: "💾 점검 기록 백업", screen: BackupScreen},
	{label: "🔄 점검 기록 복원", screen: RestoreScreen},
	{label: "🚪 종료", quit: true},
}

// MenuModel is the start screen: today's date, a short history overview
// and the list of screens.
type MenuModel struct {
	svc      *inspection.Service
	cursor   int
	overview *MenuLoadedMsg
	width    int
	height   int
}

func NewMenuModel(svc *inspection.Service) *MenuModel {
	return &MenuModel{svc: svc}
}

func (m *MenuModel) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads the history overview.
func (m *MenuModel) Refresh() tea.Cmd {
	return func() tea.Msg {
		stats, recent := m.svc.Dashboard(context.Background(), 1)
		msg := MenuLoadedMsg{Today: m.svc.Today(), Stats: stats}
		if len(recent) > 0 {
			msg.Latest = &recent[0]
		}
		return msg
	}
}

func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *MenuModel) Capturing() bool {
	return false
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MenuLoadedMsg:
		m.overview = &msg
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(menuEntries)-1 {
				m.cursor++
			}
		case "enter", " ":
			entry := menuEntries[m.cursor]
			if entry.quit {
				return m, tea.Quit
			}
			return m, ChangeScreen(entry.screen)
		}
	}
	return m, nil
}

var weekdays = []string{"일", "월", "화", "수", "목", "금", "토"}

func (m *MenuModel) renderOverview() string {
	if m.overview == nil {
		return mutedStyle.Render("기록을 불러오는 중...")
	}
	o := m.overview
	lines := []string{
		headerStyle.Render(fmt.Sprintf("오늘 %s (%s)", o.Today, weekdays[o.Today.Weekday()])),
		fmt.Sprintf("전체 점검 %d건 • 이번 달 %d건", o.Stats.Total, o.Stats.ThisMonth),
	}
	if o.Latest != nil {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("최근 점검: %s %s ", o.Latest.InspectionDate, o.Latest.SiteName))+
			resultBadge(o.Latest.Result))
	} else {
		lines = append(lines, mutedStyle.Render("아직 점검 기록이 없습니다."))
	}
	return strings.Join(lines, "\n")
}

func (m *MenuModel) View() string {
	title, _, help := screenStyles(m.width)

	var menu strings.Builder
	for i, entry := range menuEntries {
		if i == m.cursor {
			menu.WriteString("> " + selectedItemStyle.Render(entry.label) + "\n")
		} else {
			menu.WriteString("  " + itemStyle.Render(entry.label) + "\n")
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title.Render("🔥 보일러 점검 기록기"),
		m.renderOverview(),
		"",
		menu.String(),
		help.Render("↑/↓ 또는 j/k: 이동 • Enter: 선택 • q: 종료"),
	)
	if m.width > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
