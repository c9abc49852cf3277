package tui

import (
	"fmt"

	"boilerInspector/internal/backup"
	"boilerInspector/internal/inspection"
	"boilerInspector/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Screen int

const (
	MenuScreen Screen = iota
	InspectionScreen
	DashboardScreen
	BackupScreen
	RestoreScreen
)

// subModel is implemented by every screen.
type subModel interface {
	tea.Model
	SetSize(width, height int)
	// Capturing reports whether the screen is in a nested state that
	// handles esc and plain letter keys itself.
	Capturing() bool
}

type Model struct {
	currentScreen   Screen
	menuModel       *MenuModel
	inspectionModel *InspectionModel
	dashboardModel  *DashboardModel
	backupModel     *BackupModel
	restoreModel    *RestoreModel
	err             error
	quitting        bool
	width           int
	height          int
}

func NewModel(svc *inspection.Service, st store.Store, logger *zap.Logger) Model {
	backupService := backup.NewService(st, logger)
	return Model{
		currentScreen:   MenuScreen,
		menuModel:       NewMenuModel(svc),
		inspectionModel: NewInspectionModel(svc),
		dashboardModel:  NewDashboardModel(svc),
		backupModel:     NewBackupModel(backupService),
		restoreModel:    NewRestoreModel(backupService),
	}
}

func (m Model) Init() tea.Cmd {
	return m.menuModel.Init()
}

func (m Model) screen(s Screen) subModel {
	switch s {
	case InspectionScreen:
		return m.inspectionModel
	case DashboardScreen:
		return m.dashboardModel
	case BackupScreen:
		return m.backupModel
	case RestoreScreen:
		return m.restoreModel
	}
	return m.menuModel
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, s := range []Screen{MenuScreen, InspectionScreen, DashboardScreen, BackupScreen, RestoreScreen} {
			m.screen(s).SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		current := m.screen(m.currentScreen)
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			if m.currentScreen == MenuScreen {
				m.quitting = true
				return m, tea.Quit
			}
		case "esc":
			if m.currentScreen != MenuScreen && !current.Capturing() {
				m.currentScreen = MenuScreen
				m.err = nil
				return m, m.menuModel.Refresh()
			}
		}

	case ScreenChangeMsg:
		m.currentScreen = msg.Screen
		m.err = nil
		if msg.Screen == DashboardScreen {
			return m, m.dashboardModel.Refresh()
		}
		return m, m.screen(msg.Screen).Init()

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	// Results of background work go to the screen that started it.
	case MenuLoadedMsg:
		_, cmd := m.menuModel.Update(msg)
		return m, cmd
	case SubmitCompleteMsg:
		_, cmd := m.inspectionModel.Update(msg)
		return m, cmd
	case DashboardLoadedMsg, ReportRedeliveredMsg:
		_, cmd := m.dashboardModel.Update(msg)
		return m, cmd
	case BackupCompleteMsg:
		_, cmd := m.backupModel.Update(msg)
		return m, cmd
	case RestoreCompleteMsg:
		_, cmd := m.restoreModel.Update(msg)
		return m, cmd
	}

	_, cmd := m.screen(m.currentScreen).Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return "점검 기록기를 종료합니다. 👋\n"
	}

	content := m.screen(m.currentScreen).View()

	if m.err != nil {
		content += "\n" + errorStyle.Render(fmt.Sprintf("❌ 오류: %v", m.err))
	}

	return content
}

type ScreenChangeMsg struct {
	Screen Screen
}

type ErrorMsg struct {
	Err error
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
