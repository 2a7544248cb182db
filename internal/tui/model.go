package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/taskflow/internal/api"
	"github.com/existflow/taskflow/internal/dashboard"
	"github.com/existflow/taskflow/internal/logger"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneProjects Pane = iota
	PaneTasks
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeAddProject
	ModeHelp
)

// Model is the dashboard TUI model
type Model struct {
	client *api.Client
	engine *dashboard.Engine
	view   *dashboard.ViewState

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	projCursor int
	taskCursor int
	loading    bool
	expired    bool

	spinner spinner.Model
	input   textinput.Model
	message string
}

// NewModel creates the dashboard model
func NewModel(client *api.Client) Model {
	logger.Info("Initializing dashboard model")

	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Primary)

	return Model{
		client:  client,
		engine:  dashboard.NewEngine(client),
		view:    dashboard.NewViewState(),
		pane:    PaneProjects,
		mode:    ModeNormal,
		spinner: sp,
		input:   ti,
		loading: true,
	}
}

// selectedProject returns the project view under the cursor, or nil
func (m *Model) selectedProject() *dashboard.ProjectView {
	projects := m.view.Projects()
	if m.projCursor < 0 || m.projCursor >= len(projects) {
		return nil
	}
	return &projects[m.projCursor]
}

// clampCursors keeps both cursors inside the current lists
func (m *Model) clampCursors() {
	projects := m.view.Projects()
	if m.projCursor >= len(projects) {
		m.projCursor = len(projects) - 1
	}
	if m.projCursor < 0 {
		m.projCursor = 0
	}
	taskCount := 0
	if p := m.selectedProject(); p != nil {
		taskCount = len(p.Tasks)
	}
	if m.taskCursor >= taskCount {
		m.taskCursor = taskCount - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}
