package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/taskflow/internal/api"
	"github.com/existflow/taskflow/internal/dashboard"
	"github.com/existflow/taskflow/internal/logger"
	"github.com/existflow/taskflow/internal/model"
)

// Init starts the spinner and the first load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// loadCmd stamps a new load cycle and fetches the aggregated view. The
// stamp travels with the result so a superseded load is thrown away
// instead of clobbering newer state.
func (m *Model) loadCmd() tea.Cmd {
	generation := m.view.BeginLoad()
	engine := m.engine
	return func() tea.Msg {
		views, err := engine.LoadProjectsWithStats(context.Background())
		return loadedMsg{generation: generation, views: views, err: err}
	}
}

func (m *Model) toggleTaskCmd(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		task, err := client.ToggleTask(context.Background(), id)
		return taskMutatedMsg{updated: task, err: err}
	}
}

func (m *Model) addTaskCmd(projectID int64, title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		task, err := client.CreateTask(context.Background(), projectID, api.TaskForm{Title: title})
		return taskMutatedMsg{created: task, err: err}
	}
}

func (m *Model) deleteTaskCmd(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteTask(context.Background(), id)
		return taskMutatedMsg{deleted: id, err: err}
	}
}

func (m *Model) addProjectCmd(title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		project, err := client.CreateProject(context.Background(), api.ProjectForm{Title: title})
		return projectMutatedMsg{created: project, err: err}
	}
}

func (m *Model) deleteProjectCmd(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteProject(context.Background(), id)
		return projectMutatedMsg{deleted: id, err: err}
	}
}

// handleFailure records an error for the status bar and flags an expired
// session so the view can tell the user to log in again
func (m *Model) handleFailure(err error) tea.Cmd {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindUnauthorized {
		// The gateway has already cleared the session
		m.expired = true
		m.message = "Session expired — quit and run 'taskflow login'"
		return nil
	}
	m.message = err.Error()
	return nil
}

// applySignal reacts to the reconciler's verdict on a mutation
func (m *Model) applySignal(sig dashboard.Signal) tea.Cmd {
	switch sig {
	case dashboard.SignalReloadRequired:
		logger.Info("View stale, reloading aggregate")
		m.loading = true
		return m.loadCmd()
	case dashboard.SignalNavigateAway:
		m.pane = PaneProjects
		m.taskCursor = 0
	}
	m.clampCursors()
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		if msg.err != nil {
			m.loading = false
			return m, m.handleFailure(msg.err)
		}
		if !m.view.ApplyLoad(msg.generation, msg.views) {
			// A newer load is in flight; keep spinning until it lands
			return m, nil
		}
		m.loading = false
		m.message = ""
		m.clampCursors()
		return m, nil

	case projectMutatedMsg:
		if msg.err != nil {
			return m, m.handleFailure(msg.err)
		}
		switch {
		case msg.created != nil:
			m.view.OnProjectCreated(*msg.created)
			m.projCursor = 0
			m.message = fmt.Sprintf("Created project %q", msg.created.Title)
		case msg.updated != nil:
			return m, m.applySignal(m.view.OnProjectUpdated(*msg.updated))
		case msg.deleted != 0:
			m.message = "Project deleted"
			return m, m.applySignal(m.view.OnProjectDeleted(msg.deleted))
		}
		m.clampCursors()
		return m, nil

	case taskMutatedMsg:
		if msg.err != nil {
			return m, m.handleFailure(msg.err)
		}
		switch {
		case msg.created != nil:
			return m, m.applySignal(m.view.OnTaskCreated(*msg.created))
		case msg.updated != nil:
			return m, m.applySignal(m.view.OnTaskToggled(*msg.updated))
		case msg.deleted != 0:
			return m, m.applySignal(m.view.OnTaskDeleted(msg.deleted))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeAddProject:
			return m.updateInput(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// updateInput handles keys while the add-task/add-project modal is open
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Reset()
		return m, nil

	case key.Matches(msg, keys.Enter):
		title := m.input.Value()
		mode := m.mode
		m.mode = ModeNormal
		m.input.Reset()

		if mode == ModeAddProject {
			if err := model.ValidateProjectForm(title, ""); err != nil {
				m.message = err.Error()
				return m, nil
			}
			return m, m.addProjectCmd(title)
		}

		if err := model.ValidateTaskForm(title); err != nil {
			m.message = err.Error()
			return m, nil
		}
		p := m.selectedProject()
		if p == nil {
			m.message = "No project selected"
			return m, nil
		}
		return m, m.addTaskCmd(p.Project.ID, title)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleNormalKeys handles navigation and actions in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())

	case key.Matches(msg, keys.Up):
		if m.pane == PaneProjects {
			if m.projCursor > 0 {
				m.projCursor--
				m.taskCursor = 0
			}
		} else if m.taskCursor > 0 {
			m.taskCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.pane == PaneProjects {
			if m.projCursor < len(m.view.Projects())-1 {
				m.projCursor++
				m.taskCursor = 0
			}
		} else if p := m.selectedProject(); p != nil && m.taskCursor < len(p.Tasks)-1 {
			m.taskCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Left):
		m.pane = PaneProjects
		m.view.LeaveDetail()
		return m, nil

	case key.Matches(msg, keys.Right), key.Matches(msg, keys.Tab):
		if m.pane == PaneProjects {
			if p := m.selectedProject(); p != nil {
				m.pane = PaneTasks
				m.view.EnterDetail(p.Project.ID)
			}
		} else {
			m.pane = PaneProjects
			m.view.LeaveDetail()
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		if m.pane == PaneProjects {
			if p := m.selectedProject(); p != nil {
				m.pane = PaneTasks
				m.view.EnterDetail(p.Project.ID)
			}
			return m, nil
		}
		fallthrough

	case key.Matches(msg, keys.Done):
		if m.pane == PaneTasks {
			if p := m.selectedProject(); p != nil && m.taskCursor < len(p.Tasks) {
				return m, m.toggleTaskCmd(p.Tasks[m.taskCursor].ID)
			}
		}
		return m, nil

	case key.Matches(msg, keys.Add):
		if m.selectedProject() == nil {
			m.message = "Create a project first"
			return m, nil
		}
		m.mode = ModeAddTask
		m.input.Placeholder = "Task title..."
		m.input.Focus()
		return m, nil

	case key.Matches(msg, keys.Project):
		m.mode = ModeAddProject
		m.input.Placeholder = "Project title..."
		m.input.Focus()
		return m, nil

	case key.Matches(msg, keys.Delete):
		if m.pane == PaneTasks {
			if p := m.selectedProject(); p != nil && m.taskCursor < len(p.Tasks) {
				return m, m.deleteTaskCmd(p.Tasks[m.taskCursor].ID)
			}
			return m, nil
		}
		if p := m.selectedProject(); p != nil {
			return m, m.deleteProjectCmd(p.Project.ID)
		}
		return m, nil
	}

	return m, nil
}
