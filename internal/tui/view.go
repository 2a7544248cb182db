package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/taskflow/internal/model"
)

// View renders the dashboard
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.loading && !m.view.Loaded() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading dashboard...")
	}

	sidebar := m.renderSidebar()
	taskPane := m.renderTaskPane()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, taskPane)

	if m.mode == ModeAddTask || m.mode == ModeAddProject {
		modal := m.renderModal()
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeHelp {
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderSidebar() string {
	sidebarWidth := 34
	var b strings.Builder

	summary := m.view.Summary()
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("TaskFlow") + "\n")
	if identity := m.client.Session().Identity(); identity != nil {
		b.WriteString(HelpStyle.Render(identity.Name) + "\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", 28)) + "\n")
	overall := fmt.Sprintf("%d projects · %d/%d tasks · %s",
		summary.TotalProjects, summary.CompletedTasks, summary.TotalTasks,
		progressStyle(summary.OverallProgress).Render(fmt.Sprintf("%d%%", summary.OverallProgress)))
	b.WriteString(HelpStyle.Render(overall) + "\n\n")

	for i, p := range m.view.Projects() {
		cursor := "  "
		style := ItemStyle
		if i == m.projCursor {
			cursor = "❯ "
			if m.pane == PaneProjects {
				style = ItemSelectedStyle
			}
		}
		pct := progressStyle(p.Stats.ProgressPercentage).Render(fmt.Sprintf("%3d%%", p.Stats.ProgressPercentage))
		line := fmt.Sprintf("%s%-16s %s %d/%d", cursor, truncate(p.Project.Title, 16), pct,
			p.Stats.CompletedTasks, p.Stats.TotalTasks)
		b.WriteString(style.Render(line) + "\n")
	}

	return SidebarStyle.Width(sidebarWidth).Height(m.height - 2).Render(b.String())
}

func (m Model) renderTaskPane() string {
	width := m.width - 36
	p := m.selectedProject()
	if p == nil {
		return TaskPaneStyle.Width(width).Height(m.height - 2).Render("No projects yet. Press p to create one.")
	}

	var b strings.Builder
	header := fmt.Sprintf("%s — %d of %d tasks completed", p.Project.Title,
		p.Stats.CompletedTasks, p.Stats.TotalTasks)
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(header) + "\n")
	b.WriteString(renderProgressBar(p.Stats.ProgressPercentage, 30) + "\n\n")

	if len(p.Tasks) == 0 {
		b.WriteString(HelpStyle.Render("No tasks. Press a to add one."))
	}

	now := time.Now()
	for i, t := range p.Tasks {
		mark := "[ ]"
		style := ItemStyle
		if t.IsCompleted {
			mark = "[x]"
			style = TaskDoneStyle
		}
		if i == m.taskCursor && m.pane == PaneTasks {
			style = ItemSelectedStyle
		}
		line := fmt.Sprintf("%s %s", mark, truncate(t.Title, width-20))
		if badge := urgencyBadge(&t, now); badge != "" {
			line += "  " + badge
		}
		b.WriteString(style.Render(line) + "\n")
	}

	return TaskPaneStyle.Width(width).Height(m.height - 2).Render(b.String())
}

func (m Model) renderStatusBar() string {
	help := "tab panes · a add task · p new project · x toggle · d delete · r refresh · ? help · q quit"
	if m.message != "" {
		help = m.message
		if m.expired {
			help = OverdueStyle.Render(m.message)
		}
	}
	if m.loading {
		help = m.spinner.View() + " " + help
	}
	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	title := "New task"
	if m.mode == ModeAddProject {
		title = "New project"
	}
	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" +
		m.input.View() + "\n\n" +
		HelpStyle.Render("enter save · esc cancel")
	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	lines := []string{
		"TaskFlow dashboard",
		"",
		"  ↑/k ↓/j     move",
		"  tab ←/→     switch pane",
		"  enter       open project / toggle task",
		"  a           add task to selected project",
		"  p           create project",
		"  x           toggle task done",
		"  d           delete selected task or project",
		"  r           reload from server",
		"  q           quit",
		"",
		"press any key to close",
	}
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center,
		ModalStyle.Render(strings.Join(lines, "\n")))
}

// urgencyBadge renders the due-date classification of a task
func urgencyBadge(t *model.Task, now time.Time) string {
	switch t.Urgency(now) {
	case model.UrgencyOverdue:
		return OverdueStyle.Render("overdue")
	case model.UrgencyDueToday:
		return DueTodayStyle.Render("due today")
	case model.UrgencyUpcoming:
		return UpcomingStyle.Render("due " + t.DueDate.String())
	default:
		return ""
	}
}

// renderProgressBar draws a colored completion bar
func renderProgressBar(pct, width int) string {
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return progressStyle(pct).Render(bar) + fmt.Sprintf(" %d%%", pct)
}

// truncate shortens a string to max runes with an ellipsis
func truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
