package dashboard

import (
	"sync"

	"github.com/google/uuid"

	"github.com/existflow/taskflow/internal/logger"
	"github.com/existflow/taskflow/internal/model"
)

// Signal tells the consumer what, if anything, it must do after a
// mutation was reconciled
type Signal int

const (
	// SignalNone means the local state absorbed the mutation
	SignalNone Signal = iota
	// SignalReloadRequired means the mutation referenced state this view
	// does not hold; a full reload is the only safe response
	SignalReloadRequired
	// SignalNavigateAway means the entity the detail view was showing is
	// gone and the consumer must leave that view
	SignalNavigateAway
)

// ViewState is the in-memory aggregated view for the current session.
// Only reconciliation methods mutate it, and only in response to a
// completed gateway call or an applied load; each full load carries a
// generation stamp so a late fan-out result can never clobber a newer
// load cycle.
type ViewState struct {
	mu         sync.Mutex
	generation string
	projects   []ProjectView
	loaded     bool
	detailID   int64 // project shown in the detail view, 0 for none
}

// NewViewState creates an empty view
func NewViewState() *ViewState {
	return &ViewState{}
}

// BeginLoad stamps a new load cycle and returns its generation. Results
// from any earlier cycle become stale the moment this returns.
func (v *ViewState) BeginLoad() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation = uuid.New().String()
	return v.generation
}

// ApplyLoad installs a completed load. It reports false, and changes
// nothing, when the generation is not the one BeginLoad issued last.
func (v *ViewState) ApplyLoad(generation string, projects []ProjectView) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if generation != v.generation {
		logger.Debug("Discarding stale load", logger.F("generation", generation))
		return false
	}
	v.projects = projects
	v.loaded = true
	return true
}

// Loaded reports whether a load has been applied
func (v *ViewState) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Projects returns a copy of the current project views, in server order
func (v *ViewState) Projects() []ProjectView {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]ProjectView, len(v.projects))
	copy(out, v.projects)
	return out
}

// Project returns the view for one project, or nil when it is not held
func (v *ViewState) Project(id int64) *ProjectView {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.indexOf(id); i >= 0 {
		view := v.projects[i]
		return &view
	}
	return nil
}

// Summary aggregates the current view
func (v *ViewState) Summary() Summary {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Summarize(v.projects)
}

// EnterDetail marks a project as shown in the detail view
func (v *ViewState) EnterDetail(projectID int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.detailID = projectID
}

// LeaveDetail returns to the list view
func (v *ViewState) LeaveDetail() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.detailID = 0
}

// indexOf finds a project by id. Caller holds v.mu.
func (v *ViewState) indexOf(projectID int64) int {
	for i := range v.projects {
		if v.projects[i].Project.ID == projectID {
			return i
		}
	}
	return -1
}

// recompute rebuilds one project's derived stats from its task list.
// Every task mutation funnels through here so the handlers cannot drift
// from the rounding rule. Caller holds v.mu.
func (v *ViewState) recompute(i int) {
	v.projects[i].Stats = ComputeStats(v.projects[i].Project.ID, v.projects[i].Tasks)
}

// OnProjectCreated inserts the new project at the head of the list with
// zero-task stats, matching the server's most-recent-first ordering
func (v *ViewState) OnProjectCreated(p model.Project) Signal {
	v.mu.Lock()
	defer v.mu.Unlock()
	view := ProjectView{Project: p, Stats: model.ProjectStats{ProjectID: p.ID}}
	v.projects = append([]ProjectView{view}, v.projects...)
	return SignalNone
}

// OnProjectUpdated replaces the project record, leaving its tasks and
// stats untouched
func (v *ViewState) OnProjectUpdated(p model.Project) Signal {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexOf(p.ID)
	if i < 0 {
		return SignalReloadRequired
	}
	v.projects[i].Project = p
	return SignalNone
}

// OnProjectDeleted removes the project along with its tasks and stats.
// When the detail view was showing it, the consumer is told to leave.
func (v *ViewState) OnProjectDeleted(id int64) Signal {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexOf(id)
	if i < 0 {
		return SignalReloadRequired
	}
	v.projects = append(v.projects[:i], v.projects[i+1:]...)
	if v.detailID == id {
		v.detailID = 0
		return SignalNavigateAway
	}
	return SignalNone
}

// OnTaskCreated appends the task to its project and recomputes that
// project's stats only
func (v *ViewState) OnTaskCreated(t model.Task) Signal {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexOf(t.ProjectID)
	if i < 0 {
		// A parent this view has never seen means the view is stale;
		// never fabricate one.
		return SignalReloadRequired
	}
	v.projects[i].Tasks = append(v.projects[i].Tasks, t)
	v.recompute(i)
	return SignalNone
}

// OnTaskToggled replaces the task record inside its project and
// recomputes that project's stats
func (v *ViewState) OnTaskToggled(t model.Task) Signal {
	return v.replaceTask(t)
}

// OnTaskUpdated replaces the task record inside its project and
// recomputes that project's stats
func (v *ViewState) OnTaskUpdated(t model.Task) Signal {
	return v.replaceTask(t)
}

func (v *ViewState) replaceTask(t model.Task) Signal {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexOf(t.ProjectID)
	if i < 0 {
		return SignalReloadRequired
	}
	for j := range v.projects[i].Tasks {
		if v.projects[i].Tasks[j].ID == t.ID {
			v.projects[i].Tasks[j] = t
			v.recompute(i)
			return SignalNone
		}
	}
	return SignalReloadRequired
}

// OnTaskDeleted removes the task and recomputes its project's stats
func (v *ViewState) OnTaskDeleted(taskID int64) Signal {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.projects {
		for j := range v.projects[i].Tasks {
			if v.projects[i].Tasks[j].ID == taskID {
				tasks := v.projects[i].Tasks
				v.projects[i].Tasks = append(tasks[:j], tasks[j+1:]...)
				v.recompute(i)
				return SignalNone
			}
		}
	}
	return SignalReloadRequired
}
