package dashboard

import (
	"testing"

	"github.com/existflow/taskflow/internal/model"
)

func loadedView(t *testing.T, projects ...ProjectView) *ViewState {
	t.Helper()
	v := NewViewState()
	gen := v.BeginLoad()
	if !v.ApplyLoad(gen, projects) {
		t.Fatal("fresh load was discarded")
	}
	return v
}

func projectView(id int64, title string, tasks ...model.Task) ProjectView {
	return ProjectView{
		Project: model.Project{ID: id, Title: title},
		Tasks:   tasks,
		Stats:   ComputeStats(id, tasks),
	}
}

func TestGenerationStampDiscardsStaleLoad(t *testing.T) {
	v := NewViewState()

	staleGen := v.BeginLoad()
	freshGen := v.BeginLoad() // a second load starts before the first lands

	if v.ApplyLoad(staleGen, []ProjectView{projectView(1, "stale")}) {
		t.Fatal("stale load was applied")
	}
	if v.Loaded() {
		t.Fatal("view marked loaded by a discarded result")
	}

	if !v.ApplyLoad(freshGen, []ProjectView{projectView(2, "fresh")}) {
		t.Fatal("current load was discarded")
	}
	projects := v.Projects()
	if len(projects) != 1 || projects[0].Project.Title != "fresh" {
		t.Errorf("expected only the fresh load, got %+v", projects)
	}
}

func TestOnProjectCreatedPrepends(t *testing.T) {
	v := loadedView(t, projectView(1, "old"))

	v.OnProjectCreated(model.Project{ID: 2, Title: "new"})

	projects := v.Projects()
	if len(projects) != 2 || projects[0].Project.Title != "new" {
		t.Fatalf("new project should be first, got %+v", projects)
	}
	if projects[0].Stats.TotalTasks != 0 || projects[0].Stats.ProgressPercentage != 0 {
		t.Errorf("new project should start with zero stats, got %+v", projects[0].Stats)
	}
}

func TestOnProjectUpdatedLeavesTasksAlone(t *testing.T) {
	v := loadedView(t, projectView(1, "old title",
		model.Task{ID: 10, ProjectID: 1, Title: "keep me", IsCompleted: true}))

	sig := v.OnProjectUpdated(model.Project{ID: 1, Title: "new title"})
	if sig != SignalNone {
		t.Fatalf("unexpected signal %v", sig)
	}

	p := v.Project(1)
	if p.Project.Title != "new title" {
		t.Errorf("title not replaced: %q", p.Project.Title)
	}
	if len(p.Tasks) != 1 || p.Stats.CompletedTasks != 1 {
		t.Errorf("tasks or stats were touched: %+v", p)
	}
}

func TestOnProjectDeleted(t *testing.T) {
	v := loadedView(t,
		projectView(1, "doomed", model.Task{ID: 10, ProjectID: 1, Title: "x"}),
		projectView(2, "survivor"))

	if sig := v.OnProjectDeleted(1); sig != SignalNone {
		t.Fatalf("unexpected signal %v", sig)
	}

	projects := v.Projects()
	if len(projects) != 1 || projects[0].Project.ID != 2 {
		t.Errorf("project 1 not removed: %+v", projects)
	}
	if v.Project(1) != nil {
		t.Error("deleted project still reachable")
	}

	s := v.Summary()
	if s.TotalTasks != 0 {
		t.Errorf("deleted project's tasks still counted: %+v", s)
	}
}

func TestOnProjectDeletedWhileInDetailView(t *testing.T) {
	v := loadedView(t, projectView(1, "doomed"))
	v.EnterDetail(1)

	if sig := v.OnProjectDeleted(1); sig != SignalNavigateAway {
		t.Errorf("expected navigate-away signal, got %v", sig)
	}
}

func TestOnTaskToggledRecomputesOneProject(t *testing.T) {
	v := loadedView(t,
		projectView(1, "p1",
			model.Task{ID: 10, ProjectID: 1, Title: "a"},
			model.Task{ID: 11, ProjectID: 1, Title: "b"},
			model.Task{ID: 12, ProjectID: 1, Title: "c", IsCompleted: true}),
		projectView(2, "p2", model.Task{ID: 20, ProjectID: 2, Title: "d"}))

	before := v.Project(1).Stats

	toggled := model.Task{ID: 10, ProjectID: 1, Title: "a", IsCompleted: true}
	if sig := v.OnTaskToggled(toggled); sig != SignalNone {
		t.Fatalf("unexpected signal %v", sig)
	}

	after := v.Project(1).Stats
	if after.CompletedTasks != before.CompletedTasks+1 {
		t.Errorf("completed count: got %d, want %d", after.CompletedTasks, before.CompletedTasks+1)
	}
	if after.TotalTasks != before.TotalTasks {
		t.Errorf("total changed: %d -> %d", before.TotalTasks, after.TotalTasks)
	}
	if after.ProgressPercentage != 67 {
		t.Errorf("2/3 complete should be 67%%, got %d", after.ProgressPercentage)
	}

	// The other project is untouched
	if other := v.Project(2).Stats; other.CompletedTasks != 0 || other.TotalTasks != 1 {
		t.Errorf("unrelated project stats changed: %+v", other)
	}
}

func TestOnTaskCreatedAndDeleted(t *testing.T) {
	v := loadedView(t, projectView(1, "p1"))

	if sig := v.OnTaskCreated(model.Task{ID: 10, ProjectID: 1, Title: "a"}); sig != SignalNone {
		t.Fatalf("unexpected signal %v", sig)
	}
	if stats := v.Project(1).Stats; stats.TotalTasks != 1 {
		t.Errorf("task not appended: %+v", stats)
	}

	if sig := v.OnTaskDeleted(10); sig != SignalNone {
		t.Fatalf("unexpected signal %v", sig)
	}
	if stats := v.Project(1).Stats; stats.TotalTasks != 0 {
		t.Errorf("task not removed: %+v", stats)
	}
}

func TestStaleMutationsSignalReload(t *testing.T) {
	v := loadedView(t, projectView(1, "p1", model.Task{ID: 10, ProjectID: 1, Title: "a"}))

	cases := []struct {
		name string
		sig  Signal
	}{
		{"task created under unknown project", v.OnTaskCreated(model.Task{ID: 99, ProjectID: 42, Title: "x"})},
		{"task toggled under unknown project", v.OnTaskToggled(model.Task{ID: 99, ProjectID: 42, Title: "x"})},
		{"unknown task toggled in known project", v.OnTaskToggled(model.Task{ID: 99, ProjectID: 1, Title: "x"})},
		{"unknown task deleted", v.OnTaskDeleted(99)},
		{"unknown project updated", v.OnProjectUpdated(model.Project{ID: 42})},
		{"unknown project deleted", v.OnProjectDeleted(42)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.sig != SignalReloadRequired {
				t.Errorf("expected reload-required, got %v", tc.sig)
			}
		})
	}

	// The stale callbacks must not have fabricated state
	if len(v.Projects()) != 1 || v.Project(1).Stats.TotalTasks != 1 {
		t.Errorf("state was fabricated: %+v", v.Projects())
	}
}
