package dashboard

import (
	"testing"

	"github.com/existflow/taskflow/internal/model"
)

func makeTasks(projectID int64, completed, pending int) []model.Task {
	var tasks []model.Task
	id := int64(1)
	for i := 0; i < completed; i++ {
		tasks = append(tasks, model.Task{ID: id, ProjectID: projectID, Title: "t", IsCompleted: true})
		id++
	}
	for i := 0; i < pending; i++ {
		tasks = append(tasks, model.Task{ID: id, ProjectID: projectID, Title: "t"})
		id++
	}
	return tasks
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(1, nil)
	if stats.TotalTasks != 0 || stats.CompletedTasks != 0 || stats.ProgressPercentage != 0 {
		t.Errorf("empty task set should be all zeros, got %+v", stats)
	}
}

func TestComputeStatsRounding(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		pending   int
		wantPct   int
	}{
		{"one third rounds down", 1, 2, 33},
		{"two thirds rounds up", 2, 1, 67},
		{"half of eight", 4, 4, 50},
		{"all done", 5, 0, 100},
		{"none done", 0, 5, 0},
		{"exact half rounds up", 1, 1, 50},
		{"one of six", 1, 5, 17},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := ComputeStats(1, makeTasks(1, tc.completed, tc.pending))
			if stats.ProgressPercentage != tc.wantPct {
				t.Errorf("%d/%d complete: got %d%%, want %d%%",
					tc.completed, tc.completed+tc.pending, stats.ProgressPercentage, tc.wantPct)
			}
		})
	}
}

func TestComputeStatsInvariants(t *testing.T) {
	for completed := 0; completed <= 7; completed++ {
		for pending := 0; pending <= 7; pending++ {
			stats := ComputeStats(1, makeTasks(1, completed, pending))
			if stats.CompletedTasks > stats.TotalTasks {
				t.Fatalf("completed %d exceeds total %d", stats.CompletedTasks, stats.TotalTasks)
			}
			if stats.ProgressPercentage < 0 || stats.ProgressPercentage > 100 {
				t.Fatalf("percentage %d out of range for %d/%d",
					stats.ProgressPercentage, completed, completed+pending)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	projects := []ProjectView{
		{Project: model.Project{ID: 1}, Tasks: makeTasks(1, 2, 1), Stats: ComputeStats(1, makeTasks(1, 2, 1))},
		{Project: model.Project{ID: 2}, Tasks: makeTasks(2, 0, 3), Stats: ComputeStats(2, makeTasks(2, 0, 3))},
		{Project: model.Project{ID: 3}, Stats: ComputeStats(3, nil)},
	}

	s := Summarize(projects)
	if s.TotalProjects != 3 {
		t.Errorf("TotalProjects = %d", s.TotalProjects)
	}
	if s.TotalTasks != 6 || s.CompletedTasks != 2 || s.PendingTasks != 4 {
		t.Errorf("task counts wrong: %+v", s)
	}
	// 2/6 complete is 33.3%, rounded half-up to 33
	if s.OverallProgress != 33 {
		t.Errorf("OverallProgress = %d, want 33", s.OverallProgress)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.OverallProgress != 0 || s.TotalProjects != 0 {
		t.Errorf("empty summary should be zeros, got %+v", s)
	}
}
