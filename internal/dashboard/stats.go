package dashboard

import (
	"math"

	"github.com/existflow/taskflow/internal/model"
)

// ComputeStats derives completion statistics for one project's task set.
// Pure: same tasks, same stats. The percentage is the mathematical ratio
// rounded half-up, so 1/3 complete is 33 and 2/3 is 67. An empty task set
// is 0%, a domain default rather than an error.
func ComputeStats(projectID int64, tasks []model.Task) model.ProjectStats {
	stats := model.ProjectStats{ProjectID: projectID, TotalTasks: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted {
			stats.CompletedTasks++
		}
	}
	if stats.TotalTasks > 0 {
		ratio := float64(stats.CompletedTasks) / float64(stats.TotalTasks)
		stats.ProgressPercentage = int(math.Round(ratio * 100))
	}
	return stats
}

// Summary aggregates across every project for the dashboard header
type Summary struct {
	TotalProjects   int
	TotalTasks      int
	CompletedTasks  int
	PendingTasks    int
	OverallProgress int // percentage across all tasks, round-half-up
}

// Summarize folds all project views into a global summary
func Summarize(projects []ProjectView) Summary {
	s := Summary{TotalProjects: len(projects)}
	for _, p := range projects {
		s.TotalTasks += p.Stats.TotalTasks
		s.CompletedTasks += p.Stats.CompletedTasks
	}
	s.PendingTasks = s.TotalTasks - s.CompletedTasks
	if s.TotalTasks > 0 {
		ratio := float64(s.CompletedTasks) / float64(s.TotalTasks)
		s.OverallProgress = int(math.Round(ratio * 100))
	}
	return s
}
