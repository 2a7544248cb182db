// Package dashboard builds and maintains the aggregated project/task view:
// it fans out one task fetch per project, derives completion statistics,
// and keeps the derived state consistent after single-entity mutations.
package dashboard

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/existflow/taskflow/internal/api"
	"github.com/existflow/taskflow/internal/logger"
	"github.com/existflow/taskflow/internal/model"
)

// ProjectView pairs a project with its tasks and derived statistics
type ProjectView struct {
	Project model.Project
	Tasks   []model.Task
	Stats   model.ProjectStats
}

// Engine fetches and joins the aggregated view
type Engine struct {
	client *api.Client
}

// NewEngine creates an aggregation engine over the given gateway
func NewEngine(client *api.Client) *Engine {
	return &Engine{client: client}
}

// LoadProjectsWithStats fetches the project list, then the tasks of every
// project concurrently, and joins the results by project id.
//
// The failure policy is all-or-nothing: a failed project-list fetch fails
// the load, and so does any single task fetch. A dashboard with a silent
// gap in its statistics is worse than an error the user can retry.
//
// Output order is the server's project order. The join is keyed by project
// id, so completion order of the concurrent fetches never shows through.
func (e *Engine) LoadProjectsWithStats(ctx context.Context) ([]ProjectView, error) {
	projects, err := e.client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded project list", logger.F("count", len(projects)))

	var mu sync.Mutex
	tasksByProject := make(map[int64][]model.Task, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range projects {
		g.Go(func() error {
			tasks, err := e.client.ListTasks(gctx, p.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			tasksByProject[p.ID] = tasks
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("Task fan-out failed", logger.F("error", err))
		return nil, err
	}

	views := make([]ProjectView, len(projects))
	for i, p := range projects {
		tasks := tasksByProject[p.ID]
		views[i] = ProjectView{
			Project: p,
			Tasks:   tasks,
			Stats:   ComputeStats(p.ID, tasks),
		}
	}
	return views, nil
}

// LoadProject fetches one project and its tasks in parallel, for the
// detail view
func (e *Engine) LoadProject(ctx context.Context, id int64) (*ProjectView, error) {
	g, gctx := errgroup.WithContext(ctx)

	var project *model.Project
	var tasks []model.Task
	g.Go(func() error {
		var err error
		project, err = e.client.GetProject(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = e.client.ListTasks(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ProjectView{
		Project: *project,
		Tasks:   tasks,
		Stats:   ComputeStats(id, tasks),
	}, nil
}
