package tui

import (
	"github.com/existflow/taskflow/internal/dashboard"
	"github.com/existflow/taskflow/internal/model"
)

// loadedMsg delivers a completed full load. The generation stamp was taken
// when the load began; Update discards the message if a newer load has been
// stamped since.
type loadedMsg struct {
	generation string
	views      []dashboard.ProjectView
	err        error
}

// projectMutatedMsg delivers the result of a project create/update/delete
type projectMutatedMsg struct {
	created *model.Project
	updated *model.Project
	deleted int64 // 0 when not a deletion
	err     error
}

// taskMutatedMsg delivers the result of a task create/update/toggle/delete
type taskMutatedMsg struct {
	created *model.Task
	updated *model.Task // toggle and edit both land here
	deleted int64       // 0 when not a deletion
	err     error
}
