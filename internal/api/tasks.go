package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/existflow/taskflow/internal/model"
)

// TaskForm is the create/update payload for a task
type TaskForm struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DueDate     *model.Date `json:"dueDate,omitempty"`
}

// ListTasks fetches all tasks belonging to a project
func (c *Client) ListTasks(ctx context.Context, projectID int64) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/tasks", projectID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask adds a task to a project
func (c *Client) CreateTask(ctx context.Context, projectID int64, form TaskForm) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/projects/%d/tasks", projectID), form, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleTask flips a task's completion state and returns the new record
func (c *Client) ToggleTask(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/complete", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask replaces a task's editable fields
func (c *Client) UpdateTask(ctx context.Context, id int64, form TaskForm) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), form, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}
