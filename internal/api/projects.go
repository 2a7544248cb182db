package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/existflow/taskflow/internal/model"
)

// ProjectForm is the create/update payload for a project
type ProjectForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListProjects fetches all projects for the current user, most recent first
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project by id
func (c *Client) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a new project. Not idempotent: every call
// produces a new identity.
func (c *Client) CreateProject(ctx context.Context, form ProjectForm) (*model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodPost, "/projects", form, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject replaces a project's title and description. Idempotent:
// repeating an identical update yields the same final state.
func (c *Client) UpdateProject(ctx context.Context, id int64, form ProjectForm) (*model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), form, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project. Its tasks are cascaded server-side.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}
