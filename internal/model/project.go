package model

import (
	"fmt"
	"strings"
)

// Validation limits enforced client-side before a request is made.
// They mirror the server's column constraints.
const (
	MaxProjectTitleLen       = 100
	MaxProjectDescriptionLen = 500
)

// Project represents a collection of tasks owned by one user
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int64     `json:"userId"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// ProjectStats holds derived completion statistics for one project.
// Never persisted; recomputed whenever the project's task set changes.
type ProjectStats struct {
	ProjectID          int64
	TotalTasks         int
	CompletedTasks     int
	ProgressPercentage int
}

// ValidateProjectForm checks title and description limits before submission
func ValidateProjectForm(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > MaxProjectTitleLen {
		return fmt.Errorf("title must be at most %d characters", MaxProjectTitleLen)
	}
	if len(description) > MaxProjectDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", MaxProjectDescriptionLen)
	}
	return nil
}
