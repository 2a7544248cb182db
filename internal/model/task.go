package model

import (
	"fmt"
	"strings"
	"time"
)

// MaxTaskTitleLen mirrors the server's task title constraint
const MaxTaskTitleLen = 200

// Task represents a single todo item belonging to one project
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     *Date     `json:"dueDate"`
	IsCompleted bool      `json:"isCompleted"`
	ProjectID   int64     `json:"projectId"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// DueUrgency classifies a task's due date relative to a reference time
type DueUrgency int

const (
	UrgencyNone DueUrgency = iota
	UrgencyOverdue
	UrgencyDueToday
	UrgencyUpcoming
)

// String returns the display label for the urgency
func (u DueUrgency) String() string {
	switch u {
	case UrgencyOverdue:
		return "overdue"
	case UrgencyDueToday:
		return "due today"
	case UrgencyUpcoming:
		return "upcoming"
	default:
		return "none"
	}
}

// ClassifyDueDate buckets a due date against now. The reference time is an
// explicit argument: the answer changes as the calendar day advances, so it
// must never be read implicitly.
func ClassifyDueDate(due *Date, now time.Time) DueUrgency {
	if due == nil {
		return UrgencyNone
	}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d := due.In(now.Location())
	if d.Before(startOfDay) {
		return UrgencyOverdue
	}
	if d.Before(startOfDay.Add(24 * time.Hour)) {
		return UrgencyDueToday
	}
	return UrgencyUpcoming
}

// Urgency classifies this task's due date against now
func (t *Task) Urgency(now time.Time) DueUrgency {
	return ClassifyDueDate(t.DueDate, now)
}

// ValidateTaskForm checks the task title before submission
func ValidateTaskForm(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > MaxTaskTitleLen {
		return fmt.Errorf("title must be at most %d characters", MaxTaskTitleLen)
	}
	return nil
}
