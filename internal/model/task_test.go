package model

import (
	"testing"
	"time"
)

func TestClassifyDueDate(t *testing.T) {
	// A fixed afternoon so "today" is unambiguous
	now := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

	yesterday := NewDate(2025, time.March, 14)
	today := NewDate(2025, time.March, 15)
	tomorrow := NewDate(2025, time.March, 16)

	cases := []struct {
		name string
		due  *Date
		want DueUrgency
	}{
		{"no due date", nil, UrgencyNone},
		{"yesterday is overdue", &yesterday, UrgencyOverdue},
		{"today is due today", &today, UrgencyDueToday},
		{"tomorrow is upcoming", &tomorrow, UrgencyUpcoming},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyDueDate(tc.due, now)
			if got != tc.want {
				t.Errorf("ClassifyDueDate(%v, %v) = %v, want %v", tc.due, now, got, tc.want)
			}
		})
	}
}

func TestClassifyDueDateIsPure(t *testing.T) {
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	due := NewDate(2025, time.June, 3)

	first := ClassifyDueDate(&due, now)
	for i := 0; i < 10; i++ {
		if got := ClassifyDueDate(&due, now); got != first {
			t.Fatalf("classification changed between calls: %v then %v", first, got)
		}
	}
}

func TestClassifyDueDateLateEvening(t *testing.T) {
	// 23:59 is still the same calendar day
	now := time.Date(2025, time.March, 15, 23, 59, 0, 0, time.UTC)
	today := NewDate(2025, time.March, 15)
	if got := ClassifyDueDate(&today, now); got != UrgencyDueToday {
		t.Errorf("expected due today at 23:59, got %v", got)
	}
}

func TestValidateTaskForm(t *testing.T) {
	if err := ValidateTaskForm("buy milk"); err != nil {
		t.Errorf("valid title rejected: %v", err)
	}
	if err := ValidateTaskForm("   "); err == nil {
		t.Error("blank title accepted")
	}
	long := make([]byte, MaxTaskTitleLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateTaskForm(string(long)); err == nil {
		t.Error("overlong title accepted")
	}
}
