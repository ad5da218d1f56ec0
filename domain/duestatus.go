package domain

import (
	"fmt"
	"time"
)

// DueState enumerates the urgency buckets a task can fall into.
type DueState string

const (
	DueStateNone      DueState = "no_due_date"
	DueStateCompleted DueState = "completed"
	DueStateOverdue   DueState = "overdue"
	DueStateToday     DueState = "due_today"
	DueStateTomorrow  DueState = "due_tomorrow"
	DueStateUpcoming  DueState = "due_in_days"
)

// DueStatus classifies a task's due-date urgency relative to a reference date.
// Days carries the day distance for the overdue and upcoming states.
type DueStatus struct {
	State DueState `json:"state"`
	Days  int      `json:"days,omitempty"`
}

// Classify derives a task's due status for the given "today". Pure and total:
// a missing due date and completed tasks short-circuit before any arithmetic.
func Classify(task Task, today time.Time) DueStatus {
	if task.DueDate == nil {
		return DueStatus{State: DueStateNone}
	}
	if task.Completed {
		return DueStatus{State: DueStateCompleted}
	}
	delta := DaysBetween(today, *task.DueDate)
	switch {
	case delta < 0:
		return DueStatus{State: DueStateOverdue, Days: -delta}
	case delta == 0:
		return DueStatus{State: DueStateToday}
	case delta == 1:
		return DueStatus{State: DueStateTomorrow}
	default:
		return DueStatus{State: DueStateUpcoming, Days: delta}
	}
}

// IsOverdue reports whether a pending task's due date has passed.
func IsOverdue(task Task, today time.Time) bool {
	if task.DueDate == nil || task.Completed {
		return false
	}
	return DaysBetween(today, *task.DueDate) < 0
}

// Label renders the status the way the dashboard displays it.
func (s DueStatus) Label() string {
	switch s.State {
	case DueStateNone:
		return "No due date"
	case DueStateCompleted:
		return "Completed"
	case DueStateOverdue:
		if s.Days == 1 {
			return "Overdue by 1 day"
		}
		return fmt.Sprintf("Overdue by %d days", s.Days)
	case DueStateToday:
		return "Due today"
	case DueStateTomorrow:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", s.Days)
	}
}
