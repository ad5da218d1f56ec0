package domain

import "time"

// Category is a closed classification for tasks. Unknown values are rejected
// at the store boundary instead of being persisted as free text.
type Category string

const (
	CategoryWork     Category = "Work"
	CategorySchool   Category = "School"
	CategoryPersonal Category = "Personal"
)

// ParseCategory validates a raw category value.
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryWork, CategorySchool, CategoryPersonal:
		return Category(raw), nil
	}
	return "", NewError(ErrCodeInvalid, "unknown category")
}

// Task represents a user-owned unit of work with an optional due date.
// CompletedAt is non-nil iff Completed is true.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Attachment  string     `json:"attachment,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToggleStatus flips the completion flag, keeping CompletedAt in sync.
func (t *Task) ToggleStatus(now time.Time) {
	if t == nil {
		return
	}
	t.Completed = !t.Completed
	if t.Completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}

// DueOn reports whether the task is due exactly on the given calendar date.
func (t *Task) DueOn(date time.Time) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	return SameDate(*t.DueDate, date)
}
