package repository

import (
	"context"
	"time"

	"github.com/focusflow/backend/domain"
)

// TaskFilter narrows List results. Every query is scoped to one owning user;
// the zero value of the optional fields leaves them unapplied. When a due-date
// bound is set, results come back ordered by due date ascending instead of the
// default newest-first order, and tasks without a due date are excluded.
// A Limit of zero means no cap: callers that aggregate over all of a user's
// tasks rely on that; the HTTP list endpoint supplies its own default.
type TaskFilter struct {
	UserID    string
	Completed *bool
	Category  domain.Category
	Search    string
	DueFrom   *time.Time
	DueTo     *time.Time
	Limit     int
	Offset    int
}

type TaskRepository interface {
	// GetByID returns the task only when it belongs to userID; a wrong owner
	// is reported as domain.ErrTaskNotFound.
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, userID, id string) error
}
