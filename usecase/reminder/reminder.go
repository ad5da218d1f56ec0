package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{tasks: tasks, logger: logger}
}

// SelectPending returns the user's pending tasks due on or before
// today+windowDays, ordered by due date. The window is open on the past side:
// a task overdue by a month is included for any window. Tasks without a due
// date never qualify, completed tasks are always excluded.
func (uc *UseCase) SelectPending(ctx context.Context, userID string, today time.Time, windowDays int) ([]domain.Task, error) {
	end := domain.DateOnly(today)
	if windowDays > 0 {
		end = end.AddDate(0, 0, windowDays)
	}

	pending := false
	return uc.tasks.List(ctx, repository.TaskFilter{
		UserID:    userID,
		Completed: &pending,
		DueTo:     &end,
	})
}
