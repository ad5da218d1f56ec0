package task

import (
	"context"
	"strings"
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

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, userID, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, userID, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	if _, err := domain.ParseCategory(string(task.Category)); err != nil {
		return nil, err
	}
	// a freshly created task is always pending
	task.Completed = false
	task.CompletedAt = nil

	return uc.tasks.Create(ctx, task)
}

// UpdateTask edits the mutable fields of an owned task. The completion flag is
// changed only through ToggleTask, and an update without a new attachment
// keeps the existing one (last-write-wins, no separate clear action).
func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	if _, err := domain.ParseCategory(string(task.Category)); err != nil {
		return nil, err
	}

	existing, err := uc.tasks.GetByID(ctx, task.UserID, task.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = task.Title
	existing.Description = task.Description
	existing.Category = task.Category
	existing.DueDate = task.DueDate
	if task.Attachment != "" {
		existing.Attachment = task.Attachment
	}

	if err := uc.tasks.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ToggleTask flips completion state, stamping or clearing the completion time.
func (uc *UseCase) ToggleTask(ctx context.Context, userID, id string, now time.Time) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	task.ToggleStatus(now)

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, userID, id string) error {
	return uc.tasks.Delete(ctx, userID, id)
}
