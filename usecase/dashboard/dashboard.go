package dashboard

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

// Summary carries the dashboard counters. The counts cover different subsets,
// so no arithmetic relation holds between them.
type Summary struct {
	TotalScheduled int `json:"total_scheduled"`
	OverdueCount   int `json:"overdue_count"`
	DueThisWeek    int `json:"due_this_week"`
	CompletedCount int `json:"completed_count"`
	CompletedToday int `json:"completed_today"`
}

// View is the dashboard view model for one user and one selected date.
type View struct {
	Summary      Summary       `json:"summary"`
	SelectedDate time.Time     `json:"selected_date"`
	DailyTasks   []domain.Task `json:"daily_tasks"`
}

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

// Build computes the summary counters and the task list for the selected date
// over a single snapshot of the user's tasks.
//
// The "due this week" window runs Monday through Sunday around today; the
// month grid elsewhere is Sunday-first. The asymmetry is intentional and
// matches the shipped behavior.
func (uc *UseCase) Build(ctx context.Context, userID string, today, selectedDate time.Time) (*View, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	weekStart := domain.StartOfWeek(today)

	view := &View{SelectedDate: domain.DateOnly(selectedDate)}
	for _, task := range tasks {
		if task.DueDate != nil {
			view.Summary.TotalScheduled++
			offset := domain.DaysBetween(weekStart, *task.DueDate)
			if offset >= 0 && offset <= 6 {
				view.Summary.DueThisWeek++
			}
		}
		if domain.IsOverdue(task, today) {
			view.Summary.OverdueCount++
		}
		if task.Completed {
			view.Summary.CompletedCount++
			if task.CompletedAt != nil && domain.SameDate(*task.CompletedAt, today) {
				view.Summary.CompletedToday++
			}
		}
		if task.DueOn(selectedDate) {
			view.DailyTasks = append(view.DailyTasks, task)
		}
	}

	sort.SliceStable(view.DailyTasks, func(i, j int) bool {
		return view.DailyTasks[i].CreatedAt.Before(view.DailyTasks[j].CreatedAt)
	})

	return view, nil
}

// ParseDate interprets a "YYYY-MM-DD" query parameter, falling back to today
// when the parameter is absent or malformed.
func ParseDate(raw string, today time.Time) time.Time {
	if raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			return parsed
		}
	}
	return domain.DateOnly(today)
}
