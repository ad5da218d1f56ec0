package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

// Day is a single cell of the month grid. Placeholder cells for days that
// belong to adjacent months carry no day number, no tasks, and are never
// flagged as today.
type Day struct {
	Day     int           `json:"day,omitempty"`
	InMonth bool          `json:"in_month"`
	IsToday bool          `json:"is_today"`
	Tasks   []domain.Task `json:"tasks,omitempty"`
}

// Week is a Sunday-first row of seven cells.
type Week []Day

// MonthGrid is the view model for one calendar month.
type MonthGrid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Weeks []Week     `json:"weeks"`
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

// BuildMonthGrid lays out the given month as complete Sunday-first weeks and
// attaches each of the user's tasks to the cell matching its due date.
func (uc *UseCase) BuildMonthGrid(ctx context.Context, userID string, year int, month time.Month, today time.Time) (*MonthGrid, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	dayCount := domain.DaysInMonth(year, month)
	last := first.AddDate(0, 0, dayCount-1)

	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{
		UserID:  userID,
		DueFrom: &first,
		DueTo:   &last,
	})
	if err != nil {
		return nil, err
	}

	byDay := make(map[int][]domain.Task)
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		due := *task.DueDate
		if due.Year() != year || due.Month() != month {
			// range query already bounds this; exact-date grouping only
			continue
		}
		byDay[due.Day()] = append(byDay[due.Day()], task)
	}

	cells := make([]Day, 0, dayCount+13)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, Day{})
	}
	for d := 1; d <= dayCount; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, today.Location())
		cells = append(cells, Day{
			Day:     d,
			InMonth: true,
			IsToday: domain.SameDate(date, today),
			Tasks:   byDay[d],
		})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Day{})
	}

	grid := &MonthGrid{Year: year, Month: month}
	for i := 0; i < len(cells); i += 7 {
		grid.Weeks = append(grid.Weeks, Week(cells[i:i+7]))
	}
	return grid, nil
}

// ParseMonth interprets a "YYYY-MM" query parameter, falling back to today's
// month when the parameter is absent or malformed.
func ParseMonth(raw string, today time.Time) (int, time.Month) {
	if raw != "" {
		if parsed, err := time.Parse("2006-01", raw); err == nil {
			return parsed.Year(), parsed.Month()
		}
	}
	return today.Year(), today.Month()
}
