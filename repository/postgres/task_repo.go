package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, user_id, title, description, category, completed, completed_at, due_date, attachment, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, userID)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = $1
	  AND ($2::boolean IS NULL OR completed = $2)
	  AND ($3 = '' OR category = $3)
	  AND ($4 = '' OR title ILIKE '%' || $4 || '%' OR description ILIKE '%' || $4 || '%')
	  AND ($5::date IS NULL OR due_date >= $5)
	  AND ($6::date IS NULL OR due_date <= $6)
	`
	if filter.DueFrom != nil || filter.DueTo != nil {
		query += ` ORDER BY due_date ASC, created_at ASC`
	} else {
		query += ` ORDER BY created_at DESC`
	}
	query += ` LIMIT NULLIF($7, 0) OFFSET $8`

	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.Completed,
		string(filter.Category),
		filter.Search,
		nullDate(filter.DueFrom),
		nullDate(filter.DueTo),
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, description, category, completed, completed_at, due_date, attachment)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Category),
		task.Completed,
		task.CompletedAt,
		nullDate(task.DueDate),
		task.Attachment,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $3,
		description = $4,
		category = $5,
		completed = $6,
		completed_at = $7,
		due_date = $8,
		attachment = $9,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Category),
		task.Completed,
		task.CompletedAt,
		nullDate(task.DueDate),
		task.Attachment,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		category    string
		completedAt *time.Time
		due         *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&category,
		&task.Completed,
		&completedAt,
		&due,
		&task.Attachment,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Category = domain.Category(category)
	task.CompletedAt = completedAt
	task.DueDate = due

	return &task, nil
}

// clampLimit caps requested page sizes. Zero means no limit so that
// aggregation paths (dashboard counters, month grid) see every task.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return 0
	case limit > 500:
		return 500
	default:
		return limit
	}
}
