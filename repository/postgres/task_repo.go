package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasknote/backend/domain"
	"github.com/tasknote/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	const query = `
	SELECT id, user_id, title, due_date, created_at, duration_hours, completed, completed_at, status, notes
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, userID)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, userID string) ([]domain.Task, error) {
	const query = `
	SELECT id, user_id, title, due_date, created_at, duration_hours, completed, completed_at, status, notes
	FROM tasks
	WHERE user_id = $1
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
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

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, due_date, created_at, duration_hours, completed, completed_at, status, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		nullTime(task.DueDate),
		task.CreatedAt,
		task.DurationHours,
		task.Completed,
		nullTime(task.CompletedAt),
		string(task.Status),
		task.Notes,
	)
	return err
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $3,
		due_date = $4,
		duration_hours = $5,
		completed = $6,
		completed_at = $7,
		status = $8,
		notes = $9
	WHERE id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		nullTime(task.DueDate),
		task.DurationHours,
		task.Completed,
		nullTime(task.CompletedAt),
		string(task.Status),
		task.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, userID, id string, status domain.TaskStatus) error {
	const query = `UPDATE tasks SET status = $3 WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, id, userID)
	return err
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		due       *time.Time
		completed *time.Time
		status    string
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&due,
		&task.CreatedAt,
		&task.DurationHours,
		&task.Completed,
		&completed,
		&status,
		&task.Notes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.DueDate = due
	task.CompletedAt = completed
	task.Status = domain.TaskStatus(status)
	return &task, nil
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
