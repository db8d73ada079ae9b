package repository

import (
	"context"

	"github.com/tasknote/backend/domain"
)

// TaskRepository persists task rows. Every method is scoped by the owning
// user id so cross-user access is impossible at the query level.
type TaskRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)
	// List returns the user's tasks ordered by created_at descending.
	List(ctx context.Context, userID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	// Update persists the full mutable field set of an existing row scoped
	// to (id, user_id). Missing rows surface as domain.ErrTaskNotFound.
	Update(ctx context.Context, task *domain.Task) error
	// UpdateStatus rewrites only the derived status column.
	UpdateStatus(ctx context.Context, userID, id string, status domain.TaskStatus) error
	// Delete is idempotent; rows not owned by userID are left untouched.
	Delete(ctx context.Context, userID, id string) error
}
