// Package task implements the task status engine: user-scoped CRUD plus the
// on-demand audit that re-derives every stored status from the clock.
package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasknote/backend/domain"
	"github.com/tasknote/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger

	now func() time.Time
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// Input carries the caller-settable fields for a new task. Title must be
// non-empty and DurationHours non-negative; both are enforced at the API
// boundary before this layer is reached.
type Input struct {
	Title         string
	DueDate       *time.Time
	DurationHours int
	Notes         string
}

// Insert creates a task owned by userID. New tasks always start pending and
// not completed, with created_at set to the current time.
func (uc *UseCase) Insert(ctx context.Context, userID string, in Input) (*domain.Task, error) {
	task := &domain.Task{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         in.Title,
		DueDate:       in.DueDate,
		CreatedAt:     uc.now(),
		DurationHours: in.DurationHours,
		Completed:     false,
		Status:        domain.TaskPending,
		Notes:         in.Notes,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the user's tasks, most recently created first.
func (uc *UseCase) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return uc.tasks.List(ctx, userID)
}

// Patch merges the supplied fields over the stored row scoped to
// (id, userID), recomputes the derived status from the merged result, and
// persists it. It reports false when the task does not exist or belongs to
// another user; that is not an error. Callers cannot set status directly:
// TaskPatch has no status field, so any client-supplied value is discarded
// before the recompute.
func (uc *UseCase) Patch(ctx context.Context, userID, id string, patch domain.TaskPatch) (bool, error) {
	existing, err := uc.tasks.GetByID(ctx, userID, id)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return false, nil
		}
		return false, err
	}

	patch.Apply(existing, uc.now())

	if err := uc.tasks.Update(ctx, existing); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the task scoped to its owner. Deleting an absent or
// foreign task is a no-op.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.tasks.Delete(ctx, userID, id)
}

// AuditAll re-derives the status of every task owned by userID against the
// current time, persists only the rows whose stored status differs, and
// returns how many changed. This is the only path that fails a pending task
// purely because time passed.
func (uc *UseCase) AuditAll(ctx context.Context, userID string) (int, error) {
	tasks, err := uc.tasks.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := uc.now()
	changed := 0
	for i := range tasks {
		t := &tasks[i]
		derived := domain.ComputeStatus(t, now)
		if derived == t.Status {
			continue
		}
		if err := uc.tasks.UpdateStatus(ctx, userID, t.ID, derived); err != nil {
			return changed, err
		}
		changed++
	}

	if changed > 0 {
		uc.logger.Info("task audit applied", zap.String("user_id", userID), zap.Int("changed", changed))
	}
	return changed, nil
}
