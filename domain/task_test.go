package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		completed bool
		duration  int
		elapsed   time.Duration
		want      TaskStatus
	}{
		{name: "completed wins regardless of elapsed time", completed: true, duration: 1, elapsed: 100 * time.Hour, want: TaskCompleted},
		{name: "completed wins with zero elapsed", completed: true, duration: 0, elapsed: 0, want: TaskCompleted},
		{name: "within duration is pending", duration: 2, elapsed: time.Hour, want: TaskPending},
		{name: "elapsed exactly equal to duration is pending", duration: 2, elapsed: 2 * time.Hour, want: TaskPending},
		{name: "just past duration fails", duration: 2, elapsed: 2*time.Hour + time.Second, want: TaskFailed},
		{name: "zero duration fails after seconds", duration: 0, elapsed: 5 * time.Second, want: TaskFailed},
		{name: "zero duration at creation instant is pending", duration: 0, elapsed: 0, want: TaskPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{
				CreatedAt:     created,
				DurationHours: tt.duration,
				Completed:     tt.completed,
			}
			got := ComputeStatus(task, created.Add(tt.elapsed))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskPatchApply(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	due := created.AddDate(0, 0, 7)

	base := func() *Task {
		return &Task{
			ID:            "t1",
			UserID:        "u1",
			Title:         "original",
			DueDate:       &due,
			CreatedAt:     created,
			DurationHours: 4,
			Status:        TaskPending,
			Notes:         "keep me",
		}
	}

	t.Run("unset fields are retained", func(t *testing.T) {
		task := base()
		title := "renamed"
		TaskPatch{Title: &title}.Apply(task, created.Add(time.Hour))

		assert.Equal(t, "renamed", task.Title)
		assert.Equal(t, "keep me", task.Notes)
		assert.Equal(t, 4, task.DurationHours)
		assert.Equal(t, &due, task.DueDate)
	})

	t.Run("status is always recomputed", func(t *testing.T) {
		task := base()
		task.Status = TaskFailed // stale denormalized value
		TaskPatch{}.Apply(task, created.Add(time.Hour))
		assert.Equal(t, TaskPending, task.Status)
	})

	t.Run("setting completed forces completed status", func(t *testing.T) {
		task := base()
		completed := true
		TaskPatch{Completed: &completed}.Apply(task, created.Add(100*time.Hour))
		assert.Equal(t, TaskCompleted, task.Status)
	})

	t.Run("elapsed time past duration earns failed", func(t *testing.T) {
		task := base()
		notes := "late"
		TaskPatch{Notes: &notes}.Apply(task, created.Add(5*time.Hour))
		assert.Equal(t, TaskFailed, task.Status)
		assert.Equal(t, "late", task.Notes)
	})

	t.Run("clear due date", func(t *testing.T) {
		task := base()
		TaskPatch{ClearDueDate: true}.Apply(task, created)
		assert.Nil(t, task.DueDate)
	})
}
