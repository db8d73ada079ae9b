package domain

import "time"

// TaskStatus is the derived lifecycle state of a task. It is always a
// function of (completed, created_at, duration_hours) and the current time,
// never an independently settable field.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Task represents a user-owned activity item with deadline semantics.
type Task struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DurationHours int        `json:"duration_hours"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Status        TaskStatus `json:"status"`
	Notes         string     `json:"notes"`
}

// ComputeStatus derives the task's lifecycle status at the given reference
// time. A completed task is always "completed". Otherwise the task fails as
// soon as strictly more hours have elapsed since creation than its declared
// duration; elapsed time exactly equal to the duration is still pending.
// A zero-duration task therefore fails almost immediately after creation.
func ComputeStatus(t *Task, now time.Time) TaskStatus {
	if t.Completed {
		return TaskCompleted
	}
	if now.Sub(t.CreatedAt).Hours() > float64(t.DurationHours) {
		return TaskFailed
	}
	return TaskPending
}

// TaskPatch carries the mutable fields of a task. Nil pointers mean "keep
// the stored value". Status is deliberately absent: it is recomputed from
// the merged result on every write.
type TaskPatch struct {
	Title         *string
	DueDate       *time.Time
	ClearDueDate  bool
	DurationHours *int
	Completed     *bool
	CompletedAt   *time.Time
	Notes         *string
}

// Apply merges the patch over the task in place and recomputes the derived
// status against now. Unset fields are retained.
func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.DurationHours != nil {
		t.DurationHours = *p.DurationHours
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.CompletedAt != nil {
		t.CompletedAt = p.CompletedAt
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	t.Status = ComputeStatus(t, now)
}
