package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/tasknote/backend/api/transport"
	"github.com/tasknote/backend/domain"
	taskUC "github.com/tasknote/backend/usecase/task"
)

type memTaskRepo struct {
	rows map[string]*domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{rows: make(map[string]*domain.Task)}
}

func (r *memTaskRepo) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	row, ok := r.rows[id]
	if !ok || row.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	clone := *row
	return &clone, nil
}

func (r *memTaskRepo) List(ctx context.Context, userID string) ([]domain.Task, error) {
	var tasks []domain.Task
	for _, row := range r.rows {
		if row.UserID == userID {
			tasks = append(tasks, *row)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *memTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	clone := *task
	r.rows[task.ID] = &clone
	return nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	row, ok := r.rows[task.ID]
	if !ok || row.UserID != task.UserID {
		return domain.ErrTaskNotFound
	}
	clone := *task
	r.rows[task.ID] = &clone
	return nil
}

func (r *memTaskRepo) UpdateStatus(ctx context.Context, userID, id string, status domain.TaskStatus) error {
	row, ok := r.rows[id]
	if !ok || row.UserID != userID {
		return domain.ErrTaskNotFound
	}
	row.Status = status
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, userID, id string) error {
	row, ok := r.rows[id]
	if ok && row.UserID == userID {
		delete(r.rows, id)
	}
	return nil
}

func newTaskHandlerForTest(t *testing.T) (*TaskHandler, *memTaskRepo) {
	t.Helper()
	repo := newMemTaskRepo()
	return NewTaskHandler(taskUC.New(repo, nil), nil, nil), repo
}

func taskRequest(t *testing.T, payload interface{}) *fasthttp.RequestCtx {
	t.Helper()
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("X-User-ID", "u1")
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		ctx.Request.SetBody(body)
	}
	return ctx
}

func TestCreateTaskRejectsInvalidDueDate(t *testing.T) {
	h, repo := newTaskHandlerForTest(t)

	ctx := taskRequest(t, map[string]interface{}{
		"title":    "Ship",
		"due_date": "next tuesday",
	})
	h.CreateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Empty(t, repo.rows, "nothing persisted on rejected input")

	var envelope transport.Envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	assert.Equal(t, string(domain.ErrCodeInvalid), envelope.Code)
}

func TestCreateTaskAcceptsDateLayouts(t *testing.T) {
	for _, due := range []string{"", "2026-03-08", "2026-03-08T12:00:00Z"} {
		h, repo := newTaskHandlerForTest(t)

		ctx := taskRequest(t, map[string]interface{}{
			"title":    "Ship",
			"due_date": due,
		})
		h.CreateTask(ctx)

		assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode(), "due_date %q", due)
		assert.Len(t, repo.rows, 1)
	}
}

func TestUpdateTaskRejectsInvalidDueDate(t *testing.T) {
	h, repo := newTaskHandlerForTest(t)

	seed := taskRequest(t, map[string]interface{}{"title": "Ship"})
	h.CreateTask(seed)
	require.Len(t, repo.rows, 1)
	var id string
	for existing := range repo.rows {
		id = existing
	}

	ctx := taskRequest(t, map[string]interface{}{"due_date": "garbage"})
	ctx.SetUserValue("id", id)
	h.UpdateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Nil(t, repo.rows[id].DueDate, "row left unchanged")
}
