package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasknote/backend/api/transport"
	"github.com/tasknote/backend/domain"
	"github.com/tasknote/backend/pkg/httpcontext"
	taskUC "github.com/tasknote/backend/usecase/task"
)

const dueDateLayout = "2006-01-02"

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks, newest first
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	if req.Title == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "title required", nil))
		return
	}
	due, ok := parseDueDate(req.DueDate)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid due_date", nil))
		return
	}

	input := taskUC.Input{
		Title:         req.Title,
		DueDate:       due,
		DurationHours: clampDuration(req.DurationHours),
		Notes:         req.Notes,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Insert(stdCtx, userID, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task fields; status is re-derived server-side
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	body := ctx.PostBody()
	var req transport.TaskUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	if req.Title != nil && *req.Title == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "title required", nil))
		return
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Completed:   req.Completed,
		CompletedAt: parseOptionalTime(req.CompletedAt),
		Notes:       req.Notes,
	}
	if req.DurationHours != nil {
		clamped := clampDuration(*req.DurationHours)
		patch.DurationHours = &clamped
	}
	if req.DueDate != nil {
		due, ok := parseDueDate(*req.DueDate)
		if !ok {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid due_date", nil))
			return
		}
		if due != nil {
			patch.DueDate = due
		}
	} else if transport.RawDueDateNull(body) {
		patch.ClearDueDate = true
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	found, err := h.uc.Patch(stdCtx, userID, id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !found {
		h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotFound), "task not found", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Re-derive every task status against the current time
// @Tags tasks
// @Router /api/v1/tasks/audit [post]
func (h *TaskHandler) AuditTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	changed, err := h.uc.AuditAll(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.AuditResponse{Changed: changed})
}

// parseDueDate accepts yyyy-mm-dd or RFC3339. The second return is false
// when a non-empty value matches neither layout, so callers reject it
// instead of dropping it silently.
func parseDueDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	if parsed, err := time.Parse(dueDateLayout, value); err == nil {
		return &parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed, true
	}
	return nil, false
}

func parseOptionalTime(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, *value); err == nil {
		return &parsed
	}
	return nil
}

func clampDuration(hours int) int {
	if hours < 0 {
		return 0
	}
	return hours
}
