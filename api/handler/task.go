package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/focusflow/backend/api/transport"
	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/pkg/httpcontext"
	"github.com/focusflow/backend/repository"
	taskUC "github.com/focusflow/backend/usecase/task"
)

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

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
	if userID == "" {
		return
	}

	filter := repository.TaskFilter{
		UserID:   userID,
		Category: domain.Category(ctx.QueryArgs().Peek("category")),
		Search:   string(ctx.QueryArgs().Peek("q")),
		Limit:    parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:   parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}
	if raw := string(ctx.QueryArgs().Peek("completed")); raw != "" {
		if completed, err := strconv.ParseBool(raw); err == nil {
			filter.Completed = &completed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewList(tasks, len(tasks), filter.Limit, filter.Offset))
}

// @Summary Get a single task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
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

	task, err := h.uc.GetTask(stdCtx, userID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
	if userID == "" {
		return
	}

	task, ok := h.parseTask(ctx, userID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
	if userID == "" {
		return
	}

	task, ok := h.parseTask(ctx, userID)
	if !ok {
		return
	}

	if task.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			task.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Toggle task completion
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
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

	toggled, err := h.uc.ToggleTask(stdCtx, userID, id, time.Now())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, toggled)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
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

	if err := h.uc.DeleteTask(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx, userID string) (*domain.Task, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return nil, false
	}

	var due *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "due_date must be YYYY-MM-DD", nil))
			return nil, false
		}
		due = &parsed
	}

	return &domain.Task{
		ID:          req.ID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		DueDate:     due,
		Attachment:  req.Attachment,
	}, true
}


func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
