package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/focusflow/backend/internal/services"
	"github.com/focusflow/backend/pkg/httpcontext"
	"github.com/focusflow/backend/repository"
	reminderUC "github.com/focusflow/backend/usecase/reminder"
)

type ReminderHandler struct {
	baseHandler
	selector   *reminderUC.UseCase
	users      repository.UserRepository
	mailer     services.Mailer
	windowDays int
}

func NewReminderHandler(selector *reminderUC.UseCase, users repository.UserRepository, mailer services.Mailer, windowDays int, adapter *httpcontext.Adapter, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		baseHandler: newBaseHandler(adapter, logger),
		selector:    selector,
		users:       users,
		mailer:      mailer,
		windowDays:  windowDays,
	}
}

// @Summary Send the pending-task reminder to the current user now
// @Tags reminders
// @Router /api/v1/reminders/send [post]
func (h *ReminderHandler) SendNow(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.users.GetByID(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	now := time.Now()
	tasks, err := h.selector.SelectPending(stdCtx, userID, now, h.windowDays)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if len(tasks) == 0 {
		h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
			"sent":    false,
			"message": "No pending tasks to remind",
		})
		return
	}

	if err := h.mailer.SendReminder(stdCtx, *user, tasks, now); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"sent":    true,
		"message": "Reminder email sent to you!",
		"tasks":   len(tasks),
	})
}
