package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/focusflow/backend/pkg/httpcontext"
	calendarUC "github.com/focusflow/backend/usecase/calendar"
	dashboardUC "github.com/focusflow/backend/usecase/dashboard"
)

type CalendarHandler struct {
	baseHandler
	calendar  *calendarUC.UseCase
	dashboard *dashboardUC.UseCase
}

func NewCalendarHandler(calendar *calendarUC.UseCase, dashboard *dashboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		baseHandler: newBaseHandler(adapter, logger),
		calendar:    calendar,
		dashboard:   dashboard,
	}
}

// @Summary Month grid, dashboard summary and daily tasks
// @Tags calendar
// @Router /api/v1/calendar [get]
//
// The month and date query parameters are optional; malformed values fall
// back to today rather than failing the request.
func (h *CalendarHandler) GetCalendar(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
	if userID == "" {
		return
	}

	today := time.Now()
	year, month := calendarUC.ParseMonth(string(ctx.QueryArgs().Peek("month")), today)
	selected := dashboardUC.ParseDate(string(ctx.QueryArgs().Peek("date")), today)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	grid, err := h.calendar.BuildMonthGrid(stdCtx, userID, year, month, today)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	view, err := h.dashboard.Build(stdCtx, userID, today, selected)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"grid":      grid,
		"dashboard": view,
	})
}
