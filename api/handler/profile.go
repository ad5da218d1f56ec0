package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/focusflow/backend/api/transport"
	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/pkg/httpcontext"
	profileUC "github.com/focusflow/backend/usecase/profile"
)

type ProfileHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewProfileHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get profile
// @Tags profile
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	profile, err := h.uc.GetProfile(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, profile)
}

// @Summary Update profile
// @Tags profile
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
	if userID == "" {
		return
	}

	var req transport.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		if parsed, err := time.Parse("2006-01-02", req.BirthDate); err == nil {
			birthDate = &parsed
		}
	}

	profile := &domain.Profile{
		UserID:             userID,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Title:              req.Title,
		Bio:                req.Bio,
		Location:           req.Location,
		BirthDate:          birthDate,
		Phone:              req.Phone,
		Website:            req.Website,
		Avatar:             req.Avatar,
		EmailNotifications: req.EmailNotifications,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateProfile(stdCtx, profile)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Remove avatar
// @Tags profile
// @Router /api/v1/profile/avatar [delete]
func (h *ProfileHandler) RemoveAvatar(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.RemoveAvatar(stdCtx, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
