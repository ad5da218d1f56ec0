package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/focusflow/backend/api/transport"
	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/pkg/httpcontext"
	authUC "github.com/focusflow/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc         *authUC.UseCase
	jwtSecret  string
	jwtIssuer  string
	defaultTTL time.Duration
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, jwtSecret, jwtIssuer string, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		jwtSecret:   jwtSecret,
		jwtIssuer:   jwtIssuer,
		defaultTTL:  ttl,
	}
}

// @Summary Create an account
// @Tags auth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Register(stdCtx, req.Username, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary Log in and receive a bearer token
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Username == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	ttl := h.ttlFromRequest(req.TTL)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, session, err := h.uc.Login(stdCtx, req.Username, req.Password, ttl)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	token, err := h.signToken(user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"token":   token,
		"session": session,
		"user":    user,
	})
}

// @Summary Refresh an existing session
// @Tags auth
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	var req transport.RefreshRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.SessionID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	ttl := h.ttlFromRequest(req.TTL)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.RefreshSession(stdCtx, req.SessionID, ttl)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	token, err := h.signToken(session.UserID, session.ID, session.ExpiresAt)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"token":   token,
		"session": session,
	})
}

// @Summary Revoke the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	sessionID := string(ctx.Request.Header.Peek("X-Session-ID"))
	if sessionID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing session", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.RevokeSession(stdCtx, sessionID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Change password
// @Tags auth
// @Router /api/v1/auth/password [post]
func (h *AuthHandler) ChangePassword(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
	if userID == "" {
		return
	}

	var req transport.ChangePasswordRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ChangePassword(stdCtx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Delete the account and everything it owns
// @Tags auth
// @Router /api/v1/account [delete]
func (h *AuthHandler) DeleteAccount(ctx *fasthttp.RequestCtx) {
	userID := h.authedUserID(ctx)
	if userID == "" {
		return
	}

	var req transport.DeleteAccountRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteAccount(stdCtx, userID, req.Password); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *AuthHandler) signToken(userID, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"session_id": sessionID,
		"iss":        h.jwtIssuer,
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) ttlFromRequest(ttlSeconds int) time.Duration {
	if ttlSeconds <= 0 {
		return h.defaultTTL
	}
	return time.Duration(ttlSeconds) * time.Second
}
