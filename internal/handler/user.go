package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/handler/dto"
	"github.com/tasknest/tasknest/internal/middleware"
	"github.com/tasknest/tasknest/internal/service"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /users. A successful registration also opens a
// session: the signed token is returned in the x-auth response header.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	token, err := h.svc.IssueSession(r.Context(), user)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	w.Header().Set(middleware.AuthHeader, token)
	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Login handles POST /users/login. The response mirrors registration: the
// user body plus a fresh session token in the x-auth header.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	token, err := h.svc.IssueSession(r.Context(), user)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	w.Header().Set(middleware.AuthHeader, token)
	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	writeJSON(w, http.StatusOK, dto.UserResponse{
		ID:    sess.UserID,
		Email: sess.Email,
	})
}

// Logout handles DELETE /users/me/token. It removes the presenting
// token from the user's token list; other sessions stay valid.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	if err := h.svc.RevokeSession(r.Context(), sess.UserID, sess.Token); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("session_revoked", "user_id", sess.UserID)

	w.WriteHeader(http.StatusOK)
}

// handleServiceError maps service errors to HTTP responses. Failures the
// client cannot be blamed for still map to 400: this API never reports
// 5xx for store errors.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "Email address is invalid")
	case errors.Is(err, service.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "PASSWORD_TOO_SHORT", "Password must be at least 8 characters")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "EMAIL_TAKEN", "Email is already in use")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid email or password")
	default:
		h.logger.Error("request_failed", "error", err)
		writeError(w, http.StatusBadRequest, "REQUEST_FAILED", "The request could not be processed")
	}
}
