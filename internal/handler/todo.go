package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/handler/dto"
	"github.com/tasknest/tasknest/internal/service"
)

// TodoHandler handles HTTP requests for todo operations. Every route is
// behind the auth middleware, so a session is always present in the
// request context.
type TodoHandler struct {
	svc    *service.TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	var req dto.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	todo, err := h.svc.Create(r.Context(), sess.UserID, req.Text)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("todo_created", "todo_id", todo.ID, "owner_id", sess.UserID)

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(todo))
}

// List handles GET /todos. Only the caller's own todos come back, wrapped
// in an envelope so an empty list still reads as {"todos": []}.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	todos, err := h.svc.List(r.Context(), sess.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoListResponse(todos))
}

// Get handles GET /todos/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.svc.Get(r.Context(), sess.UserID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TodoEnvelope{Todo: dto.ToTodoResponse(todo)})
}

// Delete handles DELETE /todos/{id}. The removed todo is echoed back.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.svc.Delete(r.Context(), sess.UserID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("todo_deleted", "todo_id", id, "owner_id", sess.UserID)

	writeJSON(w, http.StatusOK, dto.TodoEnvelope{Todo: dto.ToTodoResponse(todo)})
}

// Update handles PATCH /todos/{id}. Completion state is recomputed from
// the payload alone: anything other than an explicit true clears both
// the flag and the completion timestamp.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	todo, err := h.svc.Update(r.Context(), sess.UserID, id, req.Text, req.Completed)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TodoEnvelope{Todo: dto.ToTodoResponse(todo)})
}

// todoID extracts and validates the {id} route parameter. Malformed IDs
// are rejected before the store is ever consulted.
func todoID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := ulid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Todo id is not valid")
		return "", false
	}
	return id, true
}

func (h *TodoHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyText):
		writeError(w, http.StatusBadRequest, "TEXT_REQUIRED", "Todo text must not be empty")
	case errors.Is(err, service.ErrTodoNotFound):
		writeError(w, http.StatusNotFound, "TODO_NOT_FOUND", "Todo not found")
	default:
		h.logger.Error("request_failed", "error", err)
		writeError(w, http.StatusBadRequest, "REQUEST_FAILED", "The request could not be processed")
	}
}
