package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/service"
)

func newTestTodoHandler() *TodoHandler {
	svc := service.NewTodoService(nil, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTodoHandler(svc, logger)
}

// withSession attaches a resolved session and a chi route context carrying
// the {id} parameter, matching what the router hands the handler.
func withSession(req *http.Request, id string) *http.Request {
	ctx := auth.ContextWithSession(req.Context(), &model.Session{
		UserID: "owner-1",
		Email:  "owner@example.com",
		Token:  "tok",
	})
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func TestTodoHandler_Create_EmptyText(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing text", body: `{}`},
		{name: "empty text", body: `{"text":""}`},
		{name: "whitespace text", body: `{"text":"   "}`},
	}

	h := newTestTodoHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Create(rec, withSession(req, ""))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
			if resp := decodeError(t, rec); resp.Code != "TEXT_REQUIRED" {
				t.Errorf("expected code TEXT_REQUIRED, got %s", resp.Code)
			}
		})
	}
}

func TestTodoHandler_Create_InvalidJSON(t *testing.T) {
	h := newTestTodoHandler()

	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.Create(rec, withSession(req, ""))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestTodoHandler_MalformedID(t *testing.T) {
	h := newTestTodoHandler()

	calls := []struct {
		name    string
		method  string
		handler http.HandlerFunc
	}{
		{name: "get", method: http.MethodGet, handler: h.Get},
		{name: "delete", method: http.MethodDelete, handler: h.Delete},
		{name: "update", method: http.MethodPatch, handler: h.Update},
	}

	ids := []string{"not-a-ulid", "123", "01HZZZZZZZZZZZZZZZZZZZZZZZZZ"}

	for _, call := range calls {
		for _, id := range ids {
			t.Run(call.name+"/"+id, func(t *testing.T) {
				req := httptest.NewRequest(call.method, "/todos/"+id, strings.NewReader(`{}`))
				rec := httptest.NewRecorder()

				call.handler(rec, withSession(req, id))

				if rec.Code != http.StatusBadRequest {
					t.Errorf("expected status 400, got %d", rec.Code)
				}
				if resp := decodeError(t, rec); resp.Code != "INVALID_ID" {
					t.Errorf("expected code INVALID_ID, got %s", resp.Code)
				}
			})
		}
	}
}
