package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/model"
)

// The rejection paths below fail before any store access, so no database
// or cache is needed. The accept path is covered by the integration and
// e2e suites.

func newGuardedHandler(t *testing.T, tokens *auth.TokenService) http.Handler {
	t.Helper()
	cfg := AuthConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens: tokens,
	}
	return Auth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := newGuardedHandler(t, auth.NewTokenService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestAuth_InvalidSignature(t *testing.T) {
	foreign := auth.NewTokenService("other-secret")
	token, err := foreign.Issue("user-123", model.ScopeAuth)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	handler := newGuardedHandler(t, auth.NewTokenService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(AuthHeader, token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for foreign signature, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	handler := newGuardedHandler(t, auth.NewTokenService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(AuthHeader, "12312312asdas")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", rec.Code)
	}
}

func TestAuth_WrongScope(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	token, err := tokens.Issue("user-123", "admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	handler := newGuardedHandler(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(AuthHeader, token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-auth scope, got %d", rec.Code)
	}
}
