package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/tasknest/tasknest/internal/model"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("user-123", model.ScopeAuth)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	userID, scope, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user id %q, got %q", "user-123", userID)
	}
	if scope != model.ScopeAuth {
		t.Errorf("expected scope %q, got %q", model.ScopeAuth, scope)
	}
}

func TestTokenService_IssueDistinctTokens(t *testing.T) {
	svc := NewTokenService("test-secret")

	// Two sessions for the same user must never share a token string,
	// or removing one from the stored list would revoke both.
	first, err := svc.Issue("user-123", model.ScopeAuth)
	if err != nil {
		t.Fatalf("Issue (first) failed: %v", err)
	}
	second, err := svc.Issue("user-123", model.ScopeAuth)
	if err != nil {
		t.Fatalf("Issue (second) failed: %v", err)
	}

	if first == second {
		t.Fatalf("two sessions for the same user share one token string: %q", first)
	}

	for _, token := range []string{first, second} {
		userID, scope, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if userID != "user-123" || scope != model.ScopeAuth {
			t.Errorf("unexpected identity %q/%q", userID, scope)
		}
	}
}

func TestTokenService_VerifyRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	token, err := issuer.Issue("user-123", model.ScopeAuth)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
}

func TestTokenService_VerifyRejectsTampering(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("user-123", model.ScopeAuth)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three JWT segments, got %d", len(parts))
	}

	// Swap the payload for one claiming another user. The signature no
	// longer matches.
	tampered := parts[0] + ".eyJzY29wZSI6ImF1dGgiLCJzdWIiOiJ1c2VyLTk5OSJ9." + parts[2]

	if _, _, err := svc.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered payload, got %v", err)
	}
}

func TestTokenService_VerifyRejectsMalformed(t *testing.T) {
	svc := NewTokenService("test-secret")

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "12312312asdas"},
		{name: "two segments", token: "aaaa.bbbb"},
		{name: "not base64", token: "!!.!!.!!"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Verify(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenService_VerifyRequiresIdentityClaims(t *testing.T) {
	svc := NewTokenService("test-secret")

	// Missing subject.
	token, err := svc.Issue("", model.ScopeAuth)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for empty subject, got %v", err)
	}

	// Missing scope.
	token, err = svc.Issue("user-123", "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for empty scope, got %v", err)
	}
}
