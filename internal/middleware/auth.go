package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/cache"
	"github.com/tasknest/tasknest/internal/metrics"
	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/repository"
)

// AuthHeader is the request header carrying the raw session token.
const AuthHeader = "x-auth"

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger     *slog.Logger
	Tokens     *auth.TokenService
	Repository *repository.Repository
	Cache      *cache.Cache
	Metrics    metrics.Recorder
}

// Auth returns a middleware that resolves the x-auth header to a live,
// non-revoked user session, or rejects the request with 401.
//
// A token passes only if its signature verifies AND the exact token
// string is still present in the user's stored token list with scope
// "auth". The second check is what makes logout-by-deletion work for a
// token format that has no expiry.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AuthHeader)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				unauthorized(w)
				return
			}

			userID, scope, err := cfg.Tokens.Verify(token)
			if err != nil || scope != model.ScopeAuth {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				unauthorized(w)
				return
			}

			digest := auth.TokenDigest(token)

			// Check cache first. Entries are written only after the
			// stored-token check below and removed on logout, so a hit
			// means the token was recently verified as non-revoked.
			if cfg.Cache != nil {
				cached := cfg.Cache.GetSession(r.Context(), digest)
				if cached != nil && cached.UserID == userID {
					recorder.IncAuthCacheHit()
					sess := &model.Session{UserID: cached.UserID, Email: cached.Email, Token: token}
					next.ServeHTTP(w, r.WithContext(auth.ContextWithSession(r.Context(), sess)))
					return
				}
				recorder.IncAuthCacheMiss()
			}

			user, err := cfg.Repository.GetUserByToken(r.Context(), userID, token, model.ScopeAuth)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					cfg.Logger.Warn("authentication failed",
						slog.String("reason", "revoked_or_unknown_token"),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				} else {
					cfg.Logger.Error("database error during auth",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				unauthorized(w)
				return
			}

			if cfg.Cache != nil {
				_ = cfg.Cache.SetSession(r.Context(), digest, cache.CachedSession{
					UserID: user.ID,
					Email:  user.Email,
				})
			}

			cfg.Logger.Info("authentication successful",
				slog.String("user_id", user.ID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			sess := &model.Session{UserID: user.ID, Email: user.Email, Token: token}
			next.ServeHTTP(w, r.WithContext(auth.ContextWithSession(r.Context(), sess)))
		})
	}
}

// unauthorized writes a 401 with an empty body; every auth failure looks
// identical to the caller.
func unauthorized(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
}
