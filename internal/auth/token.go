package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken indicates a token whose signature or payload does not
// verify. Revocation is not checked here; the auth guard cross-references
// the user's stored token list for that.
var ErrInvalidToken = errors.New("invalid auth token")

// sessionClaims is the JWT payload of a session token. Tokens carry no
// expiry: a token stays valid until it is removed from the owning user's
// token list.
type sessionClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens. The signing
// secret is process-wide configuration, loaded once at startup.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs an HS256 token binding the user id and access scope. The
// encoded payload is the sole source of identity; the service keeps no
// issuance state. The iat and jti claims make every issued token a
// distinct string, so each session's entry in the stored token list can
// be revoked on its own.
func (s *TokenService) Issue(userID, scope string) (string, error) {
	claims := sessionClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
			ID:       uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and payload shape and returns the encoded
// user id and scope. Every failure mode collapses into ErrInvalidToken.
func (s *TokenService) Verify(token string) (userID, scope string, err error) {
	var claims sessionClaims
	_, err = jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if claims.Subject == "" || claims.Scope == "" {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.Scope, nil
}
