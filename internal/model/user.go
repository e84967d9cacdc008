// Package model defines domain entities for the application.
package model

import "time"

// ScopeAuth is the access scope carried by session tokens. It is the only
// scope issued today.
const ScopeAuth = "auth"

// AuthToken is one entry in a user's active token list. A user holds one
// entry per live session or device; removing an entry revokes that session.
type AuthToken struct {
	Access string `json:"access"`
	Token  string `json:"token"`
}

// User represents a registered account.
// PasswordHash and Tokens never appear in API responses.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Tokens       []AuthToken `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// HasToken reports whether the user's token list contains the exact token
// string with the given access scope.
func (u *User) HasToken(token, access string) bool {
	for _, t := range u.Tokens {
		if t.Token == token && t.Access == access {
			return true
		}
	}
	return false
}

// Session is the request identity resolved by the auth guard.
// The raw token is kept so handlers can revoke it on logout.
type Session struct {
	UserID string
	Email  string
	Token  string
}
