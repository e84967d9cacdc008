// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/tasknest/tasknest/internal/model"

// CredentialsRequest is the request body for registration and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is a user in API responses. Only the identity and email
// are ever exposed; the password hash and token list stay server-side.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:    user.ID,
		Email: user.Email,
	}
}
