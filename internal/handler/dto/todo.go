package dto

import (
	"time"

	"github.com/tasknest/tasknest/internal/model"
)

// CreateTodoRequest is the request body for creating a todo.
type CreateTodoRequest struct {
	Text string `json:"text"`
}

// UpdateTodoRequest is the request body for updating a todo. Both fields
// are optional; an absent completed flag resets the todo to not
// completed, exactly like an explicit false.
type UpdateTodoRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TodoResponse is a todo in API responses. completedAt is null while the
// todo is pending.
type TodoResponse struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	OwnerID     string     `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TodoEnvelope wraps a single todo, used by the by-id endpoints.
type TodoEnvelope struct {
	Todo *TodoResponse `json:"todo"`
}

// TodoListResponse wraps the owner-scoped todo list.
type TodoListResponse struct {
	Todos []TodoResponse `json:"todos"`
}

// ToTodoResponse converts a Todo model to TodoResponse DTO.
func ToTodoResponse(todo *model.Todo) *TodoResponse {
	return &TodoResponse{
		ID:          todo.ID,
		Text:        todo.Text,
		Completed:   todo.Completed,
		CompletedAt: todo.CompletedAt,
		OwnerID:     todo.OwnerID,
		CreatedAt:   todo.CreatedAt,
	}
}

// ToTodoListResponse converts a slice of Todo models to TodoListResponse.
// The list is never null, only possibly empty.
func ToTodoListResponse(todos []*model.Todo) *TodoListResponse {
	responses := make([]TodoResponse, len(todos))
	for i, todo := range todos {
		responses[i] = *ToTodoResponse(todo)
	}
	return &TodoListResponse{Todos: responses}
}
