package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tasknest/tasknest/internal/metrics"
	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/repository"
)

// Service errors for todo operations.
var (
	ErrEmptyText    = errors.New("todo text is required")
	ErrTodoNotFound = errors.New("todo not found")
)

// TodoService implements owner-scoped todo operations. Every method takes
// the owner id from the resolved session; a todo owned by someone else is
// indistinguishable from one that does not exist.
type TodoService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewTodoService creates a new TodoService.
func NewTodoService(repo *repository.Repository, recorder metrics.Recorder) *TodoService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TodoService{
		repo:    repo,
		metrics: recorder,
	}
}

// Create inserts a new pending todo owned by ownerID.
func (s *TodoService) Create(ctx context.Context, ownerID, text string) (*model.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	todo := &model.Todo{
		ID:        ulid.Make().String(),
		Text:      text,
		Completed: false,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateTodo(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.metrics.IncTodoCreated()

	return todo, nil
}

// List returns the owner's todos in insertion order.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	todos, err := s.repo.ListTodos(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Get retrieves one of the owner's todos.
func (s *TodoService) Get(ctx context.Context, ownerID, id string) (*model.Todo, error) {
	todo, err := s.repo.GetTodo(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

// Delete removes one of the owner's todos and returns the deleted record.
func (s *TodoService) Delete(ctx context.Context, ownerID, id string) (*model.Todo, error) {
	todo, err := s.repo.DeleteTodo(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("delete todo: %w", err)
	}

	s.metrics.IncTodoDeleted()

	return todo, nil
}

// Update rewrites a todo from the update payload. Completion state is
// always recomputed from the payload's completed flag; there is no path
// that leaves it untouched (see resolveCompletion).
func (s *TodoService) Update(ctx context.Context, ownerID, id string, text *string, completed *bool) (*model.Todo, error) {
	done, doneAt := resolveCompletion(completed, time.Now().UTC())

	todo, err := s.repo.UpdateTodo(ctx, ownerID, id, text, done, doneAt)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}

	if done {
		s.metrics.IncTodoCompleted()
	}

	return todo, nil
}

// resolveCompletion derives the stored completion state from an update
// payload. Only an explicit true marks the todo completed and stamps
// completedAt; false or an absent flag resets both fields.
func resolveCompletion(completed *bool, now time.Time) (bool, *time.Time) {
	if completed != nil && *completed {
		return true, &now
	}
	return false, nil
}
