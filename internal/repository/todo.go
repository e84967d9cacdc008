package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tasknest/tasknest/internal/model"
)

// ErrTodoNotFound covers both an id that does not exist and an id owned
// by another user. The two cases are deliberately indistinguishable.
var ErrTodoNotFound = errors.New("todo not found")

// CreateTodo inserts a new todo owned by todo.OwnerID.
func (r *Repository) CreateTodo(ctx context.Context, todo *model.Todo) error {
	query := `
		INSERT INTO todos (id, text, completed, completed_at, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		todo.ID,
		todo.Text,
		todo.Completed,
		todo.CompletedAt,
		todo.OwnerID,
		todo.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

// ListTodos returns every todo owned by ownerID in insertion order.
func (r *Repository) ListTodos(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	query := `
		SELECT id, text, completed, completed_at, owner_id, created_at
		FROM todos
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*model.Todo, 0)
	for rows.Next() {
		todo, err := scanTodoFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// GetTodo retrieves a todo by id, scoped to its owner.
func (r *Repository) GetTodo(ctx context.Context, ownerID, id string) (*model.Todo, error) {
	query := `
		SELECT id, text, completed, completed_at, owner_id, created_at
		FROM todos
		WHERE id = $1 AND owner_id = $2
	`

	todo, err := scanTodo(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo deletes a todo scoped to its owner and returns the deleted
// record.
func (r *Repository) DeleteTodo(ctx context.Context, ownerID, id string) (*model.Todo, error) {
	query := `
		DELETE FROM todos
		WHERE id = $1 AND owner_id = $2
		RETURNING id, text, completed, completed_at, owner_id, created_at
	`

	todo, err := scanTodo(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}

	return todo, nil
}

// UpdateTodo rewrites a todo's mutable fields in one atomic statement and
// returns the updated record. A nil text keeps the stored text; completed
// and completedAt are always written as given.
func (r *Repository) UpdateTodo(ctx context.Context, ownerID, id string, text *string, completed bool, completedAt *time.Time) (*model.Todo, error) {
	query := `
		UPDATE todos
		SET text = COALESCE($3, text), completed = $4, completed_at = $5
		WHERE id = $1 AND owner_id = $2
		RETURNING id, text, completed, completed_at, owner_id, created_at
	`

	todo, err := scanTodo(r.pool.QueryRow(ctx, query, id, ownerID, text, completed, completedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// scanTodo scans a single row into a Todo model.
func scanTodo(row pgx.Row) (*model.Todo, error) {
	var todo model.Todo
	err := row.Scan(
		&todo.ID,
		&todo.Text,
		&todo.Completed,
		&todo.CompletedAt,
		&todo.OwnerID,
		&todo.CreatedAt,
	)
	return &todo, err
}

// scanTodoFromRows scans a row from pgx.Rows into a Todo model.
func scanTodoFromRows(rows pgx.Rows) (*model.Todo, error) {
	var todo model.Todo
	err := rows.Scan(
		&todo.ID,
		&todo.Text,
		&todo.Completed,
		&todo.CompletedAt,
		&todo.OwnerID,
		&todo.CreatedAt,
	)
	return &todo, err
}
