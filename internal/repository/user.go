package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tasknest/tasknest/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// CreateUser inserts a new user row. The email unique constraint surfaces
// as ErrEmailExists.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, tokens, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	tokens, err := marshalTokens(user.Tokens)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		tokens,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, tokens, created_at
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, tokens, created_at
		FROM users
		WHERE email = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetUserByToken retrieves the user only if their stored token list
// contains the exact token string with the given access scope. A valid
// signature alone is not enough to match: this is what makes logout
// revoke a token.
func (r *Repository) GetUserByToken(ctx context.Context, id, token, access string) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, tokens, created_at
		FROM users
		WHERE id = $1 AND tokens @> $2
	`

	entry, err := marshalTokens([]model.AuthToken{{Access: access, Token: token}})
	if err != nil {
		return nil, err
	}

	user, err := scanUser(r.pool.QueryRow(ctx, query, id, entry))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}

	return user, nil
}

// AppendToken adds a token entry to the user's token list. The list lives
// in a single jsonb column, so the append is one atomic row update.
func (r *Repository) AppendToken(ctx context.Context, userID string, token model.AuthToken) error {
	query := `
		UPDATE users
		SET tokens = tokens || $2::jsonb
		WHERE id = $1
	`

	entry, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token entry: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, userID, entry)
	if err != nil {
		return fmt.Errorf("failed to append token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// RemoveToken removes every entry matching the token string from the
// user's token list. Removing an absent token is not an error.
func (r *Repository) RemoveToken(ctx context.Context, userID, token string) error {
	query := `
		UPDATE users
		SET tokens = COALESCE(
			(
				SELECT jsonb_agg(entry)
				FROM jsonb_array_elements(tokens) AS entry
				WHERE entry->>'token' <> $2
			),
			'[]'::jsonb
		)
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, userID, token)
	if err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// scanUser scans a user row, decoding the jsonb token list.
func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	var tokens []byte

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&tokens,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tokens, &user.Tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token list: %w", err)
	}

	return &user, nil
}

// marshalTokens encodes a token list for a jsonb column. A nil slice is
// stored as an empty array, never as SQL null.
func marshalTokens(tokens []model.AuthToken) ([]byte, error) {
	if tokens == nil {
		tokens = []model.AuthToken{}
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to encode token list: %w", err)
	}
	return data, nil
}
