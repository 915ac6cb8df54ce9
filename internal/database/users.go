package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"TODOLIST_BACK-END/internal/models"
)

const userColumns = `id, email, username, password_hash, created_at, updated_at`

// CreateUser inserts the user and fills in its id and timestamps
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (email, username, password_hash)
         VALUES ($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		user.Email, user.Username, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", translateError(err))
	}
	return nil
}

// GetUser loads a user by id
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindUserByEmailOrUsername returns any user holding the email or the username
func (s *Store) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	return s.queryUser(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 OR username = $2 ORDER BY id LIMIT 1`,
		email, username)
}

// ListUsers returns a page of users in insertion order
func (s *Store) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the patch and returns the stored row
func (s *Store) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	if patch.IsEmpty() {
		return s.GetUser(ctx, id)
	}

	b := newUpdate("users")
	if patch.Email != nil {
		b.set("email", *patch.Email)
	}
	if patch.Username != nil {
		b.set("username", *patch.Username)
	}
	if patch.PasswordHash != nil {
		b.set("password_hash", *patch.PasswordHash)
	}
	sql, args := b.build(id, userColumns)
	return s.queryUser(ctx, sql, args...)
}

// DeleteUser removes the user; lists and tasks go with it via ON DELETE CASCADE
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) queryUser(ctx context.Context, sql string, args ...any) (*models.User, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err)
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.User])
	if err != nil {
		return nil, translateError(err)
	}
	return user, nil
}
