package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"TODOLIST_BACK-END/internal/models"
)

const listColumns = `id, name, description, user_id, created_at, updated_at`

// CreateList inserts the list and fills in its id and timestamps
func (s *Store) CreateList(ctx context.Context, list *models.List) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO lists (name, description, user_id)
         VALUES ($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		list.Name, list.Description, list.UserID,
	).Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert list: %w", translateError(err))
	}
	return nil
}

// GetList loads a list by id
func (s *Store) GetList(ctx context.Context, id int64) (*models.List, error) {
	return s.queryList(ctx, `SELECT `+listColumns+` FROM lists WHERE id = $1`, id)
}

// ListLists returns a page of lists across all users in insertion order
func (s *Store) ListLists(ctx context.Context, offset, limit int) ([]models.List, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+listColumns+` FROM lists ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	lists, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.List])
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return lists, nil
}

// UpdateList applies the patch and returns the stored row
func (s *Store) UpdateList(ctx context.Context, id int64, patch models.ListPatch) (*models.List, error) {
	if patch.IsEmpty() {
		return s.GetList(ctx, id)
	}

	b := newUpdate("lists")
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	sql, args := b.build(id, listColumns)
	return s.queryList(ctx, sql, args...)
}

// DeleteList removes the list and, by cascade, its tasks
func (s *Store) DeleteList(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) queryList(ctx context.Context, sql string, args ...any) (*models.List, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err)
	}
	list, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.List])
	if err != nil {
		return nil, translateError(err)
	}
	return list, nil
}
