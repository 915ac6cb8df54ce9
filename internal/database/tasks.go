package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"TODOLIST_BACK-END/internal/models"
)

const taskColumns = `id, title, description, completed, priority, due_date, list_id, created_at, updated_at`

// CreateTask inserts the task and fills in its id and timestamps
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO tasks (title, description, completed, priority, due_date, list_id)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		task.Title, task.Description, task.Completed, task.Priority, task.DueDate, task.ListID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", translateError(err))
	}
	return nil
}

// GetTask loads a task by id
func (s *Store) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	return s.queryTask(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
}

// ListTasks returns a page of tasks across all lists in insertion order
func (s *Store) ListTasks(ctx context.Context, offset, limit int) ([]models.Task, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Task])
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies the patch and returns the stored row
func (s *Store) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	if patch.IsEmpty() {
		return s.GetTask(ctx, id)
	}

	b := newUpdate("tasks")
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.Completed != nil {
		b.set("completed", *patch.Completed)
	}
	if patch.Priority != nil {
		b.set("priority", *patch.Priority)
	}
	if patch.DueDate != nil {
		b.set("due_date", *patch.DueDate)
	}
	sql, args := b.build(id, taskColumns)
	return s.queryTask(ctx, sql, args...)
}

// DeleteTask removes the task
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) queryTask(ctx context.Context, sql string, args ...any) (*models.Task, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err)
	}
	task, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Task])
	if err != nil {
		return nil, translateError(err)
	}
	return task, nil
}
