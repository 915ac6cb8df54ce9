package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Task represents a row of the tasks table
type Task struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Completed   bool       `json:"completed" db:"completed"`
	Priority    int        `json:"priority" db:"priority"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	ListID      int64      `json:"list_id" db:"list_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// TaskPatch lists the task columns to change. Nullable columns use pgtype
// values so that Valid=false clears them.
type TaskPatch struct {
	Title       *string
	Description *pgtype.Text
	Completed   *bool
	Priority    *int
	DueDate     *pgtype.Timestamptz
}

// IsEmpty reports whether the patch changes nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil && p.Priority == nil && p.DueDate == nil
}
