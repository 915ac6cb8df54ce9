package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// List is a named container of tasks owned by a user
type List struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	UserID      int64     `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ListPatch lists the list columns to change. A non-nil Description with
// Valid=false sets the column to NULL.
type ListPatch struct {
	Name        *string
	Description *pgtype.Text
}

// IsEmpty reports whether the patch changes nothing
func (p ListPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}
