package models

import (
	"time"
)

// User represents a row of the users table
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserPatch lists the user columns to change; nil fields are left untouched
type UserPatch struct {
	Email        *string
	Username     *string
	PasswordHash *string
}

// IsEmpty reports whether the patch changes nothing
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Username == nil && p.PasswordHash == nil
}
