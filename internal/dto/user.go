package dto

import (
	"time"

	"TODOLIST_BACK-END/internal/models"
)

// UserCreateRequest represents the payload to create a user
type UserCreateRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Validate checks that all fields are present
func (r UserCreateRequest) Validate() error {
	return firstError(
		required("email", r.Email),
		required("username", r.Username),
		required("password", r.Password),
	)
}

// UserUpdateRequest represents fields allowed to update a user.
// All fields are optional; only provided ones will be updated.
type UserUpdateRequest struct {
	Email    Optional[string] `json:"email" swaggertype:"string"`
	Username Optional[string] `json:"username" swaggertype:"string"`
	Password Optional[string] `json:"password" swaggertype:"string"`
}

// Validate rejects explicit nulls, none of the user columns is nullable
func (r UserUpdateRequest) Validate() error {
	return firstError(
		notNull("email", r.Email),
		notNull("username", r.Username),
		notNull("password", r.Password),
	)
}

// Patch converts the request into a column patch. The plaintext password is
// passed through hash and never stored.
func (r UserUpdateRequest) Patch(hash func(string) (string, error)) (models.UserPatch, error) {
	var p models.UserPatch
	if r.Email.HasValue() {
		p.Email = &r.Email.Value
	}
	if r.Username.HasValue() {
		p.Username = &r.Username.Value
	}
	if r.Password.HasValue() {
		h, err := hash(r.Password.Value)
		if err != nil {
			return models.UserPatch{}, err
		}
		p.PasswordHash = &h
	}
	return p, nil
}

// UserResponse represents user data in API responses. The password hash is
// never exposed.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse converts a stored user
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserResponses converts a page of users
func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
