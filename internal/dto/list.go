package dto

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"TODOLIST_BACK-END/internal/models"
)

// ListCreateRequest represents the payload to create a list
type ListCreateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	UserID      *int64  `json:"user_id"`
}

// Validate checks the required fields
func (r ListCreateRequest) Validate() error {
	return firstError(
		required("name", r.Name),
		required("user_id", r.UserID),
	)
}

// Model builds the row to insert
func (r ListCreateRequest) Model() *models.List {
	return &models.List{
		Name:        *r.Name,
		Description: r.Description,
		UserID:      *r.UserID,
	}
}

// ListUpdateRequest represents fields allowed to update a list.
// Sending "description": null clears the description.
type ListUpdateRequest struct {
	Name        Optional[string] `json:"name" swaggertype:"string"`
	Description Optional[string] `json:"description" swaggertype:"string"`
}

// Validate rejects a null name
func (r ListUpdateRequest) Validate() error {
	return notNull("name", r.Name)
}

// Patch converts the request into a column patch
func (r ListUpdateRequest) Patch() models.ListPatch {
	var p models.ListPatch
	if r.Name.HasValue() {
		p.Name = &r.Name.Value
	}
	if r.Description.Set {
		p.Description = &pgtype.Text{String: r.Description.Value, Valid: !r.Description.Null}
	}
	return p
}

// ListResponse represents a list in API responses
type ListResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewListResponse converts a stored list
func NewListResponse(l *models.List) ListResponse {
	return ListResponse{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		UserID:      l.UserID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// NewListResponses converts a page of lists
func NewListResponses(lists []models.List) []ListResponse {
	out := make([]ListResponse, 0, len(lists))
	for i := range lists {
		out = append(out, NewListResponse(&lists[i]))
	}
	return out
}
