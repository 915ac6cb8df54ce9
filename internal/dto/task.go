package dto

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"TODOLIST_BACK-END/internal/models"
)

// TaskCreateRequest represents the payload to create a task
type TaskCreateRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Completed   Optional[bool] `json:"completed" swaggertype:"boolean"`
	Priority    Optional[int]  `json:"priority" swaggertype:"integer"`
	DueDate     *Timestamp     `json:"due_date" swaggertype:"string" format:"date-time"`
	ListID      *int64         `json:"list_id"`
}

// Validate checks the required fields. completed and priority may be
// omitted but not sent as null.
func (r TaskCreateRequest) Validate() error {
	return firstError(
		required("title", r.Title),
		notNull("completed", r.Completed),
		notNull("priority", r.Priority),
		required("list_id", r.ListID),
	)
}

// Model builds the row to insert, applying completed=false and priority=0
// when they are omitted.
func (r TaskCreateRequest) Model() *models.Task {
	t := &models.Task{
		Title:       *r.Title,
		Description: r.Description,
		ListID:      *r.ListID,
	}
	if r.Completed.HasValue() {
		t.Completed = r.Completed.Value
	}
	if r.Priority.HasValue() {
		t.Priority = r.Priority.Value
	}
	if r.DueDate != nil {
		due := r.DueDate.Time
		t.DueDate = &due
	}
	return t
}

// TaskUpdateRequest represents fields allowed to update a task.
// Sending null for description or due_date clears them.
type TaskUpdateRequest struct {
	Title       Optional[string]    `json:"title" swaggertype:"string"`
	Description Optional[string]    `json:"description" swaggertype:"string"`
	Completed   Optional[bool]      `json:"completed" swaggertype:"boolean"`
	Priority    Optional[int]       `json:"priority" swaggertype:"integer"`
	DueDate     Optional[Timestamp] `json:"due_date" swaggertype:"string" format:"date-time"`
}

// Validate rejects nulls on non-nullable columns
func (r TaskUpdateRequest) Validate() error {
	return firstError(
		notNull("title", r.Title),
		notNull("completed", r.Completed),
		notNull("priority", r.Priority),
	)
}

// Patch converts the request into a column patch
func (r TaskUpdateRequest) Patch() models.TaskPatch {
	var p models.TaskPatch
	if r.Title.HasValue() {
		p.Title = &r.Title.Value
	}
	if r.Description.Set {
		p.Description = &pgtype.Text{String: r.Description.Value, Valid: !r.Description.Null}
	}
	if r.Completed.HasValue() {
		p.Completed = &r.Completed.Value
	}
	if r.Priority.HasValue() {
		p.Priority = &r.Priority.Value
	}
	if r.DueDate.Set {
		p.DueDate = &pgtype.Timestamptz{Time: r.DueDate.Value.Time, Valid: !r.DueDate.Null}
	}
	return p
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	ListID      int64      `json:"list_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTaskResponse converts a stored task
func NewTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		ListID:      t.ListID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskResponses converts a page of tasks
func NewTaskResponses(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}
