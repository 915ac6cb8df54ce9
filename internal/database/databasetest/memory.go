// Package databasetest provides an in-memory database.Repository for tests.
package databasetest

import (
	"context"
	"slices"
	"sync"
	"time"

	"TODOLIST_BACK-END/internal/database"
	"TODOLIST_BACK-END/internal/models"
)

// Repository keeps users, lists and tasks in maps and enforces the same
// uniqueness, foreign key and cascade rules as the PostgreSQL schema.
type Repository struct {
	mu     sync.Mutex
	nextID int64
	last   time.Time
	users  map[int64]models.User
	lists  map[int64]models.List
	tasks  map[int64]models.Task
	calls  map[string]int

	// Err, when set, is returned by every operation
	Err error
}

var _ database.Repository = (*Repository)(nil)

// New returns an empty repository
func New() *Repository {
	return &Repository{
		users: map[int64]models.User{},
		lists: map[int64]models.List{},
		tasks: map[int64]models.Task{},
		calls: map[string]int{},
	}
}

// Calls returns how many times the named operation was invoked
func (r *Repository) Calls(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

// begin locks the repository and records the call. Callers must unlock.
func (r *Repository) begin(op string) error {
	r.mu.Lock()
	r.calls[op]++
	return r.Err
}

// now returns a strictly increasing timestamp
func (r *Repository) now() time.Time {
	t := time.Now().UTC()
	if !t.After(r.last) {
		t = r.last.Add(time.Microsecond)
	}
	r.last = t
	return t
}

func (r *Repository) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	defer r.mu.Unlock()
	if err := r.begin("CreateUser"); err != nil {
		return err
	}
	if r.userConflict(0, user.Email, user.Username) {
		return database.ErrDuplicateKey
	}
	user.ID = r.id()
	user.CreatedAt = r.now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *Repository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	defer r.mu.Unlock()
	if err := r.begin("GetUser"); err != nil {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (r *Repository) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	defer r.mu.Unlock()
	if err := r.begin("FindUserByEmailOrUsername"); err != nil {
		return nil, err
	}
	var found *models.User
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			if found == nil || u.ID < found.ID {
				u := u
				found = &u
			}
		}
	}
	if found == nil {
		return nil, database.ErrNotFound
	}
	return found, nil
}

func (r *Repository) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	defer r.mu.Unlock()
	if err := r.begin("ListUsers"); err != nil {
		return nil, err
	}
	return page(r.users, offset, limit), nil
}

func (r *Repository) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	defer r.mu.Unlock()
	if err := r.begin("UpdateUser"); err != nil {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if patch.IsEmpty() {
		return &u, nil
	}
	email, username := u.Email, u.Username
	if patch.Email != nil {
		email = *patch.Email
	}
	if patch.Username != nil {
		username = *patch.Username
	}
	if r.userConflict(id, email, username) {
		return nil, database.ErrDuplicateKey
	}
	u.Email, u.Username = email, username
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = r.now()
	r.users[id] = u
	return &u, nil
}

func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	defer r.mu.Unlock()
	if err := r.begin("DeleteUser"); err != nil {
		return err
	}
	if _, ok := r.users[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.users, id)
	for lid, l := range r.lists {
		if l.UserID == id {
			r.deleteList(lid)
		}
	}
	return nil
}

func (r *Repository) CreateList(ctx context.Context, list *models.List) error {
	defer r.mu.Unlock()
	if err := r.begin("CreateList"); err != nil {
		return err
	}
	if _, ok := r.users[list.UserID]; !ok {
		return database.ErrNotFound
	}
	list.ID = r.id()
	list.CreatedAt = r.now()
	list.UpdatedAt = list.CreatedAt
	r.lists[list.ID] = *list
	return nil
}

func (r *Repository) GetList(ctx context.Context, id int64) (*models.List, error) {
	defer r.mu.Unlock()
	if err := r.begin("GetList"); err != nil {
		return nil, err
	}
	l, ok := r.lists[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &l, nil
}

func (r *Repository) ListLists(ctx context.Context, offset, limit int) ([]models.List, error) {
	defer r.mu.Unlock()
	if err := r.begin("ListLists"); err != nil {
		return nil, err
	}
	return page(r.lists, offset, limit), nil
}

func (r *Repository) UpdateList(ctx context.Context, id int64, patch models.ListPatch) (*models.List, error) {
	defer r.mu.Unlock()
	if err := r.begin("UpdateList"); err != nil {
		return nil, err
	}
	l, ok := r.lists[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if patch.IsEmpty() {
		return &l, nil
	}
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Description != nil {
		l.Description = nil
		if patch.Description.Valid {
			d := patch.Description.String
			l.Description = &d
		}
	}
	l.UpdatedAt = r.now()
	r.lists[id] = l
	return &l, nil
}

func (r *Repository) DeleteList(ctx context.Context, id int64) error {
	defer r.mu.Unlock()
	if err := r.begin("DeleteList"); err != nil {
		return err
	}
	if _, ok := r.lists[id]; !ok {
		return database.ErrNotFound
	}
	r.deleteList(id)
	return nil
}

func (r *Repository) CreateTask(ctx context.Context, task *models.Task) error {
	defer r.mu.Unlock()
	if err := r.begin("CreateTask"); err != nil {
		return err
	}
	if _, ok := r.lists[task.ListID]; !ok {
		return database.ErrNotFound
	}
	task.ID = r.id()
	task.CreatedAt = r.now()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = *task
	return nil
}

func (r *Repository) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	defer r.mu.Unlock()
	if err := r.begin("GetTask"); err != nil {
		return nil, err
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &t, nil
}

func (r *Repository) ListTasks(ctx context.Context, offset, limit int) ([]models.Task, error) {
	defer r.mu.Unlock()
	if err := r.begin("ListTasks"); err != nil {
		return nil, err
	}
	return page(r.tasks, offset, limit), nil
}

func (r *Repository) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	defer r.mu.Unlock()
	if err := r.begin("UpdateTask"); err != nil {
		return nil, err
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if patch.IsEmpty() {
		return &t, nil
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = nil
		if patch.Description.Valid {
			d := patch.Description.String
			t.Description = &d
		}
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = nil
		if patch.DueDate.Valid {
			d := patch.DueDate.Time
			t.DueDate = &d
		}
	}
	t.UpdatedAt = r.now()
	r.tasks[id] = t
	return &t, nil
}

func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	defer r.mu.Unlock()
	if err := r.begin("DeleteTask"); err != nil {
		return err
	}
	if _, ok := r.tasks[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

// WithConn runs fn against the repository itself
func (r *Repository) WithConn(ctx context.Context, fn func(database.Repository) error) error {
	return fn(r)
}

func (r *Repository) Ping(ctx context.Context) error {
	defer r.mu.Unlock()
	return r.begin("Ping")
}

func (r *Repository) userConflict(self int64, email, username string) bool {
	for id, u := range r.users {
		if id != self && (u.Email == email || u.Username == username) {
			return true
		}
	}
	return false
}

func (r *Repository) deleteList(id int64) {
	delete(r.lists, id)
	for tid, t := range r.tasks {
		if t.ListID == id {
			delete(r.tasks, tid)
		}
	}
}

// page returns rows ordered by id, mirroring ORDER BY id LIMIT/OFFSET
func page[T any](rows map[int64]T, offset, limit int) []T {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := []T{}
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, rows[ids[i]])
	}
	return out
}
