package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"

	"TODOLIST_BACK-END/internal/cache"
	"TODOLIST_BACK-END/internal/config"
	"TODOLIST_BACK-END/internal/database"
	"TODOLIST_BACK-END/internal/database/databasetest"
	"TODOLIST_BACK-END/internal/handlers"
	"TODOLIST_BACK-END/internal/utils"
)

const devOrigin = "http://localhost:3000"

func newTestHandler(t *testing.T, repo database.Repository) http.Handler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cors := config.CORSConfig{
		AllowedOrigins:   []string{devOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	return NewHandler(Handlers{
		Health: handlers.NewHealthHandler(repo),
		Users:  handlers.NewUsersHandler(repo, utils.SHA256Hasher{}),
		Lists:  handlers.NewListsHandler(repo),
		Tasks:  handlers.NewTasksHandler(repo),
	}, cors, logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, want, rec.Body.String())
	}
}

type user struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type list struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	UserID      int64   `json:"user_id"`
}

type task struct {
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

func createUser(t *testing.T, h http.Handler, name string) user {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/users/",
		fmt.Sprintf(`{"email": "%s@example.com", "username": "%s", "password": "pw"}`, name, name))
	expectStatus(t, rec, http.StatusOK)
	return decode[user](t, rec)
}

func createList(t *testing.T, h http.Handler, userID int64) list {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/lists/", fmt.Sprintf(`{"name": "inbox", "user_id": %d}`, userID))
	expectStatus(t, rec, http.StatusOK)
	return decode[list](t, rec)
}

func createTask(t *testing.T, h http.Handler, listID int64, title string) task {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/tasks/",
		fmt.Sprintf(`{"title": %q, "description": "details", "priority": 2, "list_id": %d}`, title, listID))
	expectStatus(t, rec, http.StatusOK)
	return decode[task](t, rec)
}

func TestRootMessage(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	rec := do(t, h, http.MethodGet, "/", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]string](t, rec); got["message"] != "Todo List API" {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestCreateUserThenGet(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	first := createUser(t, h, "alice")
	second := createUser(t, h, "bob")
	if first.ID == second.ID {
		t.Fatal("ids must be unique")
	}

	rec := do(t, h, http.MethodGet, fmt.Sprintf("/users/%d", second.ID), "")
	expectStatus(t, rec, http.StatusOK)
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password leaked: %s", rec.Body.String())
	}
	got := decode[user](t, rec)
	if got != second {
		t.Fatalf("got %+v, want %+v", got, second)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	createUser(t, h, "alice")

	rec := do(t, h, http.MethodPost, "/users/",
		`{"email": "alice@example.com", "username": "other", "password": "pw"}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if got := decode[map[string]string](t, rec); got["detail"] != "Email or username already registered" {
		t.Fatalf("unexpected detail: %v", got)
	}
}

func TestCreateUserMissingField(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	rec := do(t, h, http.MethodPost, "/users/", `{"email": "a@example.com", "username": "a"}`)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestCreateListUnknownUser(t *testing.T) {
	repo := databasetest.New()
	h := newTestHandler(t, repo)

	rec := do(t, h, http.MethodPost, "/lists/", `{"name": "inbox", "user_id": 404}`)
	expectStatus(t, rec, http.StatusNotFound)
	if got := decode[map[string]string](t, rec); got["detail"] != "User not found" {
		t.Fatalf("unexpected detail: %v", got)
	}
	if n := repo.Calls("CreateList"); n != 0 {
		t.Fatalf("CreateList called %d times for a missing owner", n)
	}
}

func TestCreateTaskUnknownList(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	rec := do(t, h, http.MethodPost, "/tasks/", `{"title": "t", "list_id": 9}`)
	expectStatus(t, rec, http.StatusNotFound)
	if got := decode[map[string]string](t, rec); got["detail"] != "List not found" {
		t.Fatalf("unexpected detail: %v", got)
	}
}

func TestTaskPartialUpdate(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	u := createUser(t, h, "alice")
	l := createList(t, h, u.ID)
	created := createTask(t, h, l.ID, "write report")

	rec := do(t, h, http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), `{"completed": true}`)
	expectStatus(t, rec, http.StatusOK)
	got := decode[task](t, rec)

	if !got.Completed {
		t.Fatal("completed not applied")
	}
	if got.Title != created.Title || got.Priority != created.Priority ||
		got.Description == nil || *got.Description != "details" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("updated_at %v not after created_at %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestTaskUpdateNullSemantics(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	u := createUser(t, h, "alice")
	l := createList(t, h, u.ID)
	created := createTask(t, h, l.ID, "t")
	path := fmt.Sprintf("/tasks/%d", created.ID)

	rec := do(t, h, http.MethodPut, path, `{"title": null}`)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = do(t, h, http.MethodPut, path, `{"description": null, "due_date": "2025-06-01T09:00:00"}`)
	expectStatus(t, rec, http.StatusOK)
	got := decode[task](t, rec)
	if got.Description != nil {
		t.Fatalf("description not cleared: %v", *got.Description)
	}
	if got.DueDate == nil || !got.DueDate.Equal(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected due_date: %v", got.DueDate)
	}
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	for _, path := range []string{"/users/5", "/lists/5", "/tasks/5"} {
		rec := do(t, h, http.MethodPut, path, `{}`)
		expectStatus(t, rec, http.StatusNotFound)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	u := createUser(t, h, "alice")
	l := createList(t, h, u.ID)
	tk := createTask(t, h, l.ID, "t")

	rec := do(t, h, http.MethodDelete, fmt.Sprintf("/users/%d", u.ID), "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]string](t, rec); got["message"] != "User deleted successfully" {
		t.Fatalf("unexpected body: %v", got)
	}

	expectStatus(t, do(t, h, http.MethodGet, fmt.Sprintf("/lists/%d", l.ID), ""), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodGet, fmt.Sprintf("/tasks/%d", tk.ID), ""), http.StatusNotFound)
}

func TestDeleteUserCascadesThroughCache(t *testing.T) {
	m := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	logger, _ := test.NewNullLogger()
	h := newTestHandler(t, cache.New(databasetest.New(), rc, time.Minute, logger))

	u := createUser(t, h, "alice")
	l := createList(t, h, u.ID)
	tk := createTask(t, h, l.ID, "t")

	// warm the cache
	expectStatus(t, do(t, h, http.MethodGet, fmt.Sprintf("/lists/%d", l.ID), ""), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodGet, fmt.Sprintf("/tasks/%d", tk.ID), ""), http.StatusOK)

	expectStatus(t, do(t, h, http.MethodDelete, fmt.Sprintf("/users/%d", u.ID), ""), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodGet, fmt.Sprintf("/lists/%d", l.ID), ""), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodGet, fmt.Sprintf("/tasks/%d", tk.ID), ""), http.StatusNotFound)
}

func TestListTasksPagination(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	u := createUser(t, h, "alice")
	l := createList(t, h, u.ID)
	first := createTask(t, h, l.ID, "first")
	createTask(t, h, l.ID, "second")
	createTask(t, h, l.ID, "third")

	rec := do(t, h, http.MethodGet, "/tasks/?skip=0&limit=1", "")
	expectStatus(t, rec, http.StatusOK)
	got := decode[[]task](t, rec)
	if len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("unexpected page: %+v", got)
	}

	rec = do(t, h, http.MethodGet, "/tasks/?skip=10", "")
	expectStatus(t, rec, http.StatusOK)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}

	expectStatus(t, do(t, h, http.MethodGet, "/tasks/?limit=-1", ""), http.StatusBadRequest)
}

func TestListsAreNotFilteredByOwner(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	createList(t, h, createUser(t, h, "alice").ID)
	createList(t, h, createUser(t, h, "bob").ID)

	rec := do(t, h, http.MethodGet, "/lists/", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[[]list](t, rec); len(got) != 2 {
		t.Fatalf("expected lists of both owners, got %+v", got)
	}
}

func TestDeleteTaskTwice(t *testing.T) {
	repo := databasetest.New()
	h := newTestHandler(t, repo)
	u := createUser(t, h, "alice")
	l := createList(t, h, u.ID)
	tk := createTask(t, h, l.ID, "t")
	path := fmt.Sprintf("/tasks/%d", tk.ID)

	expectStatus(t, do(t, h, http.MethodDelete, path, ""), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodDelete, path, ""), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodDelete, path, ""), http.StatusNotFound)
}

func TestNonNumericIDIsBadRequest(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	expectStatus(t, do(t, h, http.MethodGet, "/users/abc", ""), http.StatusBadRequest)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	expectStatus(t, do(t, h, http.MethodPatch, "/tasks/1", `{}`), http.StatusMethodNotAllowed)
}

func TestOptionsCORS(t *testing.T) {
	h := newTestHandler(t, databasetest.New())

	for _, tt := range []struct {
		origin string
		want   string
	}{
		{devOrigin, devOrigin},
		{"http://evil.example", ""},
	} {
		req := httptest.NewRequest(http.MethodOptions, "/users/", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		expectStatus(t, rec, http.StatusOK)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Fatalf("origin %s: Access-Control-Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("OPTIONS should have no body, got %q", rec.Body.String())
		}
	}
}

func TestReadinessReportsDegradedStore(t *testing.T) {
	repo := databasetest.New()
	h := newTestHandler(t, repo)
	expectStatus(t, do(t, h, http.MethodGet, "/readyz", ""), http.StatusOK)

	repo.Err = errors.New("connection refused")
	rec := do(t, h, http.MethodGet, "/readyz", "")
	expectStatus(t, rec, http.StatusServiceUnavailable)
	if got := decode[map[string]any](t, rec); got["status"] != "degraded" {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestStoreFailureIsInternalError(t *testing.T) {
	repo := databasetest.New()
	repo.Err = errors.New("boom")
	h := newTestHandler(t, repo)

	rec := do(t, h, http.MethodGet, "/tasks/", "")
	expectStatus(t, rec, http.StatusInternalServerError)
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("internal error leaked: %s", rec.Body.String())
	}
}

func TestIDsBeyondInt32AreNotFound(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	expectStatus(t, do(t, h, http.MethodGet, "/tasks/9999999999", ""), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodDelete, "/users/9999999999", ""), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodPost, "/tasks/", `{"title": "t", "list_id": 9999999999}`), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodPost, "/lists/", `{"name": "l", "user_id": 9999999999}`), http.StatusNotFound)
}

func TestCreateTaskRejectsNullDefaults(t *testing.T) {
	h := newTestHandler(t, databasetest.New())
	l := createList(t, h, createUser(t, h, "alice").ID)

	for _, field := range []string{"completed", "priority"} {
		body := fmt.Sprintf(`{"title": "t", "list_id": %d, %q: null}`, l.ID, field)
		rec := do(t, h, http.MethodPost, "/tasks/", body)
		expectStatus(t, rec, http.StatusBadRequest)
		if !strings.Contains(rec.Body.String(), field) {
			t.Fatalf("detail should name %s: %s", field, rec.Body.String())
		}
	}

	rec := do(t, h, http.MethodPost, "/tasks/",
		fmt.Sprintf(`{"title": "t", "list_id": %d, "description": null, "due_date": null}`, l.ID))
	expectStatus(t, rec, http.StatusOK)
}
