package routes

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"TODOLIST_BACK-END/internal/config"
	"TODOLIST_BACK-END/internal/handlers"
	"TODOLIST_BACK-END/internal/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter
type Handlers struct {
	Health *handlers.HealthHandler
	Users  *handlers.UsersHandler
	Lists  *handlers.ListsHandler
	Tasks  *handlers.TasksHandler
}

// NewRouter configures all application routes
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("GET /healthz", h.Health.HealthCheck)
	mux.HandleFunc("GET /livez", h.Health.LivenessCheck)
	mux.HandleFunc("GET /readyz", h.Health.ReadinessCheck)

	// API documentation
	mux.Handle("GET /docs/", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// User routes
	mux.HandleFunc("POST /users/{$}", h.Users.CreateUser)
	mux.HandleFunc("GET /users/{$}", h.Users.ListUsers)
	mux.HandleFunc("OPTIONS /users/{$}", handlers.Options)
	mux.HandleFunc("GET /users/{id}", h.Users.GetUser)
	mux.HandleFunc("PUT /users/{id}", h.Users.UpdateUser)
	mux.HandleFunc("DELETE /users/{id}", h.Users.DeleteUser)
	mux.HandleFunc("OPTIONS /users/{id}", handlers.Options)

	// List routes
	mux.HandleFunc("POST /lists/{$}", h.Lists.CreateList)
	mux.HandleFunc("GET /lists/{$}", h.Lists.ListLists)
	mux.HandleFunc("OPTIONS /lists/{$}", handlers.Options)
	mux.HandleFunc("GET /lists/{id}", h.Lists.GetList)
	mux.HandleFunc("PUT /lists/{id}", h.Lists.UpdateList)
	mux.HandleFunc("DELETE /lists/{id}", h.Lists.DeleteList)
	mux.HandleFunc("OPTIONS /lists/{id}", handlers.Options)

	// Task routes
	mux.HandleFunc("POST /tasks/{$}", h.Tasks.CreateTask)
	mux.HandleFunc("GET /tasks/{$}", h.Tasks.ListTasks)
	mux.HandleFunc("OPTIONS /tasks/{$}", handlers.Options)
	mux.HandleFunc("GET /tasks/{id}", h.Tasks.GetTask)
	mux.HandleFunc("PUT /tasks/{id}", h.Tasks.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", h.Tasks.DeleteTask)
	mux.HandleFunc("OPTIONS /tasks/{id}", handlers.Options)

	// Root route
	mux.HandleFunc("GET /{$}", h.Health.Root)

	return mux
}

// NewHandler wraps the router with request logging, panic recovery and CORS
func NewHandler(h Handlers, cfg config.CORSConfig, logger log.FieldLogger) http.Handler {
	return middleware.Chain(NewRouter(h),
		middleware.RequestLogger(logger),
		middleware.Recover,
		middleware.CORS(cfg),
	)
}
