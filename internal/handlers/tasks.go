package handlers

import (
	"net/http"

	"TODOLIST_BACK-END/internal/database"
	"TODOLIST_BACK-END/internal/dto"
	"TODOLIST_BACK-END/internal/utils"
)

// TasksHandler manages task endpoints
type TasksHandler struct {
	repo database.Repository
}

// NewTasksHandler creates a new TasksHandler
func NewTasksHandler(repo database.Repository) *TasksHandler {
	return &TasksHandler{repo: repo}
}

// CreateTask handles POST /tasks/
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param payload body dto.TaskCreateRequest true "Task payload"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "List does not exist"
// @Router /tasks/ [post]
func (h *TasksHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.TaskCreateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	task := req.Model()
	err := h.repo.WithConn(ctx, func(repo database.Repository) error {
		if _, err := repo.GetList(ctx, task.ListID); err != nil {
			return err
		}
		return repo.CreateTask(ctx, task)
	})
	if err != nil {
		writeStoreError(w, r, err, msgListNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewTaskResponse(task))
}

// ListTasks handles GET /tasks/
// @Summary List tasks
// @Description Returns tasks of every list in insertion order.
// @Tags tasks
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {array} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /tasks/ [get]
func (h *TasksHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePagination(w, r)
	if !ok {
		return
	}
	tasks, err := h.repo.ListTasks(r.Context(), p.Skip, p.Limit)
	if err != nil {
		writeStoreError(w, r, err, msgTaskNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewTaskResponses(tasks))
}

// GetTask handles GET /tasks/{id}
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TasksHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	task, err := h.repo.GetTask(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgTaskNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewTaskResponse(task))
}

// UpdateTask handles PUT /tasks/{id}
// @Summary Update a task
// @Description Only the fields present in the payload are changed. A null description or due_date clears it.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param payload body dto.TaskUpdateRequest true "Fields to change"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TasksHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req dto.TaskUpdateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.repo.UpdateTask(r.Context(), id, req.Patch())
	if err != nil {
		writeStoreError(w, r, err, msgTaskNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewTaskResponse(task))
}

// DeleteTask handles DELETE /tasks/{id}
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TasksHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteTask(r.Context(), id); err != nil {
		writeStoreError(w, r, err, msgTaskNotFound)
		return
	}
	utils.WriteMessageResponse(w, "Task deleted successfully")
}
