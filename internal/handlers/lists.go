package handlers

import (
	"net/http"

	"TODOLIST_BACK-END/internal/database"
	"TODOLIST_BACK-END/internal/dto"
	"TODOLIST_BACK-END/internal/utils"
)

// ListsHandler manages todo list endpoints
type ListsHandler struct {
	repo database.Repository
}

// NewListsHandler creates a new ListsHandler
func NewListsHandler(repo database.Repository) *ListsHandler {
	return &ListsHandler{repo: repo}
}

// CreateList handles POST /lists/
// @Summary Create a list
// @Tags lists
// @Accept json
// @Produce json
// @Param payload body dto.ListCreateRequest true "List payload"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Owner does not exist"
// @Router /lists/ [post]
func (h *ListsHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req dto.ListCreateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	list := req.Model()
	err := h.repo.WithConn(ctx, func(repo database.Repository) error {
		if _, err := repo.GetUser(ctx, list.UserID); err != nil {
			return err
		}
		return repo.CreateList(ctx, list)
	})
	if err != nil {
		writeStoreError(w, r, err, msgUserNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewListResponse(list))
}

// ListLists handles GET /lists/
// @Summary List lists
// @Description Returns lists of every owner.
// @Tags lists
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {array} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /lists/ [get]
func (h *ListsHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePagination(w, r)
	if !ok {
		return
	}
	lists, err := h.repo.ListLists(r.Context(), p.Skip, p.Limit)
	if err != nil {
		writeStoreError(w, r, err, msgListNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewListResponses(lists))
}

// GetList handles GET /lists/{id}
// @Summary Get a list
// @Tags lists
// @Produce json
// @Param id path int true "List ID"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lists/{id} [get]
func (h *ListsHandler) GetList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	list, err := h.repo.GetList(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgListNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewListResponse(list))
}

// UpdateList handles PUT /lists/{id}
// @Summary Update a list
// @Description Only the fields present in the payload are changed. A null description clears it.
// @Tags lists
// @Accept json
// @Produce json
// @Param id path int true "List ID"
// @Param payload body dto.ListUpdateRequest true "Fields to change"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lists/{id} [put]
func (h *ListsHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req dto.ListUpdateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.repo.UpdateList(r.Context(), id, req.Patch())
	if err != nil {
		writeStoreError(w, r, err, msgListNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewListResponse(list))
}

// DeleteList handles DELETE /lists/{id}
// @Summary Delete a list
// @Description Deletes the list together with its tasks.
// @Tags lists
// @Produce json
// @Param id path int true "List ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lists/{id} [delete]
func (h *ListsHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteList(r.Context(), id); err != nil {
		writeStoreError(w, r, err, msgListNotFound)
		return
	}
	utils.WriteMessageResponse(w, "List deleted successfully")
}
