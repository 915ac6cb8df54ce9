package handlers

import (
	"context"
	"errors"
	"net/http"

	"TODOLIST_BACK-END/internal/database"
	"TODOLIST_BACK-END/internal/dto"
	"TODOLIST_BACK-END/internal/models"
	"TODOLIST_BACK-END/internal/utils"
)

// UsersHandler manages user endpoints
type UsersHandler struct {
	repo   database.Repository
	hasher utils.PasswordHasher
}

// NewUsersHandler creates a new UsersHandler
func NewUsersHandler(repo database.Repository, hasher utils.PasswordHasher) *UsersHandler {
	return &UsersHandler{repo: repo, hasher: hasher}
}

// CreateUser handles POST /users/
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param payload body dto.UserCreateRequest true "User payload"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/ [post]
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UserCreateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}
	if err := req.Validate(); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := h.hasher.Hash(*req.Password)
	if err != nil {
		writeStoreError(w, r, err, msgUserNotFound)
		return
	}

	ctx := r.Context()
	user := &models.User{Email: *req.Email, Username: *req.Username, PasswordHash: hash}
	err = h.repo.WithConn(ctx, func(repo database.Repository) error {
		return createUser(ctx, repo, user)
	})
	if err != nil {
		writeStoreError(w, r, err, msgUserNotFound)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NewUserResponse(user))
}

// createUser rejects the user when either the email or the username is
// taken. A race past the check is still caught by the unique indexes.
func createUser(ctx context.Context, repo database.Repository, user *models.User) error {
	_, err := repo.FindUserByEmailOrUsername(ctx, user.Email, user.Username)
	switch {
	case err == nil:
		return database.ErrDuplicateKey
	case !errors.Is(err, database.ErrNotFound):
		return err
	}
	return repo.CreateUser(ctx, user)
}

// ListUsers handles GET /users/
// @Summary List users
// @Tags users
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {array} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /users/ [get]
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePagination(w, r)
	if !ok {
		return
	}
	users, err := h.repo.ListUsers(r.Context(), p.Skip, p.Limit)
	if err != nil {
		writeStoreError(w, r, err, msgUserNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewUserResponses(users))
}

// GetUser handles GET /users/{id}
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	user, err := h.repo.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgUserNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewUserResponse(user))
}

// UpdateUser handles PUT /users/{id}
// @Summary Update a user
// @Description Only the fields present in the payload are changed.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param payload body dto.UserUpdateRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [put]
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req dto.UserUpdateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := req.Patch(h.hasher.Hash)
	if err != nil {
		writeStoreError(w, r, err, msgUserNotFound)
		return
	}

	user, err := h.repo.UpdateUser(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, r, err, msgUserNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewUserResponse(user))
}

// DeleteUser handles DELETE /users/{id}
// @Summary Delete a user
// @Description Deletes the user together with its lists and their tasks.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [delete]
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteUser(r.Context(), id); err != nil {
		writeStoreError(w, r, err, msgUserNotFound)
		return
	}
	utils.WriteMessageResponse(w, "User deleted successfully")
}
