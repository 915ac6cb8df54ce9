package handlers

import (
	"errors"
	"net/http"

	"TODOLIST_BACK-END/internal/database"
	"TODOLIST_BACK-END/internal/utils"
)

const (
	msgUserNotFound      = "User not found"
	msgListNotFound      = "List not found"
	msgTaskNotFound      = "Task not found"
	msgAlreadyRegistered = "Email or username already registered"
)

// writeStoreError maps repository errors onto HTTP responses. notFound is
// the detail used when the missing row is reported.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, notFound)
	case errors.Is(err, database.ErrDuplicateKey):
		utils.WriteErrorResponse(w, http.StatusBadRequest, msgAlreadyRegistered)
	default:
		utils.GetLoggerFromContext(r.Context()).WithError(err).Error("store operation failed")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// parseID writes a 400 and returns false when the path id is not an integer
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.ParseID(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

func parsePagination(w http.ResponseWriter, r *http.Request) (utils.Pagination, bool) {
	p, err := utils.ParsePagination(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return p, false
	}
	return p, true
}

// Options answers OPTIONS on every resource route. The CORS middleware has
// already set the cross-origin headers when the origin is allow-listed.
func Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
