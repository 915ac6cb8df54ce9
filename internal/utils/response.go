package utils

import (
	"net/http"

	"github.com/bytedance/sonic"

	"TODOLIST_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigStd.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes {"detail": detail} with the given status
func WriteErrorResponse(w http.ResponseWriter, status int, detail string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Detail: detail})
}

// WriteMessageResponse writes {"message": message} with status 200
func WriteMessageResponse(w http.ResponseWriter, message string) {
	WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: message})
}
