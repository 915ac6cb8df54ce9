package middleware

import (
	"net/http"
	"runtime/debug"

	"TODOLIST_BACK-END/internal/utils"
)

// Recover turns a handler panic into a 500 so one bad request never takes
// the process down.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			utils.GetLoggerFromContext(r.Context()).
				WithField("panic", rec).
				WithField("stack", string(debug.Stack())).
				Error("panic while serving request")
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}
