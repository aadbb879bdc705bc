package appMiddleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/FACorreiaa/tripster-api/internal/api"
)

// Recoverer turns a panic into a logged 500 with the standard JSON error
// body. The stack trace is logged, never returned.
func Recoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "Panic recovered",
					slog.Any("panic", rec),
					slog.String("req_id", middleware.GetReqID(r.Context())),
					slog.String("stack", string(debug.Stack())),
				)
				if r.Header.Get("Connection") != "Upgrade" {
					api.ErrorResponse(w, r, http.StatusInternalServerError, api.MsgInternalError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// NotFound and MethodNotAllowed keep unmatched routes on the JSON error shape.
func NotFound(w http.ResponseWriter, r *http.Request) {
	api.ErrorResponse(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	api.ErrorResponse(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}
