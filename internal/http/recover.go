package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"budgetu/internal/log"
)

// recoverer turns a panic into a 500 INTERNAL_ERROR envelope carrying the
// panic value's message.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			message := fmt.Sprint(rec)
			if err, ok := rec.(error); ok {
				message = err.Error()
			}
			log.FromContext(r.Context()).ErrorContext(r.Context(), "Recovered from panic",
				"panic", message,
				"stack", string(debug.Stack()))
			InternalServerError(message).Write(w)
		}()
		next.ServeHTTP(w, r)
	})
}
