package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"institute-backend/pkg/utils"
)

// PanicRecovery converts handler panics into 500 responses so a single
// bad request cannot take down the server.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic on %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
