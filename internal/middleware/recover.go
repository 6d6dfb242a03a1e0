package middleware

import (
	"fmt"
	"net/http"

	"github.com/atxtraffic/camera-proxy-go/internal/handler/api"
	"github.com/atxtraffic/camera-proxy-go/internal/logger"
)

// WithRecovery turns a panic anywhere down the chain into a 500 JSON error
// instead of killing the connection.
func WithRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Errorf(r.Context(), "❌  Panic while serving %s: %v", r.URL.Path, rec)
					api.RespondJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: fmt.Sprintf("%v", rec)})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
