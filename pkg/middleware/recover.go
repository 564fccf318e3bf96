package middleware

import (
	"net/http"

	"echofeed/pkg/handlers"

	"go.uber.org/zap"
)

// Recover turns a handler panic into a plain 500 so one bad request cannot
// take the server down.
func Recover(logger *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorw("panic recovered",
					"method", r.Method,
					"url", r.URL.Path,
					"err", err,
				)
				handlers.WriteResponse(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
