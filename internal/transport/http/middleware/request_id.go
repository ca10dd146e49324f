package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tunelink/auth-service/internal/logger"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID tags every request with an ID, honoring one supplied by the
// caller, and exposes it to the loggers via the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)

		ctx := logger.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
