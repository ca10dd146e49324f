package middleware

import (
	"net/http"

	"github.com/tunelink/auth-service/internal/audit"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(p []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	return rw.ResponseWriter.Write(p)
}

// AuditLog writes one audit entry per handled request with method, url
// and final status. Fire-and-forget from the handlers' perspective.
func AuditLog(sink *audit.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			sink.Request(r.Context(), r.Method, r.URL.Path, status, http.StatusText(status))
		})
	}
}
