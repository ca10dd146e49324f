package response

import (
	"errors"
	"net/http"

	"github.com/tunelink/auth-service/internal/domain"
	"github.com/tunelink/auth-service/internal/logger"
)

// WriteError converts a domain error into the envelope, mapping its
// kind to a fixed HTTP status. Non-domain errors become opaque 500s;
// the cause is logged, never sent to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var de *domain.Error
	if errors.As(err, &de) {
		status = statusFromKind(de.Kind)
		message = de.Message
		if de.Cause != nil {
			logger.WithCtx(r.Context()).Error().
				Str("code", de.Code).
				Err(de.Cause).
				Msg("request failed")
		}
	} else {
		logger.WithCtx(r.Context()).Error().Err(err).Msg("unhandled error")
	}

	Write(w, status, message, nil)
}

// statusFromKind maps domain error kinds to HTTP status codes. Store
// failures are 400 "DB Error", matching the API contract.
func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindStore:
		return http.StatusBadRequest
	case domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
