package response

import (
	"encoding/json"
	"net/http"
)

// Body is the uniform response envelope: status mirrors the HTTP code,
// message is a short human-readable outcome, data is optional payload.
type Body struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Write sends the envelope with the given status code.
func Write(w http.ResponseWriter, status int, message string, data any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Body{Status: status, Message: message, Data: data})
}

// OK writes a 200 response.
func OK(w http.ResponseWriter, message string, data any) {
	Write(w, http.StatusOK, message, data)
}
