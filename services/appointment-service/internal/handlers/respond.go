package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/apperr"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}

// writeAppError maps the error taxonomy onto HTTP statuses. Unclassified
// errors become an opaque 500 so internals never leak to clients.
func writeAppError(w http.ResponseWriter, err error) {
	msg := "internal error"
	status := http.StatusInternalServerError

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindPermission:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindPolicyViolation:
		status = http.StatusUnprocessableEntity
	case apperr.KindValidation:
		status = http.StatusBadRequest
	}
	if status != http.StatusInternalServerError {
		msg = apperr.Message(err)
	}
	writeError(w, status, msg)
}
