package response

import (
	"encoding/json"
	"net/http"

	"folio-service/internal/apierror"
)

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the structured error envelope for an already-classified error.
func Error(w http.ResponseWriter, e *apierror.Error) {
	JSON(w, e.Status, errorEnvelope{Error: errorBody{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}})
}

// NotFound is the catch-all for unknown routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	Error(w, apierror.New(http.StatusNotFound, "not_found", "Route not found"))
}
