package api

import (
	"encoding/json"
	"net/http"
)

type messageResponse struct {
	Message string `json:"message"`
}

type notFoundResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func respondJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(value)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondNotFound writes the uniform missing-resource body used for
// identifier lookups that do not resolve.
func respondNotFound(w http.ResponseWriter) {
	respondJSON(w, http.StatusNotFound, notFoundResponse{
		Status:  "error",
		Message: "Resource not found",
	})
}

// respondValidationErrors writes a per-field error list with a 422 status.
func respondValidationErrors(w http.ResponseWriter, errs map[string][]string) {
	respondJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{
		Message: "The given data was invalid.",
		Errors:  errs,
	})
}
