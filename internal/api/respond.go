package api

import (
	"encoding/json"
	"net/http"

	"tutortribe/internal/entities"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, description string) {
	writeJSON(w, status, entities.ErrorResponse{Error: kind, ErrorDescription: description})
}

// writeServerError hides the cause in production and surfaces it everywhere
// else.
func writeServerError(w http.ResponseWriter, env string, err error) {
	description := "Internal server error"
	if env != "production" && err != nil {
		description = err.Error()
	}
	writeError(w, http.StatusInternalServerError, "server_error", description)
}
