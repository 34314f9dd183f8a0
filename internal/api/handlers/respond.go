package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/c360/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondParseError reports an invalid query parameter as 400
func respondParseError(w http.ResponseWriter, err error) {
	var pe *contracts.ParseError
	if errors.As(err, &pe) {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": pe.Error(),
			"field": pe.Field,
		})
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}
