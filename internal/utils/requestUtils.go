package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// RespondWithJSON writes payload as a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Error encoding JSON response")
	}
}

// SendJSONError writes {"error": message} with the given status code.
func SendJSONError(w http.ResponseWriter, message string, status int) {
	RespondWithJSON(w, status, map[string]string{"error": message})
}

// GetIDFromVars extracts a non-empty path parameter from mux.Vars.
func GetIDFromVars(w http.ResponseWriter, r *http.Request, paramName string) (string, error) {
	id := mux.Vars(r)[paramName]
	if id == "" {
		SendJSONError(w, "Missing ID parameter", http.StatusBadRequest)
		return "", errors.New("missing ID parameter")
	}
	return id, nil
}

// DecodeJSONBody decodes a single JSON value from the request body into v.
func DecodeJSONBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return malformed(err)
	}
	return nil
}
