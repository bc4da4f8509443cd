package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/services/drive"
	"github.com/seedplan/seedplan/internal/services/ingestion"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// WriteServiceError maps a service-layer error to the HTTP error taxonomy:
// re-auth -> 401 with needs_reauth, empty result -> 422, malformed
// structuring -> 502, not found -> 404, everything else -> 502 generic.
func WriteServiceError(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, drive.ErrReauthRequired):
		return WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"status":       "error",
			"error":        "Google Drive authorization required",
			"needs_reauth": true,
		})
	case errors.Is(err, ingestion.ErrEmptyResult):
		return WriteError(w, http.StatusUnprocessableEntity, "No usable content found in folder")
	case errors.Is(err, ingestion.ErrMalformedStructuring):
		return WriteError(w, http.StatusBadGateway, "Analysis produced an unreadable result, please try again")
	case errors.Is(err, interfaces.ErrNotFound):
		return WriteError(w, http.StatusNotFound, "Not found")
	default:
		return WriteError(w, http.StatusBadGateway, "Upstream service failure")
	}
}

// DecodeJSON decodes the request body into dst, writing a 400 on failure.
// Returns true on success.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// RequireUser resolves the authenticated user from the request context.
// Returns "" after writing a 401 when the request carries no identity.
func RequireUser(w http.ResponseWriter, r *http.Request) string {
	userID := common.UserIDFromContext(r.Context())
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
	}
	return userID
}
