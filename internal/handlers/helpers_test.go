package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/services/drive"
	"github.com/seedplan/seedplan/internal/services/ingestion"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"reauth", drive.ErrReauthRequired, http.StatusUnauthorized},
		{"wrapped reauth", fmt.Errorf("listing: %w", drive.ErrReauthRequired), http.StatusUnauthorized},
		{"empty result", ingestion.ErrEmptyResult, http.StatusUnprocessableEntity},
		{"malformed structuring", ingestion.ErrMalformedStructuring, http.StatusBadGateway},
		{"not found", interfaces.ErrNotFound, http.StatusNotFound},
		{"generic", errors.New("boom"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteServiceError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("Response body is not JSON: %v", err)
			}
			if body["status"] != "error" {
				t.Errorf("Expected error status in body, got %v", body["status"])
			}
		})
	}
}

func TestWriteServiceErrorReauthFlag(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(rec, drive.ErrReauthRequired)

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response body is not JSON: %v", err)
	}
	if body["needs_reauth"] != true {
		t.Error("Expected needs_reauth flag on reauth errors")
	}
}

func TestWriteServiceErrorNeverLeaksDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(rec, errors.New("pq: connection refused at 10.0.0.3"))

	if strings.Contains(rec.Body.String(), "10.0.0.3") {
		t.Error("Internal error details must not leak into the response")
	}
}

func TestRequireUser(t *testing.T) {
	// No identity -> 401 and empty return
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/projects", nil)
	if userID := RequireUser(rec, req); userID != "" {
		t.Errorf("Expected empty user ID, got %q", userID)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}

	// Identity present -> user ID returned, nothing written
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/projects", nil)
	req = req.WithContext(common.WithUserID(req.Context(), "user-42"))
	if userID := RequireUser(rec, req); userID != "user-42" {
		t.Errorf("Expected user-42, got %q", userID)
	}
	if rec.Body.Len() != 0 {
		t.Error("RequireUser must not write a body when identity is present")
	}
}

func TestDecodeJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/projects", nil)
	req.Body = http.NoBody

	var dst map[string]string
	if DecodeJSON(rec, req, &dst) {
		t.Error("Expected decode failure on empty body")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}
