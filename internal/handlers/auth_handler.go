package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
)

const sessionLifetime = 30 * 24 * time.Hour

// AuthHandler serves session issuance and Google Drive credential management
type AuthHandler struct {
	storage interfaces.AuthStorage
	logger  arbor.ILogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(storage interfaces.AuthStorage, logger arbor.ILogger) *AuthHandler {
	return &AuthHandler{
		storage: storage,
		logger:  logger,
	}
}

type sessionRequest struct {
	UserID string `json:"user_id"`
}

// SessionHandler handles POST /api/auth/session — issues an opaque session
// token for the given user. Identity verification happens upstream; this
// service only maps tokens to user IDs.
func (h *AuthHandler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req sessionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	now := time.Now().UTC()
	session := &models.Session{
		Token:     common.NewSessionToken(),
		UserID:    req.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionLifetime),
	}

	if err := h.storage.SaveSession(r.Context(), session); err != nil {
		h.logger.Error().Err(err).Msg("Failed to save session")
		WriteError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	WriteJSON(w, http.StatusCreated, session)
}

type googleCredentialRequest struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// GoogleHandler handles the /api/auth/google credential endpoints:
// POST stores the caller's Drive OAuth tokens, GET reports connection
// status, DELETE disconnects.
func (h *AuthHandler) GoogleHandler(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.storeCredential(w, r, userID)
	case http.MethodGet:
		h.credentialStatus(w, r, userID)
	case http.MethodDelete:
		h.deleteCredential(w, r, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AuthHandler) storeCredential(w http.ResponseWriter, r *http.Request, userID string) {
	var req googleCredentialRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.AccessToken == "" {
		WriteError(w, http.StatusBadRequest, "access_token is required")
		return
	}
	if req.TokenType == "" {
		req.TokenType = "Bearer"
	}

	cred := &models.DriveCredential{
		UserID:       userID,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		TokenType:    req.TokenType,
		Expiry:       req.Expiry,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := h.storage.SaveDriveCredential(r.Context(), cred); err != nil {
		h.logger.Error().Str("user_id", userID).Err(err).Msg("Failed to save drive credential")
		WriteError(w, http.StatusInternalServerError, "Failed to store credential")
		return
	}

	WriteSuccess(w, "Google Drive connected")
}

func (h *AuthHandler) credentialStatus(w http.ResponseWriter, r *http.Request, userID string) {
	cred, err := h.storage.GetDriveCredential(r.Context(), userID)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"connected": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"connected":  true,
		"expiry":     cred.Expiry,
		"updated_at": cred.UpdatedAt,
	})
}

func (h *AuthHandler) deleteCredential(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.storage.DeleteDriveCredential(r.Context(), userID); err != nil {
		h.logger.Error().Str("user_id", userID).Err(err).Msg("Failed to delete drive credential")
		WriteError(w, http.StatusInternalServerError, "Failed to disconnect")
		return
	}
	WriteSuccess(w, "Google Drive disconnected")
}
