package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	storage := NewAuthStorage(db, arbor.NewLogger())
	ctx := context.Background()

	session := &models.Session{
		Token:     "sess_abc",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, storage.SaveSession(ctx, session))
	assert.False(t, session.CreatedAt.IsZero(), "CreatedAt should be set on save")

	loaded, err := storage.GetSession(ctx, "sess_abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", loaded.UserID)
	assert.False(t, loaded.Expired())

	require.NoError(t, storage.DeleteSession(ctx, "sess_abc"))
	_, err = storage.GetSession(ctx, "sess_abc")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	// Deleting a missing session is not an error
	assert.NoError(t, storage.DeleteSession(ctx, "sess_abc"))
}

func TestSessionValidation(t *testing.T) {
	db := newTestDB(t)
	storage := NewAuthStorage(db, arbor.NewLogger())
	ctx := context.Background()

	assert.Error(t, storage.SaveSession(ctx, &models.Session{UserID: "u"}), "token required")
	assert.Error(t, storage.SaveSession(ctx, &models.Session{Token: "t"}), "user ID required")
}

func TestSessionExpiry(t *testing.T) {
	expired := &models.Session{
		Token:     "sess_old",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	assert.True(t, expired.Expired())

	open := &models.Session{Token: "sess_open", UserID: "user-1"}
	assert.False(t, open.Expired(), "zero expiry means no expiry")
}

func TestDriveCredentialLifecycle(t *testing.T) {
	db := newTestDB(t)
	storage := NewAuthStorage(db, arbor.NewLogger())
	ctx := context.Background()

	cred := &models.DriveCredential{
		UserID:      "user-1",
		AccessToken: "ya29.token",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}
	require.NoError(t, storage.SaveDriveCredential(ctx, cred))

	loaded, err := storage.GetDriveCredential(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", loaded.AccessToken)

	// Re-saving overwrites the stored token
	cred.AccessToken = "ya29.refreshed"
	require.NoError(t, storage.SaveDriveCredential(ctx, cred))
	loaded, err = storage.GetDriveCredential(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ya29.refreshed", loaded.AccessToken)

	require.NoError(t, storage.DeleteDriveCredential(ctx, "user-1"))
	_, err = storage.GetDriveCredential(ctx, "user-1")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestKVStorageCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	storage := NewKVStorage(db, arbor.NewLogger())
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "Gemini_API_Key", "secret", "LLM key"))

	value, err := storage.Get(ctx, "gemini_api_key")
	require.NoError(t, err)
	assert.Equal(t, "secret", value)

	value, err = storage.Get(ctx, "GEMINI_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "secret", value)

	_, err = storage.Get(ctx, "missing")
	assert.ErrorIs(t, err, interfaces.ErrKeyNotFound)

	require.NoError(t, storage.Delete(ctx, "gemini_api_key"))
	assert.ErrorIs(t, storage.Delete(ctx, "gemini_api_key"), interfaces.ErrKeyNotFound)
}
