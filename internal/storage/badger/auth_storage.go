package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
)

// AuthStorage implements the AuthStorage interface for Badger.
// Sessions are keyed by token, Drive credentials by user ID.
type AuthStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAuthStorage creates a new AuthStorage instance
func NewAuthStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AuthStorage {
	return &AuthStorage{
		db:     db,
		logger: logger,
	}
}

func (s *AuthStorage) SaveSession(ctx context.Context, session *models.Session) error {
	if session.Token == "" {
		return fmt.Errorf("session token is required")
	}
	if session.UserID == "" {
		return fmt.Errorf("session user ID is required")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(session.Token, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *AuthStorage) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := s.db.Store().Get(token, &session); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (s *AuthStorage) DeleteSession(ctx context.Context, token string) error {
	if err := s.db.Store().Delete(token, &models.Session{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *AuthStorage) SaveDriveCredential(ctx context.Context, cred *models.DriveCredential) error {
	if cred.UserID == "" {
		return fmt.Errorf("credential user ID is required")
	}
	cred.UpdatedAt = time.Now()

	if err := s.db.Store().Upsert(cred.UserID, cred); err != nil {
		return fmt.Errorf("failed to save drive credential: %w", err)
	}
	return nil
}

func (s *AuthStorage) GetDriveCredential(ctx context.Context, userID string) (*models.DriveCredential, error) {
	var cred models.DriveCredential
	if err := s.db.Store().Get(userID, &cred); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get drive credential: %w", err)
	}
	return &cred, nil
}

func (s *AuthStorage) DeleteDriveCredential(ctx context.Context, userID string) error {
	if err := s.db.Store().Delete(userID, &models.DriveCredential{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete drive credential: %w", err)
	}
	return nil
}
