package interfaces

import (
	"context"

	"github.com/seedplan/seedplan/internal/models"
)

// AuthStorage persists sessions and per-user Drive credentials
type AuthStorage interface {
	SaveSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error

	SaveDriveCredential(ctx context.Context, cred *models.DriveCredential) error
	GetDriveCredential(ctx context.Context, userID string) (*models.DriveCredential, error)
	DeleteDriveCredential(ctx context.Context, userID string) error
}
