package drive

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/interfaces"
)

// Google Workspace MIME types
const (
	MimeTypeFolder       = "application/vnd.google-apps.folder"
	MimeTypeDocument     = "application/vnd.google-apps.document"
	MimeTypeSpreadsheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypePresentation = "application/vnd.google-apps.presentation"
)

// Service builds per-user Drive clients from stored OAuth credentials.
// A single rate limiter is shared across all clients so concurrent requests
// for different users still respect the application-wide quota.
type Service struct {
	authStorage interfaces.AuthStorage
	config      *common.DriveConfig
	logger      arbor.ILogger
	limiter     *RateLimiter
	clientOpts  []option.ClientOption
}

// NewService creates a new Drive service. Extra client options are applied to
// every constructed API client; tests use this to point at a fake endpoint.
func NewService(authStorage interfaces.AuthStorage, config *common.DriveConfig, logger arbor.ILogger, clientOpts ...option.ClientOption) *Service {
	return &Service{
		authStorage: authStorage,
		config:      config,
		logger:      logger,
		limiter:     NewRateLimiter(config),
		clientOpts:  clientOpts,
	}
}

// Client wraps a user-scoped Drive API client with listing and extraction
// operations.
type Client struct {
	svc     *drive.Service
	config  *common.DriveConfig
	limiter *RateLimiter
	logger  arbor.ILogger
}

// ClientFor builds a Drive client for the given user from stored credentials.
// Returns ErrReauthRequired when no usable credential exists.
func (s *Service) ClientFor(ctx context.Context, userID string) (*Client, error) {
	cred, err := s.authStorage.GetDriveCredential(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrReauthRequired
		}
		return nil, fmt.Errorf("failed to load drive credential: %w", err)
	}

	token := &oauth2.Token{
		AccessToken: cred.AccessToken,
		TokenType:   cred.TokenType,
		Expiry:      cred.Expiry,
	}
	// Tokens are minted and refreshed by the frontend OAuth flow; no client
	// secret is held server-side, so an expired access token cannot be
	// refreshed here and the user must re-connect Drive.
	if !token.Valid() {
		return nil, ErrReauthRequired
	}

	opts := append([]option.ClientOption{option.WithTokenSource(oauth2.StaticTokenSource(token))}, s.clientOpts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	return &Client{
		svc:     svc,
		config:  s.config,
		limiter: s.limiter,
		logger:  s.logger,
	}, nil
}
