package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
)

// LinkStorage implements the LinkStorage interface for Badger
type LinkStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewLinkStorage creates a new LinkStorage instance
func NewLinkStorage(db *BadgerDB, logger arbor.ILogger) interfaces.LinkStorage {
	return &LinkStorage{
		db:     db,
		logger: logger,
	}
}

func (s *LinkStorage) SaveLink(link *models.Link) error {
	if link.ID == "" {
		return fmt.Errorf("link ID is required")
	}
	if link.ProjectID == "" {
		return fmt.Errorf("link project ID is required")
	}

	now := time.Now()
	if link.CreatedAt.IsZero() {
		link.CreatedAt = now
	}
	link.UpdatedAt = now

	if err := s.db.Store().Upsert(link.ID, link); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}
	return nil
}

func (s *LinkStorage) GetLink(id string) (*models.Link, error) {
	var link models.Link
	if err := s.db.Store().Get(id, &link); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return &link, nil
}

func (s *LinkStorage) ListLinks(projectID string) ([]*models.Link, error) {
	var links []models.Link
	if err := s.db.Store().Find(&links, badgerhold.Where("ProjectID").Eq(projectID)); err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	result := make([]*models.Link, len(links))
	for i := range links {
		result[i] = &links[i]
	}
	return result, nil
}

func (s *LinkStorage) DeleteLink(id string) error {
	if err := s.db.Store().Delete(id, &models.Link{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

func (s *LinkStorage) DeleteLinksByProject(projectID string) error {
	if err := s.db.Store().DeleteMatching(&models.Link{}, badgerhold.Where("ProjectID").Eq(projectID)); err != nil {
		return fmt.Errorf("failed to delete links for project: %w", err)
	}
	return nil
}
