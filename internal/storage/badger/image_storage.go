package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
)

// ImageStorage implements the ImageStorage interface for Badger
type ImageStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewImageStorage creates a new ImageStorage instance
func NewImageStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ImageStorage {
	return &ImageStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ImageStorage) SaveImage(image *models.Image) error {
	if image.ID == "" {
		return fmt.Errorf("image ID is required")
	}
	if image.ProjectID == "" {
		return fmt.Errorf("image project ID is required")
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(image.ID, image); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func (s *ImageStorage) GetImage(id string) (*models.Image, error) {
	var image models.Image
	if err := s.db.Store().Get(id, &image); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &image, nil
}

func (s *ImageStorage) ListImages(projectID string) ([]*models.Image, error) {
	var images []models.Image
	if err := s.db.Store().Find(&images, badgerhold.Where("ProjectID").Eq(projectID)); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	result := make([]*models.Image, len(images))
	for i := range images {
		result[i] = &images[i]
	}
	return result, nil
}

func (s *ImageStorage) DeleteImage(id string) error {
	if err := s.db.Store().Delete(id, &models.Image{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *ImageStorage) DeleteImagesByProject(projectID string) error {
	if err := s.db.Store().DeleteMatching(&models.Image{}, badgerhold.Where("ProjectID").Eq(projectID)); err != nil {
		return fmt.Errorf("failed to delete images for project: %w", err)
	}
	return nil
}
