package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
)

// MilestoneStorage implements the MilestoneStorage interface for Badger
type MilestoneStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewMilestoneStorage creates a new MilestoneStorage instance
func NewMilestoneStorage(db *BadgerDB, logger arbor.ILogger) interfaces.MilestoneStorage {
	return &MilestoneStorage{
		db:     db,
		logger: logger,
	}
}

func (s *MilestoneStorage) SaveMilestone(milestone *models.Milestone) error {
	if milestone.ID == "" {
		return fmt.Errorf("milestone ID is required")
	}
	if milestone.ProjectID == "" {
		return fmt.Errorf("milestone project ID is required")
	}
	if !milestone.Step.IsValid() {
		return fmt.Errorf("milestone step %d is out of range", milestone.Step)
	}

	now := time.Now()
	if milestone.CreatedAt.IsZero() {
		milestone.CreatedAt = now
	}
	milestone.UpdatedAt = now

	if err := s.db.Store().Upsert(milestone.ID, milestone); err != nil {
		return fmt.Errorf("failed to save milestone: %w", err)
	}
	return nil
}

func (s *MilestoneStorage) GetMilestone(id string) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := s.db.Store().Get(id, &milestone); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}
	return &milestone, nil
}

func (s *MilestoneStorage) ListMilestones(projectID string) ([]*models.Milestone, error) {
	var milestones []models.Milestone
	if err := s.db.Store().Find(&milestones, badgerhold.Where("ProjectID").Eq(projectID)); err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}

	result := make([]*models.Milestone, len(milestones))
	for i := range milestones {
		result[i] = &milestones[i]
	}
	return result, nil
}

func (s *MilestoneStorage) DeleteMilestone(id string) error {
	if err := s.db.Store().Delete(id, &models.Milestone{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return nil
}

func (s *MilestoneStorage) DeleteMilestonesByProject(projectID string) error {
	if err := s.db.Store().DeleteMatching(&models.Milestone{}, badgerhold.Where("ProjectID").Eq(projectID)); err != nil {
		return fmt.Errorf("failed to delete milestones for project: %w", err)
	}
	return nil
}
