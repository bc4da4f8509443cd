package interfaces

import (
	"errors"

	"github.com/seedplan/seedplan/internal/models"
)

// ErrNotFound is returned when a requested record does not exist or is not
// visible to the requesting owner.
var ErrNotFound = errors.New("record not found")

// ListOptions controls pagination and filtering for list operations
type ListOptions struct {
	Status string // filter by project status
	Source string // filter by project source
	Limit  int
	Offset int
}

// ProjectStorage persists projects
type ProjectStorage interface {
	SaveProject(project *models.Project) error
	GetProject(id string) (*models.Project, error)
	ListProjects(ownerID string, opts *ListOptions) ([]*models.Project, error)
	DeleteProject(id string) error
	CountProjects(ownerID string) (int, error)
	GetStats(ownerID string) (*models.ProjectStats, error)
}

// NoteStorage persists notes
type NoteStorage interface {
	SaveNote(note *models.Note) error
	GetNote(id string) (*models.Note, error)
	ListNotes(projectID string) ([]*models.Note, error)
	DeleteNote(id string) error
	DeleteNotesByProject(projectID string) error
}

// LinkStorage persists links
type LinkStorage interface {
	SaveLink(link *models.Link) error
	GetLink(id string) (*models.Link, error)
	ListLinks(projectID string) ([]*models.Link, error)
	DeleteLink(id string) error
	DeleteLinksByProject(projectID string) error
}

// ImageStorage persists image metadata records
type ImageStorage interface {
	SaveImage(image *models.Image) error
	GetImage(id string) (*models.Image, error)
	ListImages(projectID string) ([]*models.Image, error)
	DeleteImage(id string) error
	DeleteImagesByProject(projectID string) error
}

// MilestoneStorage persists milestones
type MilestoneStorage interface {
	SaveMilestone(milestone *models.Milestone) error
	GetMilestone(id string) (*models.Milestone, error)
	ListMilestones(projectID string) ([]*models.Milestone, error)
	DeleteMilestone(id string) error
	DeleteMilestonesByProject(projectID string) error
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	ProjectStorage() ProjectStorage
	NoteStorage() NoteStorage
	LinkStorage() LinkStorage
	ImageStorage() ImageStorage
	MilestoneStorage() MilestoneStorage
	KeyValueStorage() KeyValueStorage
	AuthStorage() AuthStorage
	Close() error
}
