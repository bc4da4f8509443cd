package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db        *BadgerDB
	project   interfaces.ProjectStorage
	note      interfaces.NoteStorage
	link      interfaces.LinkStorage
	image     interfaces.ImageStorage
	milestone interfaces.MilestoneStorage
	kv        interfaces.KeyValueStorage
	auth      interfaces.AuthStorage
	logger    arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:        db,
		project:   NewProjectStorage(db, logger),
		note:      NewNoteStorage(db, logger),
		link:      NewLinkStorage(db, logger),
		image:     NewImageStorage(db, logger),
		milestone: NewMilestoneStorage(db, logger),
		kv:        NewKVStorage(db, logger),
		auth:      NewAuthStorage(db, logger),
		logger:    logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// ProjectStorage returns the Project storage interface
func (m *Manager) ProjectStorage() interfaces.ProjectStorage {
	return m.project
}

// NoteStorage returns the Note storage interface
func (m *Manager) NoteStorage() interfaces.NoteStorage {
	return m.note
}

// LinkStorage returns the Link storage interface
func (m *Manager) LinkStorage() interfaces.LinkStorage {
	return m.link
}

// ImageStorage returns the Image storage interface
func (m *Manager) ImageStorage() interfaces.ImageStorage {
	return m.image
}

// MilestoneStorage returns the Milestone storage interface
func (m *Manager) MilestoneStorage() interfaces.MilestoneStorage {
	return m.milestone
}

// KeyValueStorage returns the KeyValue storage interface
func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// AuthStorage returns the Auth storage interface
func (m *Manager) AuthStorage() interfaces.AuthStorage {
	return m.auth
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
