package common

import (
	"github.com/google/uuid"
)

// NewProjectID generates a unique project ID with the "prj_" prefix
func NewProjectID() string {
	return "prj_" + uuid.New().String()
}

// NewNoteID generates a unique note ID with the "note_" prefix
func NewNoteID() string {
	return "note_" + uuid.New().String()
}

// NewLinkID generates a unique link ID with the "lnk_" prefix
func NewLinkID() string {
	return "lnk_" + uuid.New().String()
}

// NewImageID generates a unique image ID with the "img_" prefix
func NewImageID() string {
	return "img_" + uuid.New().String()
}

// NewMilestoneID generates a unique milestone ID with the "mst_" prefix
func NewMilestoneID() string {
	return "mst_" + uuid.New().String()
}

// NewSessionToken generates an opaque session token
func NewSessionToken() string {
	return "sess_" + uuid.New().String()
}
