package models

import (
	"time"
)

// Note source values
const (
	NoteSourceManual   = "manual"
	NoteSourceImport   = "import"
	NoteSourceAnalysis = "analysis"
)

// Note is a free-text capture owned by a project
type Note struct {
	ID        string    `json:"id"` // note_{uuid}
	ProjectID string    `json:"project_id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Source    string    `json:"source"` // manual, import, analysis
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Link is a saved URL owned by a project
type Link struct {
	ID          string    `json:"id"` // lnk_{uuid}
	ProjectID   string    `json:"project_id"`
	OwnerID     string    `json:"owner_id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Image is a metadata record pointing at an externally stored blob.
// Blob storage itself is a consumed contract, not implemented here.
type Image struct {
	ID        string    `json:"id"` // img_{uuid}
	ProjectID string    `json:"project_id"`
	OwnerID   string    `json:"owner_id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// Milestone is a per-step task with a done flag
type Milestone struct {
	ID        string        `json:"id"` // mst_{uuid}
	ProjectID string        `json:"project_id"`
	OwnerID   string        `json:"owner_id"`
	Step      FrameworkStep `json:"step"`
	Title     string        `json:"title"`
	Done      bool          `json:"done"`
	DueDate   *time.Time    `json:"due_date,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
