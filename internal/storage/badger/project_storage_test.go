package badger

import (
	"os"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "badger-test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store}
}

func TestProjectLifecycle(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewProjectStorage(db, logger)

	project := &models.Project{
		ID:      "prj-1",
		OwnerID: "user-1",
		Title:   "Ecommerce platform",
		Status:  models.ProjectStatusActive,
		Source:  models.ProjectSourceManual,
	}
	if err := storage.SaveProject(project); err != nil {
		t.Fatalf("Failed to save project: %v", err)
	}
	if project.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set on save")
	}

	loaded, err := storage.GetProject("prj-1")
	if err != nil {
		t.Fatalf("Failed to get project: %v", err)
	}
	if loaded.Title != "Ecommerce platform" {
		t.Errorf("Expected title 'Ecommerce platform', got %q", loaded.Title)
	}

	// Updates keep the original creation timestamp
	created := loaded.CreatedAt
	loaded.Title = "Ecommerce platform v2"
	if err := storage.SaveProject(loaded); err != nil {
		t.Fatalf("Failed to update project: %v", err)
	}
	updated, err := storage.GetProject("prj-1")
	if err != nil {
		t.Fatalf("Failed to reload project: %v", err)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Error("Expected CreatedAt to be preserved on update")
	}

	if err := storage.DeleteProject("prj-1"); err != nil {
		t.Fatalf("Failed to delete project: %v", err)
	}
	if _, err := storage.GetProject("prj-1"); err != interfaces.ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestProjectListFiltering(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewProjectStorage(db, logger)

	seed := []*models.Project{
		{ID: "prj-1", OwnerID: "user-1", Title: "A", Status: models.ProjectStatusActive, Source: models.ProjectSourceManual},
		{ID: "prj-2", OwnerID: "user-1", Title: "B", Status: models.ProjectStatusArchived, Source: models.ProjectSourceManual},
		{ID: "prj-3", OwnerID: "user-1", Title: "C", Status: models.ProjectStatusActive, Source: models.ProjectSourceDriveImport},
		{ID: "prj-4", OwnerID: "user-2", Title: "D", Status: models.ProjectStatusActive, Source: models.ProjectSourceManual},
	}
	for _, p := range seed {
		if err := storage.SaveProject(p); err != nil {
			t.Fatalf("Failed to save project %s: %v", p.ID, err)
		}
	}

	all, err := storage.ListProjects("user-1", nil)
	if err != nil {
		t.Fatalf("Failed to list projects: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 projects for user-1, got %d", len(all))
	}

	active, err := storage.ListProjects("user-1", &interfaces.ListOptions{Status: models.ProjectStatusActive})
	if err != nil {
		t.Fatalf("Failed to list active projects: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("Expected 2 active projects, got %d", len(active))
	}

	imported, err := storage.ListProjects("user-1", &interfaces.ListOptions{Source: models.ProjectSourceDriveImport})
	if err != nil {
		t.Fatalf("Failed to list imported projects: %v", err)
	}
	if len(imported) != 1 {
		t.Errorf("Expected 1 imported project, got %d", len(imported))
	}

	count, err := storage.CountProjects("user-2")
	if err != nil {
		t.Fatalf("Failed to count projects: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 project for user-2, got %d", count)
	}

	stats, err := storage.GetStats("user-1")
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats.TotalProjects != 3 {
		t.Errorf("Expected 3 total projects in stats, got %d", stats.TotalProjects)
	}
	if stats.ProjectsByStatus[models.ProjectStatusActive] != 2 {
		t.Errorf("Expected 2 active in stats, got %d", stats.ProjectsByStatus[models.ProjectStatusActive])
	}
}

func TestNoteCascadeDelete(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewNoteStorage(db, logger)

	for _, n := range []*models.Note{
		{ID: "note-1", ProjectID: "prj-1", Content: "first", Source: models.NoteSourceManual},
		{ID: "note-2", ProjectID: "prj-1", Content: "second", Source: models.NoteSourceImport},
		{ID: "note-3", ProjectID: "prj-2", Content: "other", Source: models.NoteSourceManual},
	} {
		if err := storage.SaveNote(n); err != nil {
			t.Fatalf("Failed to save note %s: %v", n.ID, err)
		}
	}

	if err := storage.DeleteNotesByProject("prj-1"); err != nil {
		t.Fatalf("Failed to delete notes by project: %v", err)
	}

	remaining, err := storage.ListNotes("prj-1")
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected 0 notes for prj-1 after cascade, got %d", len(remaining))
	}

	other, err := storage.ListNotes("prj-2")
	if err != nil {
		t.Fatalf("Failed to list notes for prj-2: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 note for prj-2, got %d", len(other))
	}
}

func TestMilestoneStepValidation(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewMilestoneStorage(db, logger)

	bad := &models.Milestone{ID: "mst-1", ProjectID: "prj-1", Title: "out of range", Step: 9}
	if err := storage.SaveMilestone(bad); err == nil {
		t.Error("Expected error saving milestone with invalid step")
	}

	good := &models.Milestone{ID: "mst-2", ProjectID: "prj-1", Title: "validate market", Step: models.StepMarketValidation}
	if err := storage.SaveMilestone(good); err != nil {
		t.Fatalf("Failed to save milestone: %v", err)
	}
}
