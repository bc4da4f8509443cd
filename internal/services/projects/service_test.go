package projects

import (
	"errors"
	"os"
	"testing"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/storage/badger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dir, err := os.MkdirTemp("", "seedplan-projects-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	manager, err := badger.NewManager(common.GetLogger(), &common.BadgerConfig{Path: dir})
	if err != nil {
		t.Fatalf("Failed to create storage manager: %v", err)
	}
	t.Cleanup(func() { manager.Close() })

	return NewService(manager, common.GetLogger())
}

func TestMaterialize(t *testing.T) {
	svc := newTestService(t)

	structure := &models.ProjectStructure{
		Title:       "Coffee Cart",
		Description: "Mobile espresso for office parks",
		Category:    "food",
		Tags:        []string{"coffee", "mobile"},
		Concept: models.ConceptSection{
			Idea:        "A mobile coffee cart",
			Solution:    "Serve offices without cafes",
			UniqueValue: "Speed and locality",
		},
		Market: models.MarketSection{
			Problem:        "No good coffee nearby",
			TargetAudience: "Office workers",
			Competition:    "Chain cafes 2km away",
		},
		Model: models.ModelSection{
			RevenueStreams: "Per-cup sales",
			Pricing:        "4.50 per cup",
			Costs:          "Cart lease, beans, labor",
		},
		ExtractedNotes: []models.ExtractedNote{
			{Title: "Supplier contact", Content: "Call Maria about beans"},
			{Title: "", Content: ""}, // empty, skipped
		},
		ExtractedLinks: []models.ExtractedLink{
			{URL: "https://example.com/permits", Title: "Permit guide"},
			{URL: ""}, // no URL, skipped
		},
	}

	project, err := svc.Materialize("user-1", structure, "Coffee Cart Folder")
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}

	if project.Title != "Coffee Cart" {
		t.Errorf("Expected structure title, got %q", project.Title)
	}
	if project.ConceptSummary != "A mobile coffee cart\n\nServe offices without cafes" {
		t.Errorf("Concept sub-fields not joined: %q", project.ConceptSummary)
	}
	if project.ConceptValue != "Speed and locality" {
		t.Errorf("Unexpected concept value: %q", project.ConceptValue)
	}
	if project.MarketProblem != "No good coffee nearby\n\nOffice workers" {
		t.Errorf("Market sub-fields not joined: %q", project.MarketProblem)
	}
	if project.ModelRevenue != "Per-cup sales\n\n4.50 per cup" {
		t.Errorf("Model sub-fields not joined: %q", project.ModelRevenue)
	}
	if project.Status != models.ProjectStatusActive {
		t.Errorf("Expected active status, got %q", project.Status)
	}
	if project.CurrentStep != models.StepResources {
		t.Errorf("Expected current step Resources, got %v", project.CurrentStep)
	}
	if project.Progress != 25 {
		t.Errorf("Expected initial progress 25, got %d", project.Progress)
	}
	if project.Source != models.ProjectSourceDriveImport {
		t.Errorf("Expected drive_import source, got %q", project.Source)
	}
	if project.SourceFolder != "Coffee Cart Folder" {
		t.Errorf("Expected source folder recorded, got %q", project.SourceFolder)
	}

	notes, err := svc.ListNotes("user-1", project.ID)
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("Expected 1 imported note, got %d", len(notes))
	}
	if notes[0].Source != models.NoteSourceImport {
		t.Errorf("Expected import source on note, got %q", notes[0].Source)
	}

	links, err := svc.ListLinks("user-1", project.ID)
	if err != nil {
		t.Fatalf("Failed to list links: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("Expected 1 imported link, got %d", len(links))
	}
}

func TestMaterializeFallsBackToFolderName(t *testing.T) {
	svc := newTestService(t)

	project, err := svc.Materialize("user-1", &models.ProjectStructure{}, "My Startup")
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if project.Title != "My Startup" {
		t.Errorf("Expected folder name fallback title, got %q", project.Title)
	}
}

func TestMaterializeSummary(t *testing.T) {
	svc := newTestService(t)

	project, err := svc.MaterializeSummary("user-1", "A quick look at the venture.", "Ideas Folder")
	if err != nil {
		t.Fatalf("MaterializeSummary failed: %v", err)
	}
	if project.Description != "A quick look at the venture." {
		t.Errorf("Expected summary as description, got %q", project.Description)
	}
	if project.CurrentStep != models.StepConcept {
		t.Errorf("Expected concept step, got %v", project.CurrentStep)
	}
	if project.Source != models.ProjectSourceDriveAnalysis {
		t.Errorf("Expected drive_analysis source, got %q", project.Source)
	}
}

func TestOwnershipEnforcement(t *testing.T) {
	svc := newTestService(t)

	project, err := svc.CreateProject("owner", &models.Project{Title: "Mine"})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	if _, err := svc.GetProject("intruder", project.ID); !errors.Is(err, interfaces.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign owner, got %v", err)
	}
	if err := svc.DeleteProject("intruder", project.ID); !errors.Is(err, interfaces.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on foreign delete, got %v", err)
	}

	// The rightful owner still sees it
	if _, err := svc.GetProject("owner", project.ID); err != nil {
		t.Errorf("Owner should see the project: %v", err)
	}
}

func TestMilestoneProgressRecompute(t *testing.T) {
	svc := newTestService(t)

	project, err := svc.CreateProject("user-1", &models.Project{Title: "Tracked"})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	m1, err := svc.CreateMilestone("user-1", project.ID, &models.Milestone{
		Title: "Write concept", Step: models.StepConcept,
	})
	if err != nil {
		t.Fatalf("CreateMilestone failed: %v", err)
	}
	if _, err := svc.CreateMilestone("user-1", project.ID, &models.Milestone{
		Title: "Interview customers", Step: models.StepMarketValidation,
	}); err != nil {
		t.Fatalf("CreateMilestone failed: %v", err)
	}

	// No milestone done yet -> progress 0
	reloaded, err := svc.GetProject("user-1", project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if reloaded.Progress != 0 {
		t.Errorf("Expected progress 0, got %d", reloaded.Progress)
	}

	m1.Done = true
	if _, err := svc.UpdateMilestone("user-1", m1); err != nil {
		t.Fatalf("UpdateMilestone failed: %v", err)
	}

	reloaded, err = svc.GetProject("user-1", project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if reloaded.Progress != 50 {
		t.Errorf("Expected progress 50 after one of two done, got %d", reloaded.Progress)
	}
}

func TestUpdateProjectImmutableFields(t *testing.T) {
	svc := newTestService(t)

	project, err := svc.Materialize("user-1", &models.ProjectStructure{Title: "Imported"}, "Folder X")
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}

	update := &models.Project{
		ID:     project.ID,
		Title:  "Renamed",
		Source: models.ProjectSourceManual, // must not stick
	}
	updated, err := svc.UpdateProject("user-1", update)
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}

	if updated.Title != "Renamed" {
		t.Errorf("Expected renamed title, got %q", updated.Title)
	}
	if updated.Source != models.ProjectSourceDriveImport {
		t.Errorf("Source must be immutable, got %q", updated.Source)
	}
	if updated.SourceFolder != "Folder X" {
		t.Errorf("SourceFolder must be immutable, got %q", updated.SourceFolder)
	}
}
