package ingestion

import (
	"testing"

	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/drive"
)

func TestPrioritizeExcludesCodeArtifacts(t *testing.T) {
	p := NewPrioritizer(nil)

	files := []models.RemoteFile{
		{ID: "1", Name: "package.json", MimeType: "application/json"},
		{ID: "2", Name: "index.ts", MimeType: "text/plain"},
		{ID: "3", Name: "Business_Plan.pdf", MimeType: "application/pdf"},
		{ID: "4", Name: "styles.css", MimeType: "text/css"},
		{ID: "5", Name: "webpack.config.js", MimeType: "text/javascript"},
	}

	result := p.Prioritize(files)
	if len(result) != 1 {
		t.Fatalf("Expected 1 eligible file, got %d", len(result))
	}
	if result[0].ID != "3" {
		t.Errorf("Expected Business_Plan.pdf to survive, got %s", result[0].Name)
	}
}

func TestPrioritizeExcludesDependencyDirs(t *testing.T) {
	p := NewPrioritizer(nil)

	files := []models.RemoteFile{
		{ID: "1", Name: "readme.md", MimeType: "text/markdown", ParentPath: "node_modules/some-pkg"},
		{ID: "2", Name: "notes.md", MimeType: "text/markdown", ParentPath: "docs"},
	}

	result := p.Prioritize(files)
	if len(result) != 1 {
		t.Fatalf("Expected 1 eligible file, got %d", len(result))
	}
	if result[0].ID != "2" {
		t.Errorf("Expected docs/notes.md to survive, got %s/%s", result[0].ParentPath, result[0].Name)
	}
}

func TestPrioritizeDoesNotExcludeBusinessNamesContainingDirWords(t *testing.T) {
	p := NewPrioritizer(nil)

	// "Handout" contains "out" and "Distribution" contains "dist"; directory
	// exclusions must only match whole path segments.
	files := []models.RemoteFile{
		{ID: "1", Name: "Marketing_Handout.pdf", MimeType: "application/pdf"},
		{ID: "2", Name: "Distribution Strategy", MimeType: drive.MimeTypeDocument},
	}

	result := p.Prioritize(files)
	if len(result) != 2 {
		t.Fatalf("Expected 2 eligible files, got %d", len(result))
	}
}

func TestPrioritizeTierOrdering(t *testing.T) {
	p := NewPrioritizer(nil)

	files := []models.RemoteFile{
		{ID: "low", Name: "notes.txt", MimeType: "text/plain"},
		{ID: "medium", Name: "Meeting Minutes", MimeType: drive.MimeTypeDocument},
		{ID: "high", Name: "Business Plan", MimeType: drive.MimeTypeDocument},
		{ID: "sheet", Name: "Numbers", MimeType: drive.MimeTypeSpreadsheet},
	}

	result := p.Prioritize(files)
	if len(result) != 4 {
		t.Fatalf("Expected 4 files, got %d", len(result))
	}

	// high tier first (keyword + rich doc), then medium in input order, low last
	expected := []string{"high", "medium", "sheet", "low"}
	for i, id := range expected {
		if result[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, result[i].ID)
		}
	}
}

func TestPrioritizeStableWithinTier(t *testing.T) {
	p := NewPrioritizer(nil)

	files := []models.RemoteFile{
		{ID: "a", Name: "Strategy A", MimeType: drive.MimeTypeDocument},
		{ID: "b", Name: "Strategy B", MimeType: drive.MimeTypeDocument},
		{ID: "c", Name: "Strategy C", MimeType: drive.MimeTypeDocument},
	}

	result := p.Prioritize(files)
	for i, id := range []string{"a", "b", "c"} {
		if result[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, result[i].ID)
		}
	}
}

func TestPrioritizeExcludesMediaAndFolders(t *testing.T) {
	p := NewPrioritizer(nil)

	files := []models.RemoteFile{
		{ID: "1", Name: "Subfolder", MimeType: drive.MimeTypeFolder},
		{ID: "2", Name: "logo.png", MimeType: "image/png"},
		{ID: "3", Name: "demo.mp4", MimeType: "video/mp4"},
		{ID: "4", Name: "plan.txt", MimeType: "text/plain"},
	}

	result := p.Prioritize(files)
	if len(result) != 1 || result[0].ID != "4" {
		t.Fatalf("Expected only plan.txt, got %d files", len(result))
	}
}

func TestPrioritizeCustomKeywords(t *testing.T) {
	p := NewPrioritizer([]string{"lanzamiento"})

	files := []models.RemoteFile{
		{ID: "1", Name: "Plan de Lanzamiento", MimeType: drive.MimeTypeDocument},
		{ID: "2", Name: "Business Plan", MimeType: drive.MimeTypeDocument},
	}

	result := p.Prioritize(files)
	// Custom vocabulary replaces the built-in one: only "lanzamiento" ranks high
	if result[0].ID != "1" {
		t.Errorf("Expected custom keyword match first, got %s", result[0].Name)
	}
}
