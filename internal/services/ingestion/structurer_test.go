package ingestion

import (
	"errors"
	"testing"
)

func TestParseStructureJSONRaw(t *testing.T) {
	raw := `{"title": "Coffee Cart", "description": "Mobile espresso", "category": "food", "tags": ["coffee"], "concept": {"idea": "A cart", "solution": "Espresso on the go", "uniqueValue": "Speed"}, "market": {}, "model": {}, "action": {}, "resourcesPlan": {}, "extractedNotes": [], "extractedLinks": []}`

	structure, err := ParseStructureJSON(raw)
	if err != nil {
		t.Fatalf("Failed to parse raw JSON: %v", err)
	}
	if structure.Title != "Coffee Cart" {
		t.Errorf("Expected title 'Coffee Cart', got %q", structure.Title)
	}
	if structure.Concept.Idea != "A cart" {
		t.Errorf("Expected concept idea 'A cart', got %q", structure.Concept.Idea)
	}
}

func TestParseStructureJSONFenced(t *testing.T) {
	fenced := "```json\n{\"title\": \"Fenced\", \"concept\": {\"idea\": \"x\"}}\n```"

	structure, err := ParseStructureJSON(fenced)
	if err != nil {
		t.Fatalf("Failed to parse fenced JSON: %v", err)
	}
	if structure.Title != "Fenced" {
		t.Errorf("Expected title 'Fenced', got %q", structure.Title)
	}
}

func TestParseStructureJSONLeadingProse(t *testing.T) {
	text := "Here is the structure you asked for:\n{\"title\": \"Prose Wrapped\"}"

	structure, err := ParseStructureJSON(text)
	if err != nil {
		t.Fatalf("Failed to parse JSON with leading prose: %v", err)
	}
	if structure.Title != "Prose Wrapped" {
		t.Errorf("Expected title 'Prose Wrapped', got %q", structure.Title)
	}
}

func TestParseStructureJSONProseOnly(t *testing.T) {
	_, err := ParseStructureJSON("I could not find any business content in these files.")
	if err == nil {
		t.Fatal("Expected error for prose-only response")
	}
	if !errors.Is(err, ErrMalformedStructuring) {
		t.Errorf("Expected ErrMalformedStructuring, got %v", err)
	}
}

func TestParseStructureJSONInvalid(t *testing.T) {
	_, err := ParseStructureJSON("{\"title\": ")
	if err == nil {
		t.Fatal("Expected error for truncated JSON")
	}
	if !errors.Is(err, ErrMalformedStructuring) {
		t.Errorf("Expected ErrMalformedStructuring, got %v", err)
	}
}

func TestParseStructureJSONNormalizesSlices(t *testing.T) {
	structure, err := ParseStructureJSON(`{"title": "Minimal"}`)
	if err != nil {
		t.Fatalf("Failed to parse minimal JSON: %v", err)
	}
	if structure.Tags == nil {
		t.Error("Expected non-nil tags slice after normalization")
	}
	if structure.ExtractedNotes == nil {
		t.Error("Expected non-nil extracted notes slice after normalization")
	}
	if structure.ExtractedLinks == nil {
		t.Error("Expected non-nil extracted links slice after normalization")
	}
}
