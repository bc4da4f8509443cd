package drive

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/seedplan/seedplan/internal/models"
)

func TestTruncateContent(t *testing.T) {
	text, from := truncateContent("short", 100)
	if text != "short" || from != 0 {
		t.Errorf("Content under the cap must pass through, got %q (from %d)", text, from)
	}

	text, from = truncateContent("abcdefgh", 4)
	if text != "abcd" {
		t.Errorf("Expected 4-byte cut, got %q", text)
	}
	if from != 8 {
		t.Errorf("Expected original length 8 recorded, got %d", from)
	}

	text, from = truncateContent("no cap", 0)
	if text != "no cap" || from != 0 {
		t.Errorf("Zero cap must disable truncation, got %q (from %d)", text, from)
	}
}

func TestTruncateContentRuneBoundary(t *testing.T) {
	// Ten two-byte runes; a cap of 5 bytes lands mid-rune and must back off
	content := strings.Repeat("é", 10)

	text, from := truncateContent(content, 5)
	if from != 20 {
		t.Errorf("Expected original length 20 recorded, got %d", from)
	}
	if text != "éé" {
		t.Errorf("Expected cut backed off to rune boundary, got %q", text)
	}
	if !utf8.ValidString(text) {
		t.Error("Truncated content must remain valid UTF-8")
	}
}

func TestExtractPlainTextTruncates(t *testing.T) {
	content := "summary: " + strings.Repeat("é", 100)
	fake := &fakeDrive{
		contents: map[string][]byte{"doc1": []byte(content)},
	}
	client := newTestClient(t, fake, 10)

	file := models.RemoteFile{ID: "doc1", Name: "notes.txt", MimeType: "text/plain"}
	doc, err := client.Extract(context.Background(), file, 50)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if doc.TruncatedFrom != len(content) {
		t.Errorf("Expected original length %d recorded, got %d", len(content), doc.TruncatedFrom)
	}
	if len(doc.Content) > 50 {
		t.Errorf("Expected content capped at 50 bytes, got %d", len(doc.Content))
	}
	if !utf8.ValidString(doc.Content) {
		t.Error("Extracted content must remain valid UTF-8")
	}
}
