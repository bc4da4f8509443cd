package ingestion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/llm"
)

// structuringSystemInstruction fixes the JSON contract for the structured
// strategy. The model must emit the object and nothing else.
const structuringSystemInstruction = `You are a business analyst. You receive the contents of an entrepreneur's project folder and must produce a single JSON object describing the business project, with exactly this shape:

{
  "title": "short project title",
  "description": "one-paragraph project description",
  "category": "business category",
  "tags": ["tag1", "tag2"],
  "concept": {"idea": "", "solution": "", "uniqueValue": ""},
  "market": {"problem": "", "targetAudience": "", "competition": ""},
  "model": {"revenueStreams": "", "pricing": "", "costs": ""},
  "action": {"nextSteps": "", "timeline": "", "risks": ""},
  "resourcesPlan": {"team": "", "budget": "", "tools": ""},
  "extractedNotes": [{"title": "", "content": ""}],
  "extractedLinks": [{"url": "", "title": "", "description": ""}]
}

Rules:
- Every key must be present. Use empty strings for fields you cannot determine; never omit keys or use null.
- Make reasonable assumptions where information is missing, and say so in the relevant field.
- Respond with the JSON object only. No prose, no explanations, no code fences.`

// summarySystemInstruction guides the single-shot multimodal analysis
const summarySystemInstruction = `You are a business analyst. You receive the contents of an entrepreneur's project folder, including documents and images. Write a clear, well-organized description of the business project: what it is, the problem it addresses, the intended market, and the current state of planning. Respond in plain prose.`

// Structurer converts extracted folder content into either a structured
// ProjectStructure (JSON contract) or a free-text summary.
type Structurer struct {
	llm          *llm.ProviderFactory
	geminiConfig *common.GeminiConfig
	logger       arbor.ILogger
}

// NewStructurer creates a new structuring engine
func NewStructurer(factory *llm.ProviderFactory, geminiConfig *common.GeminiConfig, logger arbor.ILogger) *Structurer {
	return &Structurer{
		llm:          factory,
		geminiConfig: geminiConfig,
		logger:       logger,
	}
}

// Structure sends the extracted documents through a single non-streaming
// completion and parses the response into a ProjectStructure. A response
// that cannot be parsed is fatal (ErrMalformedStructuring); no retry.
func (s *Structurer) Structure(ctx context.Context, docs []*models.ExtractedDocument, folderName string) (*models.ProjectStructure, error) {
	prompt := buildStructuringPrompt(docs, folderName)

	resp, err := s.llm.GenerateContent(ctx, &llm.ContentRequest{
		Messages:          []interfaces.Message{{Role: "user", Content: prompt}},
		SystemInstruction: structuringSystemInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("structuring completion failed: %w", err)
	}

	structure, err := ParseStructureJSON(resp.Text)
	if err != nil {
		s.logger.Warn().
			Str("folder", folderName).
			Int("response_length", len(resp.Text)).
			Err(err).
			Msg("Structuring response could not be parsed")
		return nil, err
	}

	return structure, nil
}

// Summarize sends all extracted content, text and inline images, to the
// larger-context multimodal model and returns a free-text description.
func (s *Structurer) Summarize(ctx context.Context, docs []*models.ExtractedDocument, folderName string) (string, error) {
	prompt := buildStructuringPrompt(docs, folderName)

	var attachments []llm.Attachment
	for _, doc := range docs {
		if !doc.IsImage() {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(doc.ImageData)
		if err != nil {
			s.logger.Warn().Str("file", doc.File.Name).Err(err).Msg("Skipping image with invalid base64 payload")
			continue
		}
		attachments = append(attachments, llm.Attachment{
			Data:     data,
			MimeType: doc.ImageMimeType,
		})
	}

	resp, err := s.llm.GenerateContent(ctx, &llm.ContentRequest{
		Messages:          []interfaces.Message{{Role: "user", Content: prompt}},
		Model:             s.geminiConfig.SummaryModel,
		SystemInstruction: summarySystemInstruction,
		Attachments:       attachments,
	})
	if err != nil {
		return "", fmt.Errorf("summary completion failed: %w", err)
	}

	return resp.Text, nil
}

// buildStructuringPrompt concatenates per-document sections, each with a
// header naming the file and its path relative to the crawl root.
func buildStructuringPrompt(docs []*models.ExtractedDocument, folderName string) string {
	var b strings.Builder
	b.WriteString("Project folder: ")
	b.WriteString(folderName)
	b.WriteString("\n\n")

	for _, doc := range docs {
		if doc.Content == "" {
			continue
		}
		b.WriteString("=== ")
		b.WriteString(doc.File.Name)
		if doc.File.ParentPath != "" {
			b.WriteString(" (")
			b.WriteString(doc.File.ParentPath)
			b.WriteString(")")
		}
		b.WriteString(" ===\n")
		b.WriteString(doc.Content)
		b.WriteString("\n\n")
	}

	return b.String()
}

// ParseStructureJSON extracts a ProjectStructure from an LLM response.
// Tolerant pre-processing strips code fences and leading prose before the
// first brace; the object itself is parsed with a real JSON decoder, so
// nested braces in string values are handled correctly.
func ParseStructureJSON(text string) (*models.ProjectStructure, error) {
	cleaned := stripCodeFences(text)

	idx := strings.Index(cleaned, "{")
	if idx < 0 {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrMalformedStructuring)
	}

	var structure models.ProjectStructure
	dec := json.NewDecoder(strings.NewReader(cleaned[idx:]))
	if err := dec.Decode(&structure); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStructuring, err)
	}

	structure.Normalize()
	return &structure, nil
}

// stripCodeFences removes a surrounding markdown code fence if present
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
