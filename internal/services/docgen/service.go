package docgen

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/llm"
	"github.com/seedplan/seedplan/internal/services/projects"
)

const composeInstruction = `You are a business writer. Compose a complete, investor-ready business plan in markdown from the project information provided. Structure it with clear headings covering: executive summary, concept, market validation, business model, action plan, and resources. Write full prose under each heading; expand thin areas with clearly marked assumptions. Respond with markdown only.`

// Service composes a full business-plan document from a project's planning
// fields and renders it to markdown or PDF.
type Service struct {
	llm      *llm.ProviderFactory
	projects *projects.Service
	logger   arbor.ILogger
}

// NewService creates a new document generation service
func NewService(factory *llm.ProviderFactory, projectService *projects.Service, logger arbor.ILogger) *Service {
	return &Service{
		llm:      factory,
		projects: projectService,
		logger:   logger,
	}
}

// Document is a generated business plan
type Document struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Markdown  string `json:"markdown"`
}

// Compose generates the business-plan markdown for a project
func (s *Service) Compose(ctx context.Context, ownerID, projectID string) (*Document, error) {
	project, err := s.projects.GetProject(ownerID, projectID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Project: ")
	b.WriteString(project.Title)
	b.WriteString("\n")
	if project.Description != "" {
		b.WriteString(project.Description)
		b.WriteString("\n")
	}
	if project.Category != "" {
		b.WriteString("Category: ")
		b.WriteString(project.Category)
		b.WriteString("\n")
	}
	for step := models.StepConcept; step <= models.StepResources; step++ {
		primary, secondary := project.StepFields(step)
		if primary == "" && secondary == "" {
			continue
		}
		b.WriteString("\n## ")
		b.WriteString(step.String())
		b.WriteString("\n")
		b.WriteString(primary)
		if secondary != "" {
			b.WriteString("\n")
			b.WriteString(secondary)
		}
		b.WriteString("\n")
	}

	resp, err := s.llm.GenerateContent(ctx, &llm.ContentRequest{
		Messages:          []interfaces.Message{{Role: "user", Content: b.String()}},
		SystemInstruction: composeInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("document composition failed: %w", err)
	}

	return &Document{
		ProjectID: projectID,
		Title:     project.Title,
		Markdown:  resp.Text,
	}, nil
}

// RenderPDF converts the document's markdown to a PDF. The markdown is
// parsed into an AST and rendered block by block; inline formatting is
// flattened to plain text.
func (s *Service) RenderPDF(doc *Document) ([]byte, error) {
	source := []byte(doc.Markdown)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, tr(doc.Title), "", "L", false)
	pdf.Ln(4)

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		renderBlock(pdf, tr, node, source)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// renderBlock writes one top-level markdown block into the PDF
func renderBlock(pdf *fpdf.Fpdf, tr func(string) string, node ast.Node, source []byte) {
	switch n := node.(type) {
	case *ast.Heading:
		size := 16.0 - float64(n.Level)
		if size < 11 {
			size = 11
		}
		pdf.SetFont("Helvetica", "B", size)
		pdf.MultiCell(0, 8, tr(blockText(n, source)), "", "L", false)
		pdf.Ln(2)

	case *ast.List:
		pdf.SetFont("Helvetica", "", 11)
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			pdf.MultiCell(0, 6, tr("- "+blockText(item, source)), "", "L", false)
		}
		pdf.Ln(3)

	case *ast.Blockquote:
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, tr(blockText(n, source)), "", "L", false)
		pdf.Ln(3)

	case *ast.ThematicBreak:
		pdf.Ln(4)

	default:
		content := blockText(node, source)
		if content == "" {
			return
		}
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(content), "", "L", false)
		pdf.Ln(3)
	}
}

// blockText flattens a block node's inline content to plain text
func blockText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteString(" ")
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
