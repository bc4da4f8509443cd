package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/llm"
	"github.com/seedplan/seedplan/internal/services/projects"
)

const analysisInstruction = `You are a business analyst reviewing an entrepreneur's project plan. Produce a focused markdown analysis of the requested planning area: assess what is there, point out gaps and risks, and suggest concrete next actions. Use headings and bullet lists; keep it actionable.`

// Service generates per-step markdown analyses of a project and saves each
// result as a project note.
type Service struct {
	llm      *llm.ProviderFactory
	projects *projects.Service
	logger   arbor.ILogger
}

// NewService creates a new analysis service
func NewService(factory *llm.ProviderFactory, projectService *projects.Service, logger arbor.ILogger) *Service {
	return &Service{
		llm:      factory,
		projects: projectService,
		logger:   logger,
	}
}

// Analysis is the result of one analysis run
type Analysis struct {
	ProjectID string `json:"project_id"`
	Step      string `json:"step"` // step name or "all"
	Markdown  string `json:"markdown"`
	NoteID    string `json:"note_id,omitempty"`
}

// Analyze generates a markdown analysis for one framework step (1-5) or the
// whole plan (step 0). The result is saved as a note with source analysis;
// a note save failure is logged but does not fail the run.
func (s *Service) Analyze(ctx context.Context, ownerID, projectID string, step models.FrameworkStep) (*Analysis, error) {
	project, err := s.projects.GetProject(ownerID, projectID)
	if err != nil {
		return nil, err
	}

	scope := "all"
	if step.IsValid() {
		scope = step.String()
	}

	prompt := buildAnalysisPrompt(project, step)

	resp, err := s.llm.GenerateContent(ctx, &llm.ContentRequest{
		Messages:          []interfaces.Message{{Role: "user", Content: prompt}},
		SystemInstruction: analysisInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis completion failed: %w", err)
	}

	result := &Analysis{
		ProjectID: projectID,
		Step:      scope,
		Markdown:  resp.Text,
	}

	note, err := s.projects.CreateNote(ownerID, projectID, &models.Note{
		Title:   fmt.Sprintf("Analysis: %s", scope),
		Content: resp.Text,
		Source:  models.NoteSourceAnalysis,
	})
	if err != nil {
		s.logger.Warn().Str("project_id", projectID).Err(err).Msg("Failed to save analysis note")
	} else {
		result.NoteID = note.ID
	}

	return result, nil
}

// buildAnalysisPrompt renders the project state for the requested scope
func buildAnalysisPrompt(project *models.Project, step models.FrameworkStep) string {
	var b strings.Builder
	b.WriteString("Project: ")
	b.WriteString(project.Title)
	b.WriteString("\n")
	if project.Description != "" {
		b.WriteString(project.Description)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	writeStep := func(st models.FrameworkStep) {
		primary, secondary := project.StepFields(st)
		b.WriteString("## ")
		b.WriteString(st.String())
		b.WriteString("\n")
		if primary == "" && secondary == "" {
			b.WriteString("(empty)\n")
			return
		}
		if primary != "" {
			b.WriteString(primary)
			b.WriteString("\n")
		}
		if secondary != "" {
			b.WriteString(secondary)
			b.WriteString("\n")
		}
	}

	if step.IsValid() {
		b.WriteString(fmt.Sprintf("Analyze the %s step of this plan.\n\n", step.String()))
		writeStep(step)
	} else {
		b.WriteString("Analyze this plan across all five steps.\n\n")
		for st := models.StepConcept; st <= models.StepResources; st++ {
			writeStep(st)
			b.WriteString("\n")
		}
	}

	return b.String()
}
