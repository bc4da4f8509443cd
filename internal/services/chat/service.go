package chat

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

const assistantInstruction = `You are a business-planning assistant for entrepreneurs. Help the user develop their project through the five planning steps: Concept, Market Validation, Business Model, Action Plan, and Resources. Be concrete and practical; when the user's project context is provided, ground your answers in it.`

// Service is the chat assistant. When a project ID accompanies the request,
// the project's fields and notes are prepended as context.
type Service struct {
	llm      *llm.ProviderFactory
	projects *projects.Service
	logger   arbor.ILogger
}

// NewService creates a new chat service
func NewService(factory *llm.ProviderFactory, projectService *projects.Service, logger arbor.ILogger) *Service {
	return &Service{
		llm:      factory,
		projects: projectService,
		logger:   logger,
	}
}

// Complete runs a single non-streaming chat turn
func (s *Service) Complete(ctx context.Context, ownerID string, req *models.ChatRequest) (*models.ChatResponse, error) {
	contentReq, err := s.buildRequest(ownerID, req)
	if err != nil {
		return nil, err
	}

	resp, err := s.llm.GenerateContent(ctx, contentReq)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	return &models.ChatResponse{
		Reply:    resp.Text,
		Model:    resp.Model,
		Provider: string(resp.Provider),
	}, nil
}

// Stream runs a streaming chat turn, relaying text fragments through onChunk
func (s *Service) Stream(ctx context.Context, ownerID string, req *models.ChatRequest, onChunk llm.ChunkFunc) (*models.ChatResponse, error) {
	contentReq, err := s.buildRequest(ownerID, req)
	if err != nil {
		return nil, err
	}

	resp, err := s.llm.GenerateContentStream(ctx, contentReq, onChunk)
	if err != nil {
		return nil, fmt.Errorf("chat stream failed: %w", err)
	}

	return &models.ChatResponse{
		Reply:    resp.Text,
		Model:    resp.Model,
		Provider: string(resp.Provider),
	}, nil
}

// buildRequest converts the API payload into a provider request, resolving
// optional project context into the system instruction.
func (s *Service) buildRequest(ownerID string, req *models.ChatRequest) (*llm.ContentRequest, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("chat request requires at least one message")
	}

	messages := make([]interfaces.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, interfaces.Message{Role: m.Role, Content: m.Content})
	}

	instruction := assistantInstruction
	if req.ProjectID != "" {
		projectContext, err := s.buildProjectContext(ownerID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		instruction = instruction + "\n\n" + projectContext
	}

	return &llm.ContentRequest{
		Messages:          messages,
		Model:             req.Model,
		SystemInstruction: instruction,
	}, nil
}

// buildProjectContext renders a project's planning state as assistant context
func (s *Service) buildProjectContext(ownerID, projectID string) (string, error) {
	project, err := s.projects.GetProject(ownerID, projectID)
	if err != nil {
		return "", fmt.Errorf("failed to load project context: %w", err)
	}

	var b strings.Builder
	b.WriteString("Current project: ")
	b.WriteString(project.Title)
	b.WriteString("\n")
	if project.Description != "" {
		b.WriteString(project.Description)
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
		if primary != "" {
			b.WriteString(primary)
			b.WriteString("\n")
		}
		if secondary != "" {
			b.WriteString(secondary)
			b.WriteString("\n")
		}
	}

	notes, err := s.projects.ListNotes(ownerID, projectID)
	if err == nil && len(notes) > 0 {
		b.WriteString("\n## Notes\n")
		for _, n := range notes {
			if n.Title != "" {
				b.WriteString("- ")
				b.WriteString(n.Title)
				b.WriteString(": ")
			} else {
				b.WriteString("- ")
			}
			b.WriteString(n.Content)
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}
