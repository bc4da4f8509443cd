package projects

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
)

// Service owns project lifecycle and the per-project workspace records
// (notes, links, images, milestones). All operations enforce ownership:
// a record belonging to another user is reported as not found.
type Service struct {
	storage interfaces.StorageManager
	logger  arbor.ILogger
}

// NewService creates a new project service
func NewService(storage interfaces.StorageManager, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// joinFields concatenates two sub-fields with a blank line, tolerating
// either being empty.
func joinFields(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "\n\n" + b
}

// Materialize persists a structured ingestion result as a new Project plus
// derived notes and links. The project is seeded across all five steps, so
// it starts at the final step with initial progress. Note/link failures are
// logged and skipped; they never roll back the project.
func (s *Service) Materialize(ownerID string, structure *models.ProjectStructure, folderName string) (*models.Project, error) {
	title := structure.Title
	if title == "" {
		title = folderName
	}

	project := &models.Project{
		ID:          common.NewProjectID(),
		OwnerID:     ownerID,
		Title:       title,
		Description: structure.Description,
		Category:    structure.Category,
		Tags:        structure.Tags,

		ConceptSummary:    joinFields(structure.Concept.Idea, structure.Concept.Solution),
		ConceptValue:      structure.Concept.UniqueValue,
		MarketProblem:     joinFields(structure.Market.Problem, structure.Market.TargetAudience),
		MarketCompetition: structure.Market.Competition,
		ModelRevenue:      joinFields(structure.Model.RevenueStreams, structure.Model.Pricing),
		ModelCosts:        structure.Model.Costs,
		ActionPlan:        joinFields(structure.Action.NextSteps, structure.Action.Timeline),
		ActionRisks:       structure.Action.Risks,
		ResourcesTeam:     joinFields(structure.ResourcesPlan.Team, structure.ResourcesPlan.Budget),
		ResourcesTools:    structure.ResourcesPlan.Tools,

		Status:       models.ProjectStatusActive,
		Progress:     25,
		CurrentStep:  models.StepResources,
		Source:       models.ProjectSourceDriveImport,
		SourceFolder: folderName,
	}

	if err := s.storage.ProjectStorage().SaveProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	for _, en := range structure.ExtractedNotes {
		if en.Title == "" && en.Content == "" {
			continue
		}
		note := &models.Note{
			ID:        common.NewNoteID(),
			ProjectID: project.ID,
			OwnerID:   ownerID,
			Title:     en.Title,
			Content:   en.Content,
			Source:    models.NoteSourceImport,
		}
		if err := s.storage.NoteStorage().SaveNote(note); err != nil {
			s.logger.Warn().Str("project_id", project.ID).Str("title", en.Title).Err(err).Msg("Failed to create imported note")
		}
	}

	for _, el := range structure.ExtractedLinks {
		if el.URL == "" {
			continue
		}
		link := &models.Link{
			ID:          common.NewLinkID(),
			ProjectID:   project.ID,
			OwnerID:     ownerID,
			URL:         el.URL,
			Title:       el.Title,
			Description: el.Description,
			Source:      models.NoteSourceImport,
		}
		if err := s.storage.LinkStorage().SaveLink(link); err != nil {
			s.logger.Warn().Str("project_id", project.ID).Str("url", el.URL).Err(err).Msg("Failed to create imported link")
		}
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Str("folder", folderName).
		Int("notes", len(structure.ExtractedNotes)).
		Int("links", len(structure.ExtractedLinks)).
		Msg("Materialized project from folder ingestion")

	return project, nil
}

// MaterializeSummary persists a single-shot analysis result as a minimal
// project carrying only the free-text description.
func (s *Service) MaterializeSummary(ownerID, summary, folderName string) (*models.Project, error) {
	project := &models.Project{
		ID:           common.NewProjectID(),
		OwnerID:      ownerID,
		Title:        folderName,
		Description:  summary,
		Status:       models.ProjectStatusActive,
		CurrentStep:  models.StepConcept,
		Source:       models.ProjectSourceDriveAnalysis,
		SourceFolder: folderName,
	}

	if err := s.storage.ProjectStorage().SaveProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// CreateProject creates a manually authored project
func (s *Service) CreateProject(ownerID string, project *models.Project) (*models.Project, error) {
	project.ID = common.NewProjectID()
	project.OwnerID = ownerID
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}
	if project.CurrentStep == 0 {
		project.CurrentStep = models.StepConcept
	}
	if project.Source == "" {
		project.Source = models.ProjectSourceManual
	}

	if err := s.storage.ProjectStorage().SaveProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject returns a project owned by the given user
func (s *Service) GetProject(ownerID, id string) (*models.Project, error) {
	project, err := s.storage.ProjectStorage().GetProject(id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, interfaces.ErrNotFound
	}
	return project, nil
}

// ListProjects returns the user's projects with optional filtering
func (s *Service) ListProjects(ownerID string, opts *interfaces.ListOptions) ([]*models.Project, error) {
	return s.storage.ProjectStorage().ListProjects(ownerID, opts)
}

// UpdateProject applies caller-editable fields to an existing project
func (s *Service) UpdateProject(ownerID string, updated *models.Project) (*models.Project, error) {
	existing, err := s.GetProject(ownerID, updated.ID)
	if err != nil {
		return nil, err
	}

	// Identity and provenance are immutable
	updated.OwnerID = existing.OwnerID
	updated.CreatedAt = existing.CreatedAt
	updated.Source = existing.Source
	updated.SourceFolder = existing.SourceFolder

	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if !updated.CurrentStep.IsValid() {
		updated.CurrentStep = existing.CurrentStep
	}

	if err := s.storage.ProjectStorage().SaveProject(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProject removes a project and all its workspace records
func (s *Service) DeleteProject(ownerID, id string) error {
	if _, err := s.GetProject(ownerID, id); err != nil {
		return err
	}

	// Cascade deletes are best-effort; the project record goes last
	if err := s.storage.NoteStorage().DeleteNotesByProject(id); err != nil {
		s.logger.Warn().Str("project_id", id).Err(err).Msg("Failed to delete project notes")
	}
	if err := s.storage.LinkStorage().DeleteLinksByProject(id); err != nil {
		s.logger.Warn().Str("project_id", id).Err(err).Msg("Failed to delete project links")
	}
	if err := s.storage.ImageStorage().DeleteImagesByProject(id); err != nil {
		s.logger.Warn().Str("project_id", id).Err(err).Msg("Failed to delete project images")
	}
	if err := s.storage.MilestoneStorage().DeleteMilestonesByProject(id); err != nil {
		s.logger.Warn().Str("project_id", id).Err(err).Msg("Failed to delete project milestones")
	}

	return s.storage.ProjectStorage().DeleteProject(id)
}

// GetStats returns aggregate statistics for the user's projects
func (s *Service) GetStats(ownerID string) (*models.ProjectStats, error) {
	return s.storage.ProjectStorage().GetStats(ownerID)
}

// CreateNote adds a note to a project owned by the user
func (s *Service) CreateNote(ownerID, projectID string, note *models.Note) (*models.Note, error) {
	if _, err := s.GetProject(ownerID, projectID); err != nil {
		return nil, err
	}

	note.ID = common.NewNoteID()
	note.ProjectID = projectID
	note.OwnerID = ownerID
	if note.Source == "" {
		note.Source = models.NoteSourceManual
	}

	if err := s.storage.NoteStorage().SaveNote(note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns a project's notes
func (s *Service) ListNotes(ownerID, projectID string) ([]*models.Note, error) {
	if _, err := s.GetProject(ownerID, projectID); err != nil {
		return nil, err
	}
	return s.storage.NoteStorage().ListNotes(projectID)
}

// UpdateNote applies changes to an existing note
func (s *Service) UpdateNote(ownerID string, updated *models.Note) (*models.Note, error) {
	existing, err := s.storage.NoteStorage().GetNote(updated.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, interfaces.ErrNotFound
	}

	updated.ProjectID = existing.ProjectID
	updated.OwnerID = existing.OwnerID
	updated.CreatedAt = existing.CreatedAt
	if updated.Source == "" {
		updated.Source = existing.Source
	}

	if err := s.storage.NoteStorage().SaveNote(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteNote removes a note owned by the user
func (s *Service) DeleteNote(ownerID, id string) error {
	existing, err := s.storage.NoteStorage().GetNote(id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return interfaces.ErrNotFound
	}
	return s.storage.NoteStorage().DeleteNote(id)
}

// CreateLink adds a link to a project owned by the user
func (s *Service) CreateLink(ownerID, projectID string, link *models.Link) (*models.Link, error) {
	if _, err := s.GetProject(ownerID, projectID); err != nil {
		return nil, err
	}

	link.ID = common.NewLinkID()
	link.ProjectID = projectID
	link.OwnerID = ownerID
	if link.Source == "" {
		link.Source = models.NoteSourceManual
	}

	if err := s.storage.LinkStorage().SaveLink(link); err != nil {
		return nil, err
	}
	return link, nil
}

// ListLinks returns a project's links
func (s *Service) ListLinks(ownerID, projectID string) ([]*models.Link, error) {
	if _, err := s.GetProject(ownerID, projectID); err != nil {
		return nil, err
	}
	return s.storage.LinkStorage().ListLinks(projectID)
}

// DeleteLink removes a link owned by the user
func (s *Service) DeleteLink(ownerID, id string) error {
	existing, err := s.storage.LinkStorage().GetLink(id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return interfaces.ErrNotFound
	}
	return s.storage.LinkStorage().DeleteLink(id)
}

// CreateImage records image metadata for a project owned by the user.
// Blob storage is external; only the URL/key is recorded.
func (s *Service) CreateImage(ownerID, projectID string, image *models.Image) (*models.Image, error) {
	if _, err := s.GetProject(ownerID, projectID); err != nil {
		return nil, err
	}

	image.ID = common.NewImageID()
	image.ProjectID = projectID
	image.OwnerID = ownerID

	if err := s.storage.ImageStorage().SaveImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

// ListImages returns a project's image records
func (s *Service) ListImages(ownerID, projectID string) ([]*models.Image, error) {
	if _, err := s.GetProject(ownerID, projectID); err != nil {
		return nil, err
	}
	return s.storage.ImageStorage().ListImages(projectID)
}

// DeleteImage removes an image record owned by the user
func (s *Service) DeleteImage(ownerID, id string) error {
	existing, err := s.storage.ImageStorage().GetImage(id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return interfaces.ErrNotFound
	}
	return s.storage.ImageStorage().DeleteImage(id)
}

// CreateMilestone adds a milestone to a project owned by the user
func (s *Service) CreateMilestone(ownerID, projectID string, milestone *models.Milestone) (*models.Milestone, error) {
	if _, err := s.GetProject(ownerID, projectID); err != nil {
		return nil, err
	}

	milestone.ID = common.NewMilestoneID()
	milestone.ProjectID = projectID
	milestone.OwnerID = ownerID

	if err := s.storage.MilestoneStorage().SaveMilestone(milestone); err != nil {
		return nil, err
	}

	s.recomputeProgress(ownerID, projectID)
	return milestone, nil
}

// ListMilestones returns a project's milestones
func (s *Service) ListMilestones(ownerID, projectID string) ([]*models.Milestone, error) {
	if _, err := s.GetProject(ownerID, projectID); err != nil {
		return nil, err
	}
	return s.storage.MilestoneStorage().ListMilestones(projectID)
}

// UpdateMilestone applies changes to an existing milestone
func (s *Service) UpdateMilestone(ownerID string, updated *models.Milestone) (*models.Milestone, error) {
	existing, err := s.storage.MilestoneStorage().GetMilestone(updated.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, interfaces.ErrNotFound
	}

	updated.ProjectID = existing.ProjectID
	updated.OwnerID = existing.OwnerID
	updated.CreatedAt = existing.CreatedAt
	if !updated.Step.IsValid() {
		updated.Step = existing.Step
	}

	if err := s.storage.MilestoneStorage().SaveMilestone(updated); err != nil {
		return nil, err
	}

	s.recomputeProgress(ownerID, updated.ProjectID)
	return updated, nil
}

// DeleteMilestone removes a milestone owned by the user
func (s *Service) DeleteMilestone(ownerID, id string) error {
	existing, err := s.storage.MilestoneStorage().GetMilestone(id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return interfaces.ErrNotFound
	}
	if err := s.storage.MilestoneStorage().DeleteMilestone(id); err != nil {
		return err
	}

	s.recomputeProgress(ownerID, existing.ProjectID)
	return nil
}

// recomputeProgress derives project progress from milestone completion.
// Projects without milestones keep their existing progress value.
func (s *Service) recomputeProgress(ownerID, projectID string) {
	milestones, err := s.storage.MilestoneStorage().ListMilestones(projectID)
	if err != nil || len(milestones) == 0 {
		return
	}

	done := 0
	for _, m := range milestones {
		if m.Done {
			done++
		}
	}

	project, err := s.GetProject(ownerID, projectID)
	if err != nil {
		return
	}
	project.Progress = done * 100 / len(milestones)

	if err := s.storage.ProjectStorage().SaveProject(project); err != nil {
		s.logger.Warn().Str("project_id", projectID).Err(err).Msg("Failed to update project progress")
	}
}
