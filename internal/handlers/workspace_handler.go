package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/projects"
)

// WorkspaceHandler serves the per-project workspace records: notes, links,
// images, and milestones.
type WorkspaceHandler struct {
	service *projects.Service
	logger  arbor.ILogger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(service *projects.Service, logger arbor.ILogger) *WorkspaceHandler {
	return &WorkspaceHandler{
		service: service,
		logger:  logger,
	}
}

// ListNotesHandler handles GET /api/projects/{id}/notes
func (h *WorkspaceHandler) ListNotesHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	notes, err := h.service.ListNotes(userID, projectID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"notes": notes, "count": len(notes)})
}

// CreateNoteHandler handles POST /api/projects/{id}/notes
func (h *WorkspaceHandler) CreateNoteHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var note models.Note
	if !DecodeJSON(w, r, &note) {
		return
	}
	if note.Content == "" {
		WriteError(w, http.StatusBadRequest, "Note content is required")
		return
	}

	created, err := h.service.CreateNote(userID, projectID, &note)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateNoteHandler handles PUT /api/notes/{id}
func (h *WorkspaceHandler) UpdateNoteHandler(w http.ResponseWriter, r *http.Request, noteID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var note models.Note
	if !DecodeJSON(w, r, &note) {
		return
	}
	note.ID = noteID

	updated, err := h.service.UpdateNote(userID, &note)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

// DeleteNoteHandler handles DELETE /api/notes/{id}
func (h *WorkspaceHandler) DeleteNoteHandler(w http.ResponseWriter, r *http.Request, noteID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	if err := h.service.DeleteNote(userID, noteID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteSuccess(w, "Note deleted")
}

// ListLinksHandler handles GET /api/projects/{id}/links
func (h *WorkspaceHandler) ListLinksHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	links, err := h.service.ListLinks(userID, projectID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"links": links, "count": len(links)})
}

// CreateLinkHandler handles POST /api/projects/{id}/links
func (h *WorkspaceHandler) CreateLinkHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var link models.Link
	if !DecodeJSON(w, r, &link) {
		return
	}
	if link.URL == "" {
		WriteError(w, http.StatusBadRequest, "Link URL is required")
		return
	}

	created, err := h.service.CreateLink(userID, projectID, &link)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// DeleteLinkHandler handles DELETE /api/links/{id}
func (h *WorkspaceHandler) DeleteLinkHandler(w http.ResponseWriter, r *http.Request, linkID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	if err := h.service.DeleteLink(userID, linkID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteSuccess(w, "Link deleted")
}

// ListImagesHandler handles GET /api/projects/{id}/images
func (h *WorkspaceHandler) ListImagesHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	images, err := h.service.ListImages(userID, projectID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"images": images, "count": len(images)})
}

// CreateImageHandler handles POST /api/projects/{id}/images
func (h *WorkspaceHandler) CreateImageHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var image models.Image
	if !DecodeJSON(w, r, &image) {
		return
	}
	if image.URL == "" {
		WriteError(w, http.StatusBadRequest, "Image URL is required")
		return
	}

	created, err := h.service.CreateImage(userID, projectID, &image)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// DeleteImageHandler handles DELETE /api/images/{id}
func (h *WorkspaceHandler) DeleteImageHandler(w http.ResponseWriter, r *http.Request, imageID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	if err := h.service.DeleteImage(userID, imageID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteSuccess(w, "Image deleted")
}

// ListMilestonesHandler handles GET /api/projects/{id}/milestones
func (h *WorkspaceHandler) ListMilestonesHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	milestones, err := h.service.ListMilestones(userID, projectID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"milestones": milestones, "count": len(milestones)})
}

// CreateMilestoneHandler handles POST /api/projects/{id}/milestones
func (h *WorkspaceHandler) CreateMilestoneHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var milestone models.Milestone
	if !DecodeJSON(w, r, &milestone) {
		return
	}
	if milestone.Title == "" {
		WriteError(w, http.StatusBadRequest, "Milestone title is required")
		return
	}
	if !milestone.Step.IsValid() {
		WriteError(w, http.StatusBadRequest, "Milestone step must be between 1 and 5")
		return
	}

	created, err := h.service.CreateMilestone(userID, projectID, &milestone)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateMilestoneHandler handles PUT /api/milestones/{id}
func (h *WorkspaceHandler) UpdateMilestoneHandler(w http.ResponseWriter, r *http.Request, milestoneID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var milestone models.Milestone
	if !DecodeJSON(w, r, &milestone) {
		return
	}
	milestone.ID = milestoneID

	updated, err := h.service.UpdateMilestone(userID, &milestone)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

// DeleteMilestoneHandler handles DELETE /api/milestones/{id}
func (h *WorkspaceHandler) DeleteMilestoneHandler(w http.ResponseWriter, r *http.Request, milestoneID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	if err := h.service.DeleteMilestone(userID, milestoneID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteSuccess(w, "Milestone deleted")
}
