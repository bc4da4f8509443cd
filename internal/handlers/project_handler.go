package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/projects"
)

// ProjectHandler serves project CRUD endpoints
type ProjectHandler struct {
	service *projects.Service
	logger  arbor.ILogger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service *projects.Service, logger arbor.ILogger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  logger,
	}
}

// ListHandler handles GET /api/projects
func (h *ProjectHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	opts := &interfaces.ListOptions{
		Status: r.URL.Query().Get("status"),
		Source: r.URL.Query().Get("source"),
	}

	list, err := h.service.ListProjects(userID, opts)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list projects")
		WriteError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"projects": list,
		"count":    len(list),
	})
}

// CreateHandler handles POST /api/projects
func (h *ProjectHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var project models.Project
	if !DecodeJSON(w, r, &project) {
		return
	}
	if project.Title == "" {
		WriteError(w, http.StatusBadRequest, "Project title is required")
		return
	}

	created, err := h.service.CreateProject(userID, &project)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create project")
		WriteError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

// GetHandler handles GET /api/projects/{id}
func (h *ProjectHandler) GetHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	project, err := h.service.GetProject(userID, projectID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, project)
}

// UpdateHandler handles PUT /api/projects/{id}
func (h *ProjectHandler) UpdateHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var project models.Project
	if !DecodeJSON(w, r, &project) {
		return
	}
	project.ID = projectID

	updated, err := h.service.UpdateProject(userID, &project)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// DeleteHandler handles DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	if err := h.service.DeleteProject(userID, projectID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, "Project deleted")
}

// StatsHandler handles GET /api/projects/stats
func (h *ProjectHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	stats, err := h.service.GetStats(userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get project stats")
		WriteError(w, http.StatusInternalServerError, "Failed to get project stats")
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}
