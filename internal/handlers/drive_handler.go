package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/drive"
	"github.com/seedplan/seedplan/internal/services/ingestion"
	"github.com/seedplan/seedplan/internal/services/projects"
)

// DriveHandler serves folder browsing and the two-phase preview/import
// ingestion flow plus the single-shot analysis variant.
type DriveHandler struct {
	driveService   *drive.Service
	pipeline       *ingestion.Pipeline
	projectService *projects.Service
	timeout        time.Duration
	logger         arbor.ILogger
}

// NewDriveHandler creates a new drive handler. The ingestion timeout bounds
// server-side work for preview/import/analyze runs.
func NewDriveHandler(
	driveService *drive.Service,
	pipeline *ingestion.Pipeline,
	projectService *projects.Service,
	config *common.IngestionConfig,
	logger arbor.ILogger,
) *DriveHandler {
	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &DriveHandler{
		driveService:   driveService,
		pipeline:       pipeline,
		projectService: projectService,
		timeout:        timeout,
		logger:         logger,
	}
}

// FoldersHandler handles GET /api/drive/folders?folder_id=
func (h *DriveHandler) FoldersHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	folderID := r.URL.Query().Get("folder_id")
	if folderID == "" {
		folderID = "root"
	}

	client, err := h.driveService.ClientFor(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	files, err := client.ListFolder(r.Context(), folderID)
	if err != nil {
		h.logger.Warn().Str("folder_id", folderID).Err(err).Msg("Folder listing failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"folder_id": folderID,
		"files":     files,
		"count":     len(files),
	})
}

// TreeHandler handles GET /api/drive/tree?folder_id= — the stat-only full
// tree with per-type file counts.
func (h *DriveHandler) TreeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	folderID := r.URL.Query().Get("folder_id")
	if folderID == "" {
		WriteError(w, http.StatusBadRequest, "folder_id is required")
		return
	}
	folderName := r.URL.Query().Get("folder_name")

	client, err := h.driveService.ClientFor(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	tree, err := client.ListTree(r.Context(), folderID, folderName)
	if err != nil {
		h.logger.Warn().Str("folder_id", folderID).Err(err).Msg("Tree listing failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tree)
}

type ingestRequest struct {
	FolderID   string `json:"folder_id"`
	FolderName string `json:"folder_name"`
}

// PreviewHandler handles POST /api/drive/preview — runs the structured
// pipeline and returns the ProjectStructure without persisting anything.
func (h *DriveHandler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req ingestRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.FolderID == "" {
		WriteError(w, http.StatusBadRequest, "folder_id is required")
		return
	}
	if req.FolderName == "" {
		req.FolderName = req.FolderID
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.pipeline.Run(ctx, userID, req.FolderID, req.FolderName, ingestion.StrategyStructured)
	if err != nil {
		h.logger.Warn().Str("folder_id", req.FolderID).Err(err).Msg("Ingestion preview failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

type importRequest struct {
	Structure  *models.ProjectStructure `json:"structure"`
	FolderName string                   `json:"folder_name"`
}

// ImportHandler handles POST /api/drive/import — materializes a previewed
// structure into a persisted project.
func (h *DriveHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req importRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Structure == nil {
		WriteError(w, http.StatusBadRequest, "structure is required")
		return
	}
	req.Structure.Normalize()

	project, err := h.projectService.Materialize(userID, req.Structure, req.FolderName)
	if err != nil {
		h.logger.Error().Err(err).Msg("Project materialization failed")
		WriteError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	WriteJSON(w, http.StatusCreated, project)
}

// AnalyzeHandler handles POST /api/drive/analyze — the single-shot variant:
// extract everything, multimodal summary, minimal project in one call.
func (h *DriveHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req ingestRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.FolderID == "" {
		WriteError(w, http.StatusBadRequest, "folder_id is required")
		return
	}
	if req.FolderName == "" {
		req.FolderName = req.FolderID
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.pipeline.Run(ctx, userID, req.FolderID, req.FolderName, ingestion.StrategySummary)
	if err != nil {
		h.logger.Warn().Str("folder_id", req.FolderID).Err(err).Msg("Single-shot analysis failed")
		WriteServiceError(w, err)
		return
	}

	project, err := h.projectService.MaterializeSummary(userID, result.Summary, req.FolderName)
	if err != nil {
		h.logger.Error().Err(err).Msg("Summary materialization failed")
		WriteError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"project":      project,
		"files_listed": result.FilesListed,
		"files_used":   result.FilesUsed,
	})
}
