package handlers

import (
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/analysis"
)

// AnalysisHandler serves per-step project analysis
type AnalysisHandler struct {
	service *analysis.Service
	logger  arbor.ILogger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *analysis.Service, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		logger:  logger,
	}
}

type analysisRequest struct {
	Step string `json:"step"` // "1".."5" or "all"
}

// AnalyzeHandler handles POST /api/projects/{id}/analysis
func (h *AnalysisHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req analysisRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	var step models.FrameworkStep
	switch req.Step {
	case "", "all":
		step = 0
	default:
		n, err := strconv.Atoi(req.Step)
		if err != nil || !models.FrameworkStep(n).IsValid() {
			WriteError(w, http.StatusBadRequest, "Step must be 1-5 or \"all\"")
			return
		}
		step = models.FrameworkStep(n)
	}

	result, err := h.service.Analyze(r.Context(), userID, projectID, step)
	if err != nil {
		h.logger.Warn().Str("project_id", projectID).Err(err).Msg("Analysis failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
