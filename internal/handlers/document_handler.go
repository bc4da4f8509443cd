package handlers

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/services/docgen"
)

// DocumentHandler serves business-plan document generation
type DocumentHandler struct {
	service *docgen.Service
	logger  arbor.ILogger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(service *docgen.Service, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger,
	}
}

// GenerateHandler handles POST /api/projects/{id}/document. The default
// response is the markdown document as JSON; format=pdf returns the rendered
// PDF bytes as a download.
func (h *DocumentHandler) GenerateHandler(w http.ResponseWriter, r *http.Request, projectID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "markdown"
	}
	if format != "markdown" && format != "pdf" {
		WriteError(w, http.StatusBadRequest, "Format must be markdown or pdf")
		return
	}

	doc, err := h.service.Compose(r.Context(), userID, projectID)
	if err != nil {
		h.logger.Warn().Str("project_id", projectID).Err(err).Msg("Document composition failed")
		WriteServiceError(w, err)
		return
	}

	if format == "pdf" {
		pdfBytes, err := h.service.RenderPDF(doc)
		if err != nil {
			h.logger.Error().Str("project_id", projectID).Err(err).Msg("PDF rendering failed")
			WriteError(w, http.StatusInternalServerError, "Failed to render PDF")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Title+".pdf"))
		w.WriteHeader(http.StatusOK)
		w.Write(pdfBytes)
		return
	}

	WriteJSON(w, http.StatusOK, doc)
}
