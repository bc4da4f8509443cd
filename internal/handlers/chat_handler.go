package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/models"
	"github.com/seedplan/seedplan/internal/services/chat"
)

// ChatHandler serves the assistant endpoint, streaming over SSE when the
// request asks for it.
type ChatHandler struct {
	service *chat.Service
	logger  arbor.ILogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service *chat.Service, logger arbor.ILogger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

// ChatHandler handles POST /api/chat
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req models.ChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Messages) == 0 {
		WriteError(w, http.StatusBadRequest, "At least one message is required")
		return
	}

	if req.Stream {
		h.stream(w, r, userID, &req)
		return
	}

	resp, err := h.service.Complete(r.Context(), userID, &req)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Chat completion failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

type streamChunk struct {
	Text string `json:"text,omitempty"`
	Done bool   `json:"done,omitempty"`
	Err  string `json:"error,omitempty"`
}

// stream relays assistant output as server-sent events, one data frame per
// text fragment followed by a terminal done frame.
func (h *ChatHandler) stream(w http.ResponseWriter, r *http.Request, userID string, req *models.ChatRequest) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	onChunk := func(text string) error {
		return writeSSE(w, flusher, streamChunk{Text: text})
	}

	if _, err := h.service.Stream(r.Context(), userID, req, onChunk); err != nil {
		h.logger.Warn().Err(err).Msg("Chat stream failed")
		// Headers are already out, so the failure travels in-band.
		writeSSE(w, flusher, streamChunk{Err: "Assistant stream failed", Done: true})
		return
	}

	writeSSE(w, flusher, streamChunk{Done: true})
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, chunk streamChunk) error {
	payload, err := json.Marshal(chunk)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
