package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/seedplan/seedplan/internal/interfaces"
)

// convertMessagesToGemini converts provider-agnostic messages to Gemini contents.
// System messages are extracted and returned separately.
func convertMessagesToGemini(messages []interfaces.Message) ([]*genai.Content, string, error) {
	if len(messages) == 0 {
		return nil, "", fmt.Errorf("messages cannot be empty")
	}

	// Check that at least one message has role "user"
	hasUserMessage := false
	for _, msg := range messages {
		if msg.Role == "user" {
			hasUserMessage = true
			break
		}
	}
	if !hasUserMessage {
		return nil, "", fmt.Errorf("at least one message must have role 'user'")
	}

	contents := make([]*genai.Content, 0, len(messages))
	var systemText string
	for _, msg := range messages {
		// Handle system messages separately
		if msg.Role == "system" {
			if systemText == "" {
				systemText = msg.Content
			}
			continue
		}

		var geminiRole string
		switch msg.Role {
		case "assistant":
			geminiRole = genai.RoleModel
		case "user":
			geminiRole = genai.RoleUser
		default:
			geminiRole = genai.RoleUser // Default to user for unknown roles
		}

		contents = append(contents, &genai.Content{
			Role:  geminiRole,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}

	return contents, systemText, nil
}

// appendGeminiAttachments adds inline image parts to the last user content
func appendGeminiAttachments(contents []*genai.Content, attachments []Attachment) {
	if len(attachments) == 0 {
		return
	}
	for i := len(contents) - 1; i >= 0; i-- {
		if contents[i].Role == genai.RoleUser {
			for _, att := range attachments {
				contents[i].Parts = append(contents[i].Parts, genai.NewPartFromBytes(att.Data, att.MimeType))
			}
			return
		}
	}
}

// buildGeminiConfig assembles the generation config shared by streaming and
// non-streaming calls.
func (f *ProviderFactory) buildGeminiConfig(request *ContentRequest, systemText string) *genai.GenerateContentConfig {
	temp := request.Temperature
	if temp <= 0 {
		temp = f.geminiConfig.Temperature
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temp),
	}

	if request.SystemInstruction != "" {
		systemText = request.SystemInstruction
	}
	if systemText != "" {
		config.SystemInstruction = genai.NewContentFromText(systemText, genai.RoleUser)
	}

	return config
}

// generateWithGemini generates content using the Gemini API
func (f *ProviderFactory) generateWithGemini(ctx context.Context, request *ContentRequest, model string) (*ContentResponse, error) {
	client, err := f.GetGeminiClient(ctx)
	if err != nil {
		return nil, err
	}

	if model == "" {
		model = f.geminiConfig.Model
	}

	geminiContents, systemText, err := convertMessagesToGemini(request.Messages)
	if err != nil {
		return nil, fmt.Errorf("failed to convert messages: %w", err)
	}
	appendGeminiAttachments(geminiContents, request.Attachments)

	config := f.buildGeminiConfig(request, systemText)

	// Make API call with retry
	var resp *genai.GenerateContentResponse
	var apiErr error
	retryConfig := NewDefaultRetryConfig()

	for attempt := 0; attempt <= retryConfig.MaxRetries; attempt++ {
		resp, apiErr = client.Models.GenerateContent(ctx, model, geminiContents, config)
		if apiErr == nil {
			break
		}

		if attempt == retryConfig.MaxRetries {
			break
		}

		var backoff time.Duration
		if IsRateLimitError(apiErr) {
			apiDelay := ExtractRetryDelay(apiErr)
			backoff = retryConfig.CalculateBackoff(attempt, apiDelay)
		} else {
			backoff = time.Duration(attempt+1) * 2 * time.Second
		}

		f.logger.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(apiErr).
			Msg("Retrying Gemini API call")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if apiErr != nil {
		return nil, fmt.Errorf("Gemini API call failed after %d retries: %w", retryConfig.MaxRetries, apiErr)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini API")
	}

	responseText := resp.Text()
	if responseText == "" {
		return nil, fmt.Errorf("empty text in Gemini response")
	}

	return &ContentResponse{
		Text:     responseText,
		Provider: ProviderGemini,
		Model:    model,
	}, nil
}

// streamWithGemini streams content from the Gemini API, invoking onChunk per
// text fragment. Streaming calls are not retried; a partial stream cannot be
// resumed transparently.
func (f *ProviderFactory) streamWithGemini(ctx context.Context, request *ContentRequest, model string, onChunk ChunkFunc) (*ContentResponse, error) {
	client, err := f.GetGeminiClient(ctx)
	if err != nil {
		return nil, err
	}

	if model == "" {
		model = f.geminiConfig.Model
	}

	geminiContents, systemText, err := convertMessagesToGemini(request.Messages)
	if err != nil {
		return nil, fmt.Errorf("failed to convert messages: %w", err)
	}
	appendGeminiAttachments(geminiContents, request.Attachments)

	config := f.buildGeminiConfig(request, systemText)

	var full string
	for chunk, chunkErr := range client.Models.GenerateContentStream(ctx, model, geminiContents, config) {
		if chunkErr != nil {
			return nil, fmt.Errorf("Gemini stream failed: %w", chunkErr)
		}
		text := chunk.Text()
		if text == "" {
			continue
		}
		full += text
		if onChunk != nil {
			if err := onChunk(text); err != nil {
				return nil, err
			}
		}
	}

	if full == "" {
		return nil, fmt.Errorf("empty response from Gemini stream")
	}

	return &ContentResponse{
		Text:     full,
		Provider: ProviderGemini,
		Model:    model,
	}, nil
}
