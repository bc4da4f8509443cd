package models

// ChatMessage is one turn in an assistant conversation
type ChatMessage struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// ChatRequest is the payload for the chat assistant endpoint
type ChatRequest struct {
	ProjectID string        `json:"project_id,omitempty"` // optional project context
	Messages  []ChatMessage `json:"messages"`
	Model     string        `json:"model,omitempty"` // optional model override
	Stream    bool          `json:"stream"`
}

// ChatResponse is the non-streaming chat assistant reply
type ChatResponse struct {
	Reply    string `json:"reply"`
	Model    string `json:"model"`
	Provider string `json:"provider"`
}
