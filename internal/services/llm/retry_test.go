package llm

import (
	"errors"
	"testing"
	"time"

	"github.com/seedplan/seedplan/internal/common"
)

func TestIsRateLimitError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"429 status", errors.New("Error 429: too many requests"), true},
		{"resource exhausted", errors.New("Status: RESOURCE_EXHAUSTED"), true},
		{"quota message", errors.New("quota exceeded for model"), true},
		{"anthropic rate_limit", errors.New("rate_limit_error: slow down"), true},
		{"unrelated error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimitError(tt.err); got != tt.expected {
				t.Errorf("IsRateLimitError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExtractRetryDelay(t *testing.T) {
	err := errors.New("Error 429, Message: quota exceeded. Please retry in 45.387061394s., Status: RESOURCE_EXHAUSTED")
	delay := ExtractRetryDelay(err)
	if delay < 45*time.Second || delay > 46*time.Second {
		t.Errorf("Expected ~45s delay, got %v", delay)
	}

	err = errors.New("retryDelay: 12s")
	delay = ExtractRetryDelay(err)
	if delay != 12*time.Second {
		t.Errorf("Expected 12s delay, got %v", delay)
	}

	if ExtractRetryDelay(errors.New("no delay here")) != 0 {
		t.Error("Expected zero delay for message without retry hint")
	}
	if ExtractRetryDelay(nil) != 0 {
		t.Error("Expected zero delay for nil error")
	}
}

func TestCalculateBackoff(t *testing.T) {
	config := NewDefaultRetryConfig()

	// First attempt with no API hint uses InitialBackoff
	if got := config.CalculateBackoff(0, 0); got != DefaultInitialBackoff {
		t.Errorf("Expected %v, got %v", DefaultInitialBackoff, got)
	}

	// API-provided delay becomes the base plus buffer
	if got := config.CalculateBackoff(0, 30*time.Second); got != 35*time.Second {
		t.Errorf("Expected 35s, got %v", got)
	}

	// Backoff is capped at MaxBackoff
	if got := config.CalculateBackoff(5, 0); got != DefaultMaxBackoff {
		t.Errorf("Expected cap at %v, got %v", DefaultMaxBackoff, got)
	}
}

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		model    string
		expected ProviderType
	}{
		{"claude-sonnet-4-20250514", ProviderClaude},
		{"gemini-2.5-flash", ProviderGemini},
		{"", ProviderGemini}, // falls back to configured default
	}

	factory := NewProviderFactory(
		&common.GeminiConfig{Model: "gemini-2.5-flash"},
		&common.ClaudeConfig{Model: "claude-sonnet-4-20250514"},
		&common.LLMConfig{DefaultProvider: common.LLMProviderGemini},
		nil,
		common.GetLogger(),
	)
	for _, tt := range tests {
		if got := factory.DetectProvider(tt.model); got != tt.expected {
			t.Errorf("DetectProvider(%q) = %v, want %v", tt.model, got, tt.expected)
		}
	}
}

func TestNormalizeModel(t *testing.T) {
	factory := NewProviderFactory(
		&common.GeminiConfig{},
		&common.ClaudeConfig{},
		&common.LLMConfig{DefaultProvider: common.LLMProviderGemini},
		nil,
		common.GetLogger(),
	)

	tests := []struct {
		model    string
		expected string
	}{
		{"claude/claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
		{"gemini/gemini-2.5-flash", "gemini-2.5-flash"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := factory.NormalizeModel(tt.model); got != tt.expected {
			t.Errorf("NormalizeModel(%q) = %q, want %q", tt.model, got, tt.expected)
		}
	}
}
