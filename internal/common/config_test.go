package common

import (
	"context"
	"os"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	if config.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", config.Server.Port)
	}
	if config.Storage.Badger.Path == "" {
		t.Error("Expected default storage path")
	}
	if config.LLM.DefaultProvider != LLMProviderGemini {
		t.Errorf("Expected default provider gemini, got %s", config.LLM.DefaultProvider)
	}
	if config.Ingestion.MaxFiles != 50 {
		t.Errorf("Expected default max files 50, got %d", config.Ingestion.MaxFiles)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	os.Setenv("SEEDPLAN_SERVER_PORT", "9999")
	os.Setenv("SEEDPLAN_LOG_LEVEL", "debug")
	os.Setenv("SEEDPLAN_INGESTION_MAX_FILES", "10")
	defer func() {
		os.Unsetenv("SEEDPLAN_SERVER_PORT")
		os.Unsetenv("SEEDPLAN_LOG_LEVEL")
		os.Unsetenv("SEEDPLAN_INGESTION_MAX_FILES")
	}()

	config, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Server.Port != 9999 {
		t.Errorf("Expected port override 9999, got %d", config.Server.Port)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", config.Logging.Level)
	}
	if config.Ingestion.MaxFiles != 10 {
		t.Errorf("Expected max files 10, got %d", config.Ingestion.MaxFiles)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 3000, "0.0.0.0")
	if config.Server.Port != 3000 {
		t.Errorf("Expected port 3000, got %d", config.Server.Port)
	}
	if config.Server.Host != "0.0.0.0" {
		t.Errorf("Expected host 0.0.0.0, got %s", config.Server.Host)
	}

	// Zero values leave config untouched
	ApplyFlagOverrides(config, 0, "")
	if config.Server.Port != 3000 || config.Server.Host != "0.0.0.0" {
		t.Error("Zero flag values must not override config")
	}
}

func TestResolveAPIKeyPrecedence(t *testing.T) {
	ctx := context.Background()

	// Environment wins over config fallback
	os.Setenv("SEEDPLAN_GEMINI_API_KEY", "env-key")
	defer os.Unsetenv("SEEDPLAN_GEMINI_API_KEY")

	key, err := ResolveAPIKey(ctx, nil, "gemini_api_key", "config-key")
	if err != nil {
		t.Fatalf("Failed to resolve key: %v", err)
	}
	if key != "env-key" {
		t.Errorf("Expected env-key, got %s", key)
	}

	// Config fallback used when nothing else resolves
	os.Unsetenv("SEEDPLAN_CLAUDE_API_KEY")
	os.Unsetenv("ANTHROPIC_API_KEY")
	key, err = ResolveAPIKey(ctx, nil, "anthropic_api_key", "config-key")
	if err != nil {
		t.Fatalf("Failed to resolve key: %v", err)
	}
	if key != "config-key" {
		t.Errorf("Expected config-key, got %s", key)
	}

	// Missing everywhere is an error
	if _, err := ResolveAPIKey(ctx, nil, "missing_key", ""); err == nil {
		t.Error("Expected error for unresolvable key")
	}
}

func TestIsProduction(t *testing.T) {
	config := NewDefaultConfig()
	if config.IsProduction() {
		t.Error("Default environment should not be production")
	}

	config.Environment = "production"
	if !config.IsProduction() {
		t.Error("Expected production environment")
	}

	config.Environment = "PROD"
	if !config.IsProduction() {
		t.Error("Expected prod alias to count as production")
	}
}
