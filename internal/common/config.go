package common

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/seedplan/seedplan/internal/interfaces"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Drive       DriveConfig     `toml:"drive"`
	Ingestion   IngestionConfig `toml:"ingestion"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Claude      ClaudeConfig    `toml:"claude"`
	LLM         LLMConfig       `toml:"llm"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output"`                                       // "stdout", "file"
	Dir    string   `toml:"dir"`                                          // Log file directory (default: "./logs")
}

// DriveConfig contains Google Drive API client configuration
type DriveConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second" validate:"gt=0"` // Sustained request rate (Google allows 10/sec/user)
	Burst             int     `toml:"burst" validate:"gt=0"`               // Token bucket burst size
	PageSize          int64   `toml:"page_size" validate:"gt=0,lte=1000"`  // Files per list page
	MaxPages          int     `toml:"max_pages" validate:"gt=0"`           // Total page guard across a folder crawl
	MaxDepth          int     `toml:"max_depth" validate:"gt=0"`           // Folder recursion depth guard
}

// IngestionConfig contains folder ingestion pipeline configuration
type IngestionConfig struct {
	MaxFiles           int      `toml:"max_files" validate:"gt=0"`            // Cap on files extracted per run (default: 50)
	MaxCharsPerFile    int      `toml:"max_chars_per_file" validate:"gt=0"`   // Per-document content cap in the structuring prompt
	ExtractConcurrency int      `toml:"extract_concurrency" validate:"gt=0"`  // Bounded fan-out for content downloads
	Timeout            string   `toml:"timeout" validate:"required"`          // Server-side budget for a preview/import run
	Keywords           []string `toml:"keywords"`                             // Business keyword vocabulary override (empty = built-in list)
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey       string  `toml:"api_key"`       // Google Gemini API key
	Model        string  `toml:"model"`         // Model for structuring and chat (default: "gemini-2.5-flash")
	SummaryModel string  `toml:"summary_model"` // Larger-context multimodal model for single-shot folder summaries
	Temperature  float32 `toml:"temperature"`   // Completion temperature (default: 0.4)
	Timeout      string  `toml:"timeout"`       // Operation timeout as duration string (default: "5m")
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for AI operations (default: "claude-sonnet-4-20250514")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 8192)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.4)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "5m")
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains unified configuration for all AI providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=gemini claude"` // Default provider (default: "gemini")
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here; only user-facing settings
// should normally be exposed in seedplan.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/seedplan",
				ResetOnStartup: false,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
			Dir:    "./logs",
		},
		Drive: DriveConfig{
			RequestsPerSecond: 8.0,
			Burst:             10,
			PageSize:          1000,
			MaxPages:          500,
			MaxDepth:          20,
		},
		Ingestion: IngestionConfig{
			MaxFiles:           50,
			MaxCharsPerFile:    4000,
			ExtractConcurrency: 4,
			Timeout:            "90s",
		},
		Gemini: GeminiConfig{
			Model:        "gemini-2.5-flash",
			SummaryModel: "gemini-2.5-pro",
			Temperature:  0.4,
			Timeout:      "5m",
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   8192,
			Temperature: 0.4,
			Timeout:     "5m",
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
	}
}

// LoadFromFiles loads configuration with precedence:
// defaults -> file1 -> file2 -> ... -> environment variables.
// Later config files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against struct-level constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies SEEDPLAN_* environment variable overrides
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SEEDPLAN_ENVIRONMENT"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("SEEDPLAN_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SEEDPLAN_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if path := os.Getenv("SEEDPLAN_STORAGE_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
	if level := os.Getenv("SEEDPLAN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("SEEDPLAN_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Gemini configuration
	if apiKey := os.Getenv("SEEDPLAN_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("SEEDPLAN_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if model := os.Getenv("SEEDPLAN_GEMINI_SUMMARY_MODEL"); model != "" {
		config.Gemini.SummaryModel = model
	}

	// Claude configuration
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if apiKey := os.Getenv("SEEDPLAN_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey // SEEDPLAN_ prefix takes priority
	}
	if model := os.Getenv("SEEDPLAN_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}

	// LLM provider configuration
	if provider := os.Getenv("SEEDPLAN_LLM_DEFAULT_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}

	// Ingestion configuration
	if maxFiles := os.Getenv("SEEDPLAN_INGESTION_MAX_FILES"); maxFiles != "" {
		if mf, err := strconv.Atoi(maxFiles); err == nil && mf > 0 {
			config.Ingestion.MaxFiles = mf
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
// Command-line flags have highest priority.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ResolveAPIKey resolves an API key by name with environment variable priority.
// Resolution order: environment variables -> KV store -> config fallback -> error.
func ResolveAPIKey(ctx context.Context, kvStorage interfaces.KeyValueStorage, name string, configFallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"gemini_api_key":    {"SEEDPLAN_GEMINI_API_KEY"},
		"anthropic_api_key": {"SEEDPLAN_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if kvStorage != nil {
		apiKey, err := kvStorage.Get(ctx, name)
		if err == nil && apiKey != "" {
			return apiKey, nil
		}
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment, KV store, or config", name)
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
