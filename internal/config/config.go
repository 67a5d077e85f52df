// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values
const (
	EnvModelsDir      = "RISK_MODELS_DIR"
	EnvImportancePath = "RISK_IMPORTANCE_PATH"
	EnvLogLevel       = "RISK_LOG_LEVEL"
	EnvLLMEnabled     = "RISK_LLM_ENABLED"
	EnvAPIKey         = "GEMINI_API_KEY"
	EnvPort           = "PORT"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values are filled by MergeWithDefaults.
type Config struct {
	ModelsDir      string `json:"models_dir,omitempty" yaml:"models_dir,omitempty"`           // Directory holding <model>_model.json artifacts
	ImportancePath string `json:"importance_path,omitempty" yaml:"importance_path,omitempty"` // Training metadata with feature_importance
	TopN           int    `json:"top_n,omitempty" yaml:"top_n,omitempty" validate:"gte=0,lte=10"`
	LogLevel       string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn warning error"`
	LogFormat      string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=text json"`

	LLM    LLMConfig    `json:"llm,omitempty" yaml:"llm,omitempty"`
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`
	Batch  BatchConfig  `json:"batch,omitempty" yaml:"batch,omitempty"`
}

// LLMConfig configures the optional explanation polishing
type LLMConfig struct {
	Enabled  bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Provider string        `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=gemini"`
	Model    string        `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey   string        `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Timeout  time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" validate:"gte=0"`
}

// ServerConfig configures the HTTP transport
type ServerConfig struct {
	Port         int           `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`
	ReadTimeout  time.Duration `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty" validate:"gte=0"`
	WriteTimeout time.Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty" validate:"gte=0"`
}

// BatchConfig configures the batch command
type BatchConfig struct {
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"gte=0,lte=256"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		ModelsDir: "models",
		TopN:      3,
		LogLevel:  "info",
		LogFormat: "text",
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash-lite",
			Timeout:  10 * time.Second,
		},
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Batch: BatchConfig{Concurrency: 8},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.LLM.Enabled && c.LLM.APIKey == "" {
		return fmt.Errorf("config error: 'llm.api_key' is required when llm is enabled (or set %s)", EnvAPIKey)
	}

	if c.ImportancePath != "" {
		if _, err := os.Stat(c.ImportancePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: importance file not found: %s", c.ImportancePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// Bool fields cannot distinguish unset from false and are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ModelsDir == "" {
		result.ModelsDir = defaults.ModelsDir
	}
	if result.ImportancePath == "" {
		result.ImportancePath = defaults.ImportancePath
	}
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.LLM.Provider == "" {
		result.LLM.Provider = defaults.LLM.Provider
	}
	if result.LLM.Model == "" {
		result.LLM.Model = defaults.LLM.Model
	}
	if result.LLM.APIKey == "" {
		result.LLM.APIKey = defaults.LLM.APIKey
	}
	if result.LLM.Timeout == 0 {
		result.LLM.Timeout = defaults.LLM.Timeout
	}

	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.ReadTimeout == 0 {
		result.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if result.Server.WriteTimeout == 0 {
		result.Server.WriteTimeout = defaults.Server.WriteTimeout
	}

	if result.Batch.Concurrency == 0 {
		result.Batch.Concurrency = defaults.Batch.Concurrency
	}

	return result
}

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvModelsDir); ok && v != "" {
		c.ModelsDir = v
	}
	if v, ok := lookup(EnvImportancePath); ok && v != "" {
		c.ImportancePath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.LLM.APIKey = v
	}
	if v, ok := lookup(EnvLLMEnabled); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvLLMEnabled, v, err)
		}
		c.LLM.Enabled = enabled
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	return nil
}

// Resolve loads path (if set), applies the environment, fills defaults and validates
func Resolve(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
