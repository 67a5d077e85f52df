package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"models_dir": "/srv/models",
		"top_n": 5,
		"log_level": "debug",
		"llm": {"enabled": true, "api_key": "k"},
		"batch": {"concurrency": 4}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/srv/models", cfg.ModelsDir)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
models_dir: ./models
importance_path: ./models/general_metadata.json
log_format: json
server:
  port: 9090
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./models", cfg.ModelsDir)
	assert.Equal(t, "./models/general_metadata.json", cfg.ImportancePath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yml", "models_dir: [unclosed")

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative top_n", func(c *Config) { c.TopN = -1 }, "TopN"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LogFormat"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "Port"},
		{"llm without key", func(c *Config) { c.LLM.Enabled = true }, "api_key"},
		{"llm with key", func(c *Config) { c.LLM.Enabled = true; c.LLM.APIKey = "k" }, ""},
		{"missing importance file", func(c *Config) { c.ImportancePath = "/nonexistent/meta.json" }, "importance file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{ModelsDir: "/custom", Server: ServerConfig{Port: 9000}}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "/custom", merged.ModelsDir)
	assert.Equal(t, 9000, merged.Server.Port)
	assert.Equal(t, 3, merged.TopN)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, 10*time.Second, merged.LLM.Timeout)
	assert.Equal(t, 8, merged.Batch.Concurrency)

	// receiver is unchanged
	assert.Equal(t, 0, cfg.TopN)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{TopN: 2}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, 2, merged.TopN)
	assert.Empty(t, merged.ModelsDir)
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()

	err := cfg.ApplyEnv(envFrom(map[string]string{
		EnvModelsDir:      "/env/models",
		EnvImportancePath: "/env/meta.json",
		EnvLogLevel:       "DEBUG",
		EnvAPIKey:         "secret",
		EnvLLMEnabled:     "true",
		EnvPort:           "7070",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/env/models", cfg.ModelsDir)
	assert.Equal(t, "/env/meta.json", cfg.ImportancePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	cfg := Defaults()
	assert.Error(t, cfg.ApplyEnv(envFrom(map[string]string{EnvLLMEnabled: "maybe"})))
	assert.Error(t, cfg.ApplyEnv(envFrom(map[string]string{EnvPort: "http"})))
}

func TestResolve_FileAndDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{"top_n": 4}`)

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.TopN)
	assert.NotEmpty(t, cfg.ModelsDir)
}

func TestLoadConfig_DurationsMatchAcrossFormats(t *testing.T) {
	jsonPath := writeFile(t, "config.json", `{
		"llm": {"provider": "gemini", "timeout": "10s"},
		"server": {"port": 9090, "read_timeout": "1m30s", "write_timeout": 5000000000}
	}`)
	yamlPath := writeFile(t, "config.yaml", `
llm:
  provider: gemini
  timeout: 10s
server:
  port: 9090
  read_timeout: 1m30s
  write_timeout: 5s
`)

	fromJSON, err := LoadConfig(jsonPath)
	require.NoError(t, err)
	fromYAML, err := LoadConfig(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, fromJSON.LLM.Timeout)
	assert.Equal(t, "gemini", fromJSON.LLM.Provider)
	assert.Equal(t, 90*time.Second, fromJSON.Server.ReadTimeout)
	assert.Equal(t, 5*time.Second, fromJSON.Server.WriteTimeout)
	assert.Equal(t, 9090, fromJSON.Server.Port)
	assert.Equal(t, fromYAML.LLM, fromJSON.LLM)
	assert.Equal(t, fromYAML.Server, fromJSON.Server)
}

func TestLoadConfig_InvalidDurationJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"server": {"read_timeout": "soon"}}`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid duration "soon"`)
}
