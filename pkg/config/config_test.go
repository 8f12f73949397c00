package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_GeminiConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("GEMINI_API_KEY", "test-key")
	os.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	defer func() {
		os.Unsetenv("GEMINI_API_KEY")
		os.Unsetenv("GEMINI_MODEL")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify Gemini config
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.Gemini.Model)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("GEMINI_API_KEY")
	os.Unsetenv("GEMINI_MODEL")
	os.Unsetenv("OPENAI_MODEL")
	os.Unsetenv("RXNORM_BASE_URL")
	os.Unsetenv("REDIS_HOST")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "https://rxnav.nlm.nih.gov/REST", cfg.RxNorm.BaseURL)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "gemini", cfg.Gemini.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.False(t, cfg.Redis.Configured())
	assert.False(t, cfg.OTEL.Enabled)
}

func TestPathsConfig_FilePaths(t *testing.T) {
	os.Setenv("DATA_DIR", "/var/lib/interactions")
	defer os.Unsetenv("DATA_DIR")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "/var/lib/interactions/drug_lookup.json", cfg.Paths.LookupTablePath())
	assert.Equal(t, "/var/lib/interactions/drug_cache.json", cfg.Paths.NameCachePath())
	assert.Equal(t, "/var/lib/interactions/known_interactions.json", cfg.Paths.InteractionTablePath())
}
