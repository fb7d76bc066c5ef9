package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 15, cfg.Batch.MaxFiles)
	assert.Equal(t, int64(10485760), cfg.Batch.MaxFileSize)
	assert.Equal(t, 2, cfg.Worker.Concurrency)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("MAX_BATCH_FILES", "5")
	t.Setenv("WORKER_CONCURRENCY", "4")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 5, cfg.Batch.MaxFiles)
	assert.Equal(t, 4, cfg.Worker.Concurrency)
}

func TestValidateMissingAPIKey(t *testing.T) {
	cfg := &Config{
		Batch:  BatchConfig{MaxFiles: 15},
		Worker: WorkerConfig{Concurrency: 2},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestValidateOK(t *testing.T) {
	cfg := &Config{
		Gemini: GeminiConfig{APIKey: "key"},
		Batch:  BatchConfig{MaxFiles: 15},
		Worker: WorkerConfig{Concurrency: 2},
	}

	assert.NoError(t, cfg.Validate())
}
