package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/helpmatch/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load from seeing a developer's config file.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	assert.Equal(t, 3, cfg.Matching.TopK)
	assert.Equal(t, matching.DefaultScoringWeights(), cfg.Matching.Weights)
	assert.Equal(t, 0.3, cfg.Matching.Location.PartialScore)
	assert.Equal(t, "helpmatch.db", cfg.Database.Path)
}

func TestLoad_DiscoveredFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "helpmatch.yaml", `
matching:
  top_k: 5
  weights:
    text: 0.6
    skill: 0.1
    language: 0.15
    location: 0.1
    rating: 0.05
embedding:
  model: nomic-embed-text
  dimensions: 768
  timeout: 10s
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Matching.TopK)
	assert.Equal(t, 0.6, cfg.Matching.Weights.Text)
	assert.Equal(t, 0.1, cfg.Matching.Weights.Skill)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, 768, cfg.Embedding.Dimensions)
	assert.Equal(t, 10*time.Second, cfg.Embedding.Timeout)
	assert.Equal(t, 0.7, cfg.Matching.TextBlend.Semantic, "unset keys keep defaults")
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "custom.yaml", "database:\n  path: /var/lib/helpmatch\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/helpmatch", cfg.Database.Path)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "helpmatch.yaml", "matching:\n  top_k: 5\n")
	t.Setenv("HELPMATCH_MATCHING_TOP_K", "7")
	t.Setenv("HELPMATCH_EMBEDDING_HOST", "http://ollama:11434")
	t.Setenv("HELPMATCH_MATCHING_LOCATION_PARTIAL_SCORE", "0.5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Matching.TopK)
	assert.Equal(t, "http://ollama:11434", cfg.Embedding.Host)
	assert.Equal(t, 0.5, cfg.Matching.Location.PartialScore)
	assert.Equal(t, "http://ollama:11434/v1", cfg.AI().EmbeddingHost)
}

func TestLoad_Invalid(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "helpmatch.yaml", "matching:\n  weights:\n    text: 0.9\n")

	_, err := Load("")
	assert.ErrorIs(t, err, matching.ErrInvalidWeights)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"defaults", func(*Config) {}, nil},
		{"in-memory without path", func(c *Config) { c.Database.Path = ""; c.Database.InMemory = true }, nil},
		{"no database", func(c *Config) { c.Database.Path = "" }, ErrInvalidConfig},
		{"zero top k", func(c *Config) { c.Matching.TopK = 0 }, ErrInvalidConfig},
		{"negative concurrency", func(c *Config) { c.Matching.Concurrency = -1 }, ErrInvalidConfig},
		{"zero max rating", func(c *Config) { c.Matching.MaxRating = 0 }, ErrInvalidConfig},
		{"bad blend", func(c *Config) { c.Matching.TextBlend.Lexical = 0.5 }, matching.ErrInvalidWeights},
		{"bad location cap", func(c *Config) { c.Matching.Location.Cap = 2 }, matching.ErrInvalidLocationPolicy},
		{"zero ingestion batch", func(c *Config) { c.Ingestion.BatchSize = 0 }, ErrInvalidConfig},
		{"zero reembed interval", func(c *Config) { c.Reembed.ReportInterval = 0 }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.target == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}

	t.Run("embedding model required", func(t *testing.T) {
		cfg := Default()
		cfg.Embedding.Model = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestAI(t *testing.T) {
	cfg := Default()
	cfg.Embedding.Host = "http://ollama:11434/"
	cfg.Embedding.Token = ""
	cfg.Embedding.Dimensions = 768

	aiCfg := cfg.AI()
	assert.Equal(t, "http://ollama:11434/v1", aiCfg.EmbeddingHost)
	assert.Equal(t, "none", aiCfg.Token)
	assert.Equal(t, 768, aiCfg.Dimensions)
	assert.Equal(t, "http://ollama:11434/", cfg.Embedding.Host, "source config is untouched")
	require.NoError(t, aiCfg.Validate())
}

func TestMatchingOptions(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.MatchingOptions(), 5)

	cfg.Matching.Concurrency = 4
	assert.Len(t, cfg.MatchingOptions(), 6)
}

func TestReembedderConfig(t *testing.T) {
	cfg := Default()
	cfg.Reembed.BatchSize = 10
	cfg.Embedding.MaxRetries = 5

	rc := cfg.ReembedderConfig()
	assert.Equal(t, 10, rc.BatchSize)
	assert.Equal(t, 5, rc.MaxRetries)
	assert.Equal(t, cfg.Embedding.RetryDelay, rc.RetryDelay)
}
