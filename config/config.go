package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/helpmatch/ai"
	"github.com/poiesic/helpmatch/matching"
	"github.com/poiesic/helpmatch/reembed"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. HELPMATCH_MATCHING_TOP_K.
const EnvPrefix = "HELPMATCH"

// Config holds all configuration for the matcher and its tools.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Data      DataConfig      `mapstructure:"data"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
	Reembed   ReembedConfig   `mapstructure:"reembed"`
}

// DatabaseConfig locates the embedded store.
type DatabaseConfig struct {
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
}

// DataConfig names the CSV tables used by import and export.
type DataConfig struct {
	Volunteers string `mapstructure:"volunteers"`
	Requests   string `mapstructure:"requests"`
}

// EmbeddingConfig mirrors ai.Config.
type EmbeddingConfig struct {
	Host       string        `mapstructure:"host"`
	Model      string        `mapstructure:"model"`
	Token      string        `mapstructure:"token"`
	Dimensions int           `mapstructure:"dimensions"`
	BatchSize  int           `mapstructure:"batch_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// MatchingConfig tunes the ranking.
type MatchingConfig struct {
	TopK int `mapstructure:"top_k"`
	// Concurrency is the number of embedding batches run in parallel; 0 picks a default.
	Concurrency int                     `mapstructure:"concurrency"`
	MaxRating   float64                 `mapstructure:"max_rating"`
	Weights     matching.ScoringWeights `mapstructure:"weights"`
	TextBlend   matching.TextBlend      `mapstructure:"text_blend"`
	Location    matching.LocationPolicy `mapstructure:"location"`
}

// IngestionConfig sizes the background cache warm-up.
type IngestionConfig struct {
	// PoolSize is the number of warm-up workers; 0 picks a default.
	PoolSize  int `mapstructure:"pool_size"`
	BatchSize int `mapstructure:"batch_size"`
}

// ReembedConfig tunes the reembed command.
type ReembedConfig struct {
	BatchSize      int `mapstructure:"batch_size"`
	ReportInterval int `mapstructure:"report_interval"`
}

// Load reads configuration from defaults, an optional YAML file and
// HELPMATCH_* environment variables, in increasing order of precedence.
//
// With an empty path, helpmatch.yaml is looked up in the working directory
// and in $HOME/.config/helpmatch; a missing file is not an error. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("helpmatch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/helpmatch")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() *Config {
	aiCfg := ai.DefaultConfig()
	reCfg := reembed.DefaultConfig()
	return &Config{
		Database: DatabaseConfig{Path: "helpmatch.db"},
		Data: DataConfig{
			Volunteers: "volunteers.csv",
			Requests:   "requests.csv",
		},
		Embedding: EmbeddingConfig{
			Host:       aiCfg.EmbeddingHost,
			Model:      aiCfg.EmbeddingModel,
			Token:      aiCfg.Token,
			Dimensions: aiCfg.Dimensions,
			BatchSize:  aiCfg.BatchSize,
			Timeout:    aiCfg.Timeout,
			MaxRetries: aiCfg.MaxRetries,
			RetryDelay: aiCfg.RetryDelay,
		},
		Matching: MatchingConfig{
			TopK:      matching.DefaultTopK,
			MaxRating: matching.DefaultMaxRating,
			Weights:   matching.DefaultScoringWeights(),
			TextBlend: matching.DefaultTextBlend(),
			Location:  matching.DefaultLocationPolicy(),
		},
		Ingestion: IngestionConfig{BatchSize: 32},
		Reembed: ReembedConfig{
			BatchSize:      reCfg.BatchSize,
			ReportInterval: reCfg.ReportInterval,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.in_memory", d.Database.InMemory)

	v.SetDefault("data.volunteers", d.Data.Volunteers)
	v.SetDefault("data.requests", d.Data.Requests)

	v.SetDefault("embedding.host", d.Embedding.Host)
	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.token", d.Embedding.Token)
	v.SetDefault("embedding.dimensions", d.Embedding.Dimensions)
	v.SetDefault("embedding.batch_size", d.Embedding.BatchSize)
	v.SetDefault("embedding.timeout", d.Embedding.Timeout)
	v.SetDefault("embedding.max_retries", d.Embedding.MaxRetries)
	v.SetDefault("embedding.retry_delay", d.Embedding.RetryDelay)

	v.SetDefault("matching.top_k", d.Matching.TopK)
	v.SetDefault("matching.concurrency", d.Matching.Concurrency)
	v.SetDefault("matching.max_rating", d.Matching.MaxRating)
	v.SetDefault("matching.weights.text", d.Matching.Weights.Text)
	v.SetDefault("matching.weights.skill", d.Matching.Weights.Skill)
	v.SetDefault("matching.weights.language", d.Matching.Weights.Language)
	v.SetDefault("matching.weights.location", d.Matching.Weights.Location)
	v.SetDefault("matching.weights.rating", d.Matching.Weights.Rating)
	v.SetDefault("matching.text_blend.lexical", d.Matching.TextBlend.Lexical)
	v.SetDefault("matching.text_blend.semantic", d.Matching.TextBlend.Semantic)
	v.SetDefault("matching.location.partial_score", d.Matching.Location.PartialScore)
	v.SetDefault("matching.location.high_factor", d.Matching.Location.HighFactor)
	v.SetDefault("matching.location.moderate_factor", d.Matching.Location.ModerateFactor)
	v.SetDefault("matching.location.low_factor", d.Matching.Location.LowFactor)
	v.SetDefault("matching.location.cap", d.Matching.Location.Cap)

	v.SetDefault("ingestion.pool_size", d.Ingestion.PoolSize)
	v.SetDefault("ingestion.batch_size", d.Ingestion.BatchSize)

	v.SetDefault("reembed.batch_size", d.Reembed.BatchSize)
	v.SetDefault("reembed.report_interval", d.Reembed.ReportInterval)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Database.Path == "" && !c.Database.InMemory {
		return fmt.Errorf("%w: database.path is required unless database.in_memory is set", ErrInvalidConfig)
	}
	if err := c.AI().Validate(); err != nil {
		return err
	}
	if c.Matching.TopK < 1 {
		return fmt.Errorf("%w: matching.top_k must be at least 1, got %d", ErrInvalidConfig, c.Matching.TopK)
	}
	if c.Matching.Concurrency < 0 {
		return fmt.Errorf("%w: matching.concurrency cannot be negative", ErrInvalidConfig)
	}
	if c.Matching.MaxRating <= 0 {
		return fmt.Errorf("%w: matching.max_rating must be positive", ErrInvalidConfig)
	}
	if err := c.Matching.Weights.Validate(); err != nil {
		return err
	}
	if err := c.Matching.TextBlend.Validate(); err != nil {
		return err
	}
	if err := c.Matching.Location.Validate(); err != nil {
		return err
	}
	if c.Ingestion.PoolSize < 0 {
		return fmt.Errorf("%w: ingestion.pool_size cannot be negative", ErrInvalidConfig)
	}
	if c.Ingestion.BatchSize < 1 {
		return fmt.Errorf("%w: ingestion.batch_size must be at least 1", ErrInvalidConfig)
	}
	if c.Reembed.BatchSize < 1 || c.Reembed.ReportInterval < 1 {
		return fmt.Errorf("%w: reembed.batch_size and reembed.report_interval must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// AI converts the embedding section to a normalized ai.Config.
func (c *Config) AI() *ai.Config {
	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.Embedding.Host),
		ai.WithEmbeddingModel(c.Embedding.Model),
		ai.WithToken(c.Embedding.Token),
		ai.WithDimensions(c.Embedding.Dimensions),
		ai.WithBatchSize(c.Embedding.BatchSize),
		ai.WithTimeout(c.Embedding.Timeout),
		ai.WithMaxRetries(c.Embedding.MaxRetries),
		ai.WithRetryDelay(c.Embedding.RetryDelay),
	)
	cfg.Normalize()
	return cfg
}

// MatchingOptions converts the matching section to engine options.
func (c *Config) MatchingOptions() []matching.Option {
	opts := []matching.Option{
		matching.WithWeights(c.Matching.Weights),
		matching.WithTextBlend(c.Matching.TextBlend),
		matching.WithMaxRating(c.Matching.MaxRating),
		matching.WithLocationPolicy(c.Matching.Location),
		matching.WithBatchSize(c.Embedding.BatchSize),
	}
	if c.Matching.Concurrency > 0 {
		opts = append(opts, matching.WithConcurrency(c.Matching.Concurrency))
	}
	return opts
}

// ReembedderConfig converts the reembed section, sharing retry settings with
// the embedding section.
func (c *Config) ReembedderConfig() *reembed.Config {
	return &reembed.Config{
		BatchSize:      c.Reembed.BatchSize,
		ReportInterval: c.Reembed.ReportInterval,
		MaxRetries:     c.Embedding.MaxRetries,
		RetryDelay:     c.Embedding.RetryDelay,
	}
}
