// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package helpmatch

import (
	"io"
	"log/slog"

	"github.com/poiesic/helpmatch/ai"
	"github.com/poiesic/helpmatch/ai/openai"
	"github.com/poiesic/helpmatch/ingestion"
	"github.com/poiesic/helpmatch/matching"
	"github.com/poiesic/helpmatch/reembed"
	"github.com/poiesic/helpmatch/storage"
	"github.com/poiesic/helpmatch/storage/badger"
)

// Database wires the embedded store, the embedding provider and the cache
// between them. Engines, pipelines and reembedders built from one Database
// share the same repositories and embedding cache.
type Database struct {
	backend       *badger.Backend
	volunteerRepo *badger.VolunteerRepository
	requestRepo   *badger.RequestRepository
	embeddingRepo *badger.EmbeddingRepository
	provider      ai.AIProvider
	embedder      *ai.CachingEmbedder
	model         string
	logger        *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
	logger   *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a ready-made provider instead of connecting to the
// configured OpenAI-compatible service. The Database takes ownership and
// closes it.
func WithProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps all data in memory; the file path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens (or creates) the database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.aiConfig == nil {
		options.aiConfig = ai.DefaultConfig()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	volunteerRepo, err := badger.NewVolunteerRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	requestRepo, err := badger.NewRequestRepository(backend)
	if err != nil {
		volunteerRepo.Close()
		backend.Close()
		return nil, err
	}

	embeddingRepo := badger.NewEmbeddingRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			requestRepo.Close()
			volunteerRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	model := options.aiConfig.EmbeddingModel
	embedder, err := ai.NewCachingEmbedder(provider.Embedder(), embeddingRepo, model)
	if err != nil {
		provider.Close()
		requestRepo.Close()
		volunteerRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:       backend,
		volunteerRepo: volunteerRepo,
		requestRepo:   requestRepo,
		embeddingRepo: embeddingRepo,
		provider:      provider,
		embedder:      embedder,
		model:         model,
		logger:        options.logger.With("component", "database"),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.requestRepo.Close(); err != nil {
		db.logger.Error("error closing request repository", "err", err)
		return err
	}
	if err := db.volunteerRepo.Close(); err != nil {
		db.logger.Error("error closing volunteer repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) VolunteerRepository() storage.VolunteerRepository {
	return db.volunteerRepo
}

func (db *Database) RequestRepository() storage.RequestRepository {
	return db.requestRepo
}

// EmbeddingCache exposes the persistent cache behind Embedder.
func (db *Database) EmbeddingCache() storage.EmbeddingCache {
	return db.embeddingRepo
}

// Embedder returns the caching embedder every component built here reads through.
func (db *Database) Embedder() ai.Embedder {
	return db.embedder
}

// NewMatchingEngine creates an engine over this database's repositories.
// The caller must Release it.
func (db *Database) NewMatchingEngine(opts ...matching.Option) (*matching.Engine, error) {
	return matching.NewEngine(db.volunteerRepo, db.requestRepo, db.embedder, opts...)
}

// NewIngestionPipeline creates an intake pipeline that warms this
// database's embedding cache. The caller must Release it.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.volunteerRepo, db.requestRepo, db.embedder, opts...)
}

// NewReembedder creates a reembedder that bypasses cache reads and
// overwrites every volunteer's cached vectors.
func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(db.volunteerRepo, db.provider.Embedder(), db.embeddingRepo, db.model, config, progress)
}
