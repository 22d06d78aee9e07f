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


package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/helpmatch/ai"
	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of volunteers to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of volunteers)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per batch
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Summary describes a finished run.
type Summary struct {
	Volunteers int
	Embeddings int
	Elapsed    time.Duration
}

// Reembedder refreshes cached embeddings for every stored volunteer.
type Reembedder struct {
	volunteers storage.VolunteerRepository
	config     *Config
	progress   io.Writer
	processor  *BatchProcessor
	iterator   *VolunteerIterator
	logger     *slog.Logger
}

// NewReembedder creates a reembedder that embeds with embedder and writes to
// cache under model. A nil config uses DefaultConfig; a nil progress writer
// discards progress output.
func NewReembedder(volunteers storage.VolunteerRepository, embedder ai.Embedder, cache ai.EmbeddingCache, model string, config *Config, progress io.Writer) (*Reembedder, error) {
	if volunteers == nil {
		return nil, ErrVolunteerRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if cache == nil {
		return nil, ErrEmbeddingCacheRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	logger := slog.Default().With("component", "reembedder", "model", model)
	retry := ai.Backoff{MaxAttempts: config.MaxRetries, BaseDelay: config.RetryDelay, Logger: logger}
	return &Reembedder{
		volunteers: volunteers,
		config:     config,
		progress:   progress,
		processor:  NewBatchProcessor(embedder, cache, model, retry),
		iterator:   NewVolunteerIterator(volunteers, config.BatchSize),
		logger:     logger,
	}, nil
}

// Run re-embeds every volunteer. It stops at the first batch that still
// fails after retries; batches already written stay in the cache.
func (r *Reembedder) Run(ctx context.Context) (Summary, error) {
	all, err := r.volunteers.ListVolunteers(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list volunteers: %w", err)
	}

	total := len(all)
	if total == 0 {
		fmt.Fprintf(r.progress, "No volunteers found in database (0 volunteers)\n")
		return Summary{}, nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d volunteers (batch size: %d)\n",
		total, r.iterator.batchSize)
	r.logger.Info("reembed started", "volunteers", total)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	var summary Summary
	err = r.iterator.ForEach(ctx, func(batch []*core.Volunteer) error {
		written, err := r.processor.Process(ctx, batch)
		summary.Embeddings += written
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		summary.Volunteers += len(batch)
		tracker.Increment(len(batch))
		return nil
	})
	summary.Elapsed = tracker.Elapsed()
	if err != nil {
		r.logger.Error("reembed failed", "err", err, "volunteers", summary.Volunteers)
		return summary, err
	}

	tracker.Finish()

	rate := 0.0
	if secs := summary.Elapsed.Seconds(); secs > 0 {
		rate = float64(summary.Volunteers) / secs
	}
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d volunteers (%d embeddings) in %v (%.1f volunteers/sec)\n",
		summary.Volunteers, summary.Embeddings, summary.Elapsed.Round(time.Millisecond), rate)
	r.logger.Info("reembed finished", "volunteers", summary.Volunteers, "embeddings", summary.Embeddings)

	return summary, nil
}
