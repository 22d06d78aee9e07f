package reembed

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/helpmatch/ai"
	"github.com/poiesic/helpmatch/core"
)

// BatchProcessor embeds the texts of a batch of volunteers and writes the
// vectors to the embedding cache.
type BatchProcessor struct {
	embedder ai.Embedder
	cache    ai.EmbeddingCache
	model    string
	retry    ai.Backoff
}

// NewBatchProcessor creates a batch processor.
// model must match the model name the caching embedder keys on, or the
// refreshed vectors will never be read. Keys also carry the embedder's
// dimensionality.
func NewBatchProcessor(embedder ai.Embedder, cache ai.EmbeddingCache, model string, retry ai.Backoff) *BatchProcessor {
	return &BatchProcessor{
		embedder: embedder,
		cache:    cache,
		model:    model,
		retry:    retry,
	}
}

// Process embeds every distinct non-blank text the volunteers contribute to
// matching and stores the normalized vectors. It returns the number of
// vectors written.
func (bp *BatchProcessor) Process(ctx context.Context, volunteers []*core.Volunteer) (int, error) {
	texts := volunteerTexts(volunteers)
	if len(texts) == 0 {
		return 0, nil
	}

	var embeddings [][]float32
	err := bp.retry.Do(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.retry.MaxAttempts, err)
	}

	if len(embeddings) != len(texts) {
		return 0, fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(texts), len(embeddings))
	}

	dims := bp.embedder.Dimensions()
	for i, text := range texts {
		vector := ai.NormalizeVector(embeddings[i])
		if err := bp.cache.PutEmbedding(ctx, ai.CacheKey(bp.model, dims, text), vector); err != nil {
			return i, fmt.Errorf("failed to store embedding: %w", err)
		}
	}
	return len(texts), nil
}

// volunteerTexts collects corpus and skill texts in first-seen order.
// Inactive volunteers are included so a later reactivation hits the cache.
func volunteerTexts(volunteers []*core.Volunteer) []string {
	seen := make(map[string]struct{}, len(volunteers)*2)
	texts := make([]string, 0, len(volunteers)*2)
	for _, v := range volunteers {
		for _, text := range []string{v.CorpusText(), v.Skills} {
			if strings.TrimSpace(text) == "" {
				continue
			}
			if _, ok := seen[text]; ok {
				continue
			}
			seen[text] = struct{}{}
			texts = append(texts, text)
		}
	}
	return texts
}
