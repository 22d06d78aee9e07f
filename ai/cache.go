package ai

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/poiesic/helpmatch/core"
)

// EmbeddingCache stores embeddings keyed by content fingerprint.
// Implementations must be thread-safe.
type EmbeddingCache interface {
	// GetEmbedding returns the cached vector and true, or nil and false on a miss.
	GetEmbedding(ctx context.Context, key core.Fingerprint) ([]float32, bool, error)

	// PutEmbedding stores a vector under key, replacing any previous value.
	PutEmbedding(ctx context.Context, key core.Fingerprint, vector []float32) error
}

// CachingEmbedder is a read-through cache in front of another embedder.
//
// Keys combine the model name and vector dimensionality with the text, so
// switching models or output sizes never serves stale vectors. Cache read and write failures are logged and bypassed; they
// never change the vectors returned.
type CachingEmbedder struct {
	next   Embedder
	cache  EmbeddingCache
	model  string
	logger *slog.Logger
}

var _ Embedder = (*CachingEmbedder)(nil)

// NewCachingEmbedder wraps next with cache.
func NewCachingEmbedder(next Embedder, cache EmbeddingCache, model string) (*CachingEmbedder, error) {
	if next == nil {
		return nil, ErrEmbedderRequired
	}
	if cache == nil {
		return nil, ErrEmbeddingCacheRequired
	}
	return &CachingEmbedder{
		next:   next,
		cache:  cache,
		model:  model,
		logger: slog.Default().With("component", "embedding-cache"),
	}, nil
}

// CacheKey returns the cache key for text embedded by model at dims dimensions.
func CacheKey(model string, dims int, text string) core.Fingerprint {
	return core.FingerprintOf(model + "\x00" + strconv.Itoa(dims) + "\x00" + text)
}

// EmbedText returns the cached vector for text, embedding it on a miss.
func (c *CachingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts serves hits from the cache and embeds all misses in one batch.
func (c *CachingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	keys := make([]core.Fingerprint, len(texts))

	dims := c.next.Dimensions()
	var missTexts []string
	var missIdx []int
	for i, text := range texts {
		keys[i] = CacheKey(c.model, dims, text)
		vector, ok, err := c.cache.GetEmbedding(ctx, keys[i])
		if err != nil {
			c.logger.Warn("embedding cache read failed", "err", err)
		}
		if ok && err == nil {
			results[i] = vector
			continue
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		c.logger.Debug("embedding cache hit", "count", len(texts))
		return results, nil
	}

	c.logger.Debug("embedding cache miss", "hits", len(texts)-len(missTexts), "misses", len(missTexts))
	embedded, err := c.next.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missTexts) {
		// Let the caller detect the count mismatch; nothing is cached.
		return embedded, nil
	}

	for j, vector := range embedded {
		i := missIdx[j]
		results[i] = vector
		if err := c.cache.PutEmbedding(ctx, keys[i], vector); err != nil {
			c.logger.Warn("embedding cache write failed", "err", err)
		}
	}
	return results, nil
}

// Dimensions delegates to the wrapped embedder.
func (c *CachingEmbedder) Dimensions() int {
	return c.next.Dimensions()
}
