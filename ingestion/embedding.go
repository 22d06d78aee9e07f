package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/helpmatch/ai"
)

// embeddingProcessor embeds the texts a later match will ask for, so that a
// caching embedder already holds them when the match runs.
type embeddingProcessor struct {
	embedder  ai.Embedder
	batchSize int
	logger    *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(embedder ai.Embedder, batchSize int, logger *slog.Logger) (processor, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if batchSize < 1 {
		batchSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		embedder:  embedder,
		batchSize: batchSize,
		logger:    logger.With("processor", "embeddings"),
	}, nil
}

// process embeds every distinct non-blank text.
func (ep *embeddingProcessor) process(ctx context.Context, texts ...string) error {
	seen := make(map[string]struct{}, len(texts))
	unique := make([]string, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		unique = append(unique, text)
	}

	ep.logger.Debug("warming embeddings", "texts", len(unique))
	for start := 0; start < len(unique); start += ep.batchSize {
		batch := unique[start:min(start+ep.batchSize, len(unique))]
		embeddings, err := ep.embedder.EmbedTexts(ctx, batch)
		if err != nil {
			ep.logger.Error("error generating embeddings", "err", err)
			return err
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(embeddings))
		}
	}
	return nil
}
