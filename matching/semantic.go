package matching

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/helpmatch/ai"
)

// textEmbedder applies the matching contract on top of an ai.Embedder:
// blank text maps to the zero vector without a backend call, duplicate
// texts are embedded once, and every vector must have the embedder's
// dimensionality. Batches run in parallel on a shared worker pool.
type textEmbedder struct {
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
}

// embed returns one vector per text, in order.
func (t *textEmbedder) embed(ctx context.Context, texts []string) ([][]float32, error) {
	dims := t.embedder.Dimensions()
	vectors := make([][]float32, len(texts))

	// Deduplicate non-blank texts; positions maps each unique text to its slots.
	var unique []string
	positions := make(map[string][]int)
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			vectors[i] = ai.ZeroVector(dims)
			continue
		}
		if _, seen := positions[text]; !seen {
			unique = append(unique, text)
		}
		positions[text] = append(positions[text], i)
	}
	if len(unique) == 0 {
		return vectors, nil
	}

	embedded, err := t.embedBatches(ctx, unique)
	if err != nil {
		return nil, err
	}

	for i, text := range unique {
		if len(embedded[i]) != dims {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(embedded[i]), dims)
		}
		for _, slot := range positions[text] {
			vectors[slot] = embedded[i]
		}
	}
	return vectors, nil
}

// embedBatches splits texts into batches and embeds them concurrently.
// The first failure cancels the batches still running.
func (t *textEmbedder) embedBatches(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]float32, len(texts))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for start := 0; start < len(texts); start += t.batchSize {
		end := min(start+t.batchSize, len(texts))
		batch := texts[start:end]
		offset := start

		wg.Add(1)
		err := t.pool.Submit(func() {
			defer wg.Done()
			vectors, err := t.embedder.EmbedTexts(ctx, batch)
			if err != nil {
				fail(err)
				return
			}
			if len(vectors) != len(batch) {
				fail(fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbeddingCountMismatch, len(vectors), len(batch)))
				return
			}
			copy(results[offset:], vectors)
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
