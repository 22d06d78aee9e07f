package ai

import (
	"context"
	"log/slog"
	"time"
)

// ResilientEmbedder bounds every call to a remote embedder with a timeout and
// retries failed calls with exponential backoff.
type ResilientEmbedder struct {
	next    Embedder
	timeout time.Duration
	retry   Backoff
}

var _ Embedder = (*ResilientEmbedder)(nil)

// NewResilientEmbedder wraps next with a per-attempt timeout and retries.
// A non-positive timeout disables the timeout.
func NewResilientEmbedder(next Embedder, timeout time.Duration, maxAttempts int, baseDelay time.Duration) (*ResilientEmbedder, error) {
	if next == nil {
		return nil, ErrEmbedderRequired
	}
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	return &ResilientEmbedder{
		next:    next,
		timeout: timeout,
		retry: Backoff{
			MaxAttempts: maxAttempts,
			BaseDelay:   baseDelay,
			Logger:      slog.Default().With("component", "resilient-embedder"),
		},
	}, nil
}

// EmbedText embeds one text with timeout and retry.
func (r *ResilientEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	err := r.retry.Do(ctx, func() error {
		attemptCtx, cancel := r.attemptContext(ctx)
		defer cancel()
		var err error
		vector, err = r.next.EmbedText(attemptCtx, text)
		return err
	})
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// EmbedTexts embeds a batch with timeout and retry. The whole batch is retried.
func (r *ResilientEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	err := r.retry.Do(ctx, func() error {
		attemptCtx, cancel := r.attemptContext(ctx)
		defer cancel()
		var err error
		vectors, err = r.next.EmbedTexts(attemptCtx, texts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

// Dimensions delegates to the wrapped embedder.
func (r *ResilientEmbedder) Dimensions() int {
	return r.next.Dimensions()
}

func (r *ResilientEmbedder) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
