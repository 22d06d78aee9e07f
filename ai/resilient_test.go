package ai_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/helpmatch/ai"
	"github.com/poiesic/helpmatch/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResilientEmbedder(t *testing.T) {
	_, err := ai.NewResilientEmbedder(nil, time.Second, 3, time.Millisecond)
	assert.ErrorIs(t, err, ai.ErrEmbedderRequired)

	_, err = ai.NewResilientEmbedder(mock.NewMockEmbedder(), time.Second, 0, time.Millisecond)
	assert.ErrorIs(t, err, ai.ErrInvalidMaxAttempts)
}

func TestResilientEmbedder_RetriesTransientFailure(t *testing.T) {
	calls := 0
	inner := mock.NewMockEmbedder().WithEmbedTextsFunc(func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection reset")
		}
		return [][]float32{{1, 0}}, nil
	})

	embedder, err := ai.NewResilientEmbedder(inner, time.Second, 3, time.Millisecond)
	require.NoError(t, err)

	vectors, err := embedder.EmbedTexts(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}}, vectors)
	assert.Equal(t, 2, calls)
	assert.Equal(t, mock.DefaultDimensions, embedder.Dimensions())
}

func TestResilientEmbedder_TimesOutSlowCalls(t *testing.T) {
	inner := mock.NewMockEmbedder().WithEmbedTextFunc(func(ctx context.Context, text string) ([]float32, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	embedder, err := ai.NewResilientEmbedder(inner, 5*time.Millisecond, 2, time.Millisecond)
	require.NoError(t, err)

	_, err = embedder.EmbedText(context.Background(), "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, inner.CallCount())
}
