package reembed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/helpmatch/ai"
	"github.com/poiesic/helpmatch/ai/mock"
	"github.com/poiesic/helpmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolunteerTexts(t *testing.T) {
	vols := []*core.Volunteer{
		{Skills: "math tutoring", PreferredServiceAreas: "education"},
		{Skills: "math tutoring", PreferredServiceAreas: "education", Status: core.StatusInactive},
		{Skills: "", PreferredServiceAreas: ""},
		{Skills: "cooking", PreferredServiceAreas: ""},
	}

	assert.Equal(t,
		[]string{"math tutoring education", "math tutoring", "cooking ", "cooking"},
		volunteerTexts(vols),
		"duplicates and blank texts are skipped")
}

func TestBatchProcessor_Process(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	added := addVolunteers(t, db, 2)

	embedder := mock.NewMockEmbedderWithDimensions(8)
	processor := NewBatchProcessor(embedder, db.cache, "test-model", quickRetry(3))

	written, err := processor.Process(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, 4, written)
	assert.Equal(t, 1, embedder.CallCount(), "one embedding call per batch")

	for _, v := range added {
		for _, text := range []string{v.CorpusText(), v.Skills} {
			vector, ok, err := db.cache.GetEmbedding(ctx, ai.CacheKey("test-model", 8, text))
			require.NoError(t, err)
			require.True(t, ok, "missing %q", text)

			var magnitude float64
			for _, x := range vector {
				magnitude += float64(x) * float64(x)
			}
			assert.InDelta(t, 1.0, magnitude, 0.001, "vector should be normalized")
		}
	}

	_, ok, err := db.cache.GetEmbedding(ctx, ai.CacheKey("other-model", 8, added[0].Skills))
	require.NoError(t, err)
	assert.False(t, ok, "keys are scoped by model")

	_, ok, err = db.cache.GetEmbedding(ctx, ai.CacheKey("test-model", 16, added[0].Skills))
	require.NoError(t, err)
	assert.False(t, ok, "keys are scoped by dimensions")
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	db := setupTestDB(t)
	embedder := mock.NewMockEmbedder()
	processor := NewBatchProcessor(embedder, db.cache, "m", quickRetry(3))

	written, err := processor.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, written)
	assert.Zero(t, embedder.CallCount())
}

func TestBatchProcessor_RetryOnFailure(t *testing.T) {
	db := setupTestDB(t)
	added := addVolunteers(t, db, 1)

	attempts := 0
	embedder := mock.NewMockEmbedder().WithEmbedTextsFunc(func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("temporary failure")
		}
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = mock.BagOfWordsVector(text, 8)
		}
		return out, nil
	})

	processor := NewBatchProcessor(embedder, db.cache, "m", quickRetry(3))
	written, err := processor.Process(context.Background(), added)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.Equal(t, 3, attempts)
}

func TestBatchProcessor_RetryExhausted(t *testing.T) {
	db := setupTestDB(t)
	added := addVolunteers(t, db, 1)

	attempts := 0
	embedder := mock.NewMockEmbedder().WithEmbedTextsFunc(func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		return nil, errors.New("persistent failure")
	})

	processor := NewBatchProcessor(embedder, db.cache, "m", quickRetry(2))
	_, err := processor.Process(context.Background(), added)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persistent failure")
	assert.Equal(t, 2, attempts)

	count, err := db.cache.CountEmbeddings(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	db := setupTestDB(t)
	added := addVolunteers(t, db, 1)

	embedder := mock.NewMockEmbedder().WithEmbedTextsFunc(func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	})

	processor := NewBatchProcessor(embedder, db.cache, "m", quickRetry(1))
	_, err := processor.Process(context.Background(), added)
	assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
}

func quickRetry(attempts int) ai.Backoff {
	return ai.Backoff{MaxAttempts: attempts, BaseDelay: time.Millisecond}
}
