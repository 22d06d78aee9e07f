package lexical

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_Vocabulary(t *testing.T) {
	m, err := Fit([]string{"math tutoring", "gardening", "math help"})
	require.NoError(t, err)
	assert.Equal(t, 4, m.VocabularySize())

	m, err = Fit([]string{"the and of"})
	require.NoError(t, err)
	assert.Zero(t, m.VocabularySize())
}

func TestTransform_Weights(t *testing.T) {
	docs := []string{"math tutoring math", "gardening", "math help"}
	m, err := Fit(docs)
	require.NoError(t, err)

	matrix, err := m.Transform(docs...)
	require.NoError(t, err)
	rows, cols := matrix.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 3, cols)

	// "math" occurs twice in doc 0 and in 2 of 3 docs overall.
	mathRow := m.vectoriser.Vocabulary["math"]
	want := 2 * (math.Log(4.0/3.0) + 1)
	assert.InDelta(t, want, matrix.At(mathRow, 0), 1e-12)

	// "gardening" occurs only in doc 1.
	gardenRow := m.vectoriser.Vocabulary["gardening"]
	assert.InDelta(t, math.Log(4.0/2.0)+1, matrix.At(gardenRow, 1), 1e-12)
	assert.Zero(t, matrix.At(gardenRow, 0))
}

func TestTransform_UnknownTerms(t *testing.T) {
	m, err := Fit([]string{"math tutoring"})
	require.NoError(t, err)

	matrix, err := m.Transform("plumbing")
	require.NoError(t, err)
	rows, _ := matrix.Dims()
	for i := 0; i < rows; i++ {
		assert.Zero(t, matrix.At(i, 0))
	}
}

func TestTransform_EmptyVocabulary(t *testing.T) {
	m, err := Fit(nil)
	require.NoError(t, err)

	matrix, err := m.Transform("anything")
	require.NoError(t, err)
	assert.Nil(t, matrix)
}

func TestSimilarities(t *testing.T) {
	t.Run("overlap ranks higher", func(t *testing.T) {
		sims, err := Similarities([]string{"math tutoring", "gardening"}, "Tutoring algebra homework")
		require.NoError(t, err)
		require.Len(t, sims, 2)
		assert.Greater(t, sims[0], 0.0)
		assert.Equal(t, 0.0, sims[1])
	})

	t.Run("identical text is maximal", func(t *testing.T) {
		// Every term occurs in every document, so the unsmoothed idf is zero.
		sims, err := Similarities([]string{"first aid training"}, "first aid training")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sims[0], 1e-9)
	})

	t.Run("shared term present everywhere still counts", func(t *testing.T) {
		sims, err := Similarities([]string{"cooking", "cooking driving"}, "cooking")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sims[0], 1e-9)
		assert.Greater(t, sims[1], 0.0)
		assert.Less(t, sims[1], sims[0])
	})

	t.Run("empty corpus", func(t *testing.T) {
		sims, err := Similarities(nil, "anything")
		require.NoError(t, err)
		assert.Empty(t, sims)
	})

	t.Run("query with only stop words", func(t *testing.T) {
		sims, err := Similarities([]string{"math tutoring", "gardening"}, "the and of")
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0}, sims)
	})

	t.Run("everything is stop words", func(t *testing.T) {
		sims, err := Similarities([]string{"the", " "}, "and of")
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0}, sims)
	})

	t.Run("values within unit interval", func(t *testing.T) {
		sims, err := Similarities([]string{"cooking meals", "meals delivery driving", ""}, "meals cooking driving")
		require.NoError(t, err)
		for _, s := range sims {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
		assert.Zero(t, sims[2])
	})
}
