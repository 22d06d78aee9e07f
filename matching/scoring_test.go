package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScoringWeights(t *testing.T) {
	w := DefaultScoringWeights()
	assert.InDelta(t, 1.0, w.Sum(), 1e-12)
	assert.Equal(t, 0.50, w.Text)
	assert.Equal(t, 0.20, w.Skill)
	assert.Equal(t, 0.15, w.Language)
	assert.Equal(t, 0.10, w.Location)
	assert.Equal(t, 0.05, w.Rating)
	require.NoError(t, w.Validate())
}

func TestScoringWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights ScoringWeights
	}{
		{"sum below one", ScoringWeights{Text: 0.5}},
		{"sum above one", ScoringWeights{Text: 0.9, Skill: 0.2}},
		{"negative weight", ScoringWeights{Text: 1.1, Rating: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.weights.Validate(), ErrInvalidWeights)
		})
	}
}

func TestTextBlend(t *testing.T) {
	require.NoError(t, DefaultTextBlend().Validate())
	assert.ErrorIs(t, TextBlend{Lexical: 0.5, Semantic: 0.6}.Validate(), ErrInvalidWeights)
	assert.ErrorIs(t, TextBlend{Lexical: -0.5, Semantic: 1.5}.Validate(), ErrInvalidWeights)

	a := DefaultAggregator()
	assert.InDelta(t, 0.3*0.5+0.7*0.2, a.TextSimilarity(Signals{Lexical: 0.5, Semantic: 0.2}), 1e-12)
}

func TestAggregator_Score(t *testing.T) {
	a := DefaultAggregator()

	perfect := Signals{Lexical: 1, Semantic: 1, SkillAffinity: 1, Language: 1, Location: 1, Rating: 5}
	assert.InDelta(t, 1.0, a.Score(perfect), 1e-12)
	assert.Equal(t, 0.0, a.Score(Signals{}))

	s := Signals{Lexical: 0.4, Semantic: 0.6, SkillAffinity: 0.5, Language: 1, Location: 0.3, Rating: 4}
	text := 0.3*0.4 + 0.7*0.6
	want := 0.5*text + 0.2*0.5 + 0.15*1 + 0.10*0.3 + 0.05*(4.0/5)
	assert.InDelta(t, want, a.Score(s), 1e-12)
}

func TestAggregator_ScoreInUnitInterval(t *testing.T) {
	a := DefaultAggregator()
	sims := []float64{0, 0.25, 1}
	for _, lex := range sims {
		for _, sem := range sims {
			for _, skill := range sims {
				for _, lang := range []float64{0, 1} {
					for _, loc := range []float64{0, 0.24, 1} {
						for _, rating := range []float64{0, 2.5, 5} {
							score := a.Score(Signals{lex, sem, skill, lang, loc, rating})
							assert.GreaterOrEqual(t, score, 0.0)
							assert.LessOrEqual(t, score, 1.0+1e-12)
						}
					}
				}
			}
		}
	}
}

func TestAggregator_ClampsOutOfRangeSignals(t *testing.T) {
	a := DefaultAggregator()

	// Negative cosines contribute nothing; out-of-scale ratings are capped.
	s := Signals{Semantic: -0.4, SkillAffinity: -1, Rating: 7}
	assert.InDelta(t, 0.05, a.Score(s), 1e-12)

	s = Signals{Rating: -3}
	assert.Equal(t, 0.0, a.Score(s))
}

func TestAggregator_Validate(t *testing.T) {
	require.NoError(t, DefaultAggregator().Validate())

	a := DefaultAggregator()
	a.MaxRating = 0
	assert.ErrorIs(t, a.Validate(), ErrInvalidWeights)
}
