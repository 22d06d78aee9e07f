package matching

import (
	"fmt"
	"math"
)

// DefaultMaxRating is the top of the volunteer rating scale.
const DefaultMaxRating = 5.0

// weightTolerance absorbs floating point error when checking that weights sum to 1.
const weightTolerance = 1e-9

// ScoringWeights are the coefficients of the final weighted sum.
type ScoringWeights struct {
	Text     float64 `mapstructure:"text"`
	Skill    float64 `mapstructure:"skill"`
	Language float64 `mapstructure:"language"`
	Location float64 `mapstructure:"location"`
	Rating   float64 `mapstructure:"rating"`
}

// DefaultScoringWeights returns the standard weights.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Text:     0.50,
		Skill:    0.20,
		Language: 0.15,
		Location: 0.10,
		Rating:   0.05,
	}
}

// Sum returns the total of all weights.
func (w ScoringWeights) Sum() float64 {
	return w.Text + w.Skill + w.Language + w.Location + w.Rating
}

// Validate checks that every weight is non-negative and that they sum to 1.
func (w ScoringWeights) Validate() error {
	for _, weight := range []float64{w.Text, w.Skill, w.Language, w.Location, w.Rating} {
		if weight < 0 || math.IsNaN(weight) {
			return fmt.Errorf("%w: %+v has a negative weight", ErrInvalidWeights, w)
		}
	}
	if math.Abs(w.Sum()-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidWeights, w.Sum())
	}
	return nil
}

// TextBlend mixes lexical and semantic similarity into the text signal.
type TextBlend struct {
	Lexical  float64 `mapstructure:"lexical"`
	Semantic float64 `mapstructure:"semantic"`
}

// DefaultTextBlend favours semantic similarity, which generalizes across wording.
func DefaultTextBlend() TextBlend {
	return TextBlend{Lexical: 0.3, Semantic: 0.7}
}

// Validate checks that both parts are non-negative and sum to 1.
func (b TextBlend) Validate() error {
	if b.Lexical < 0 || b.Semantic < 0 {
		return fmt.Errorf("%w: text blend %+v has a negative part", ErrInvalidWeights, b)
	}
	if math.Abs(b.Lexical+b.Semantic-1) > weightTolerance {
		return fmt.Errorf("%w: text blend sums to %v, want 1", ErrInvalidWeights, b.Lexical+b.Semantic)
	}
	return nil
}

// Signals are one candidate's raw component scores.
type Signals struct {
	Lexical       float64
	Semantic      float64
	SkillAffinity float64
	Language      float64
	Location      float64
	Rating        float64
}

// Aggregator turns Signals into a final score.
// It is a pure function of its configuration and inputs.
type Aggregator struct {
	Weights   ScoringWeights
	Blend     TextBlend
	MaxRating float64
}

// DefaultAggregator returns an aggregator with the standard configuration.
func DefaultAggregator() Aggregator {
	return Aggregator{
		Weights:   DefaultScoringWeights(),
		Blend:     DefaultTextBlend(),
		MaxRating: DefaultMaxRating,
	}
}

// Validate checks the weights, the blend and the rating scale.
func (a Aggregator) Validate() error {
	if err := a.Weights.Validate(); err != nil {
		return err
	}
	if err := a.Blend.Validate(); err != nil {
		return err
	}
	if a.MaxRating <= 0 {
		return fmt.Errorf("%w: max rating %v must be positive", ErrInvalidWeights, a.MaxRating)
	}
	return nil
}

// TextSimilarity blends lexical and semantic similarity.
func (a Aggregator) TextSimilarity(s Signals) float64 {
	return a.Blend.Lexical*unit(s.Lexical) + a.Blend.Semantic*unit(s.Semantic)
}

// Score returns the weighted sum of s.
//
// Every signal is clamped to its documented range first (similarities and
// location to [0, 1], rating to [0, MaxRating]), so the result is in [0, 1]
// whenever the weights are valid. A negative cosine contributes nothing.
func (a Aggregator) Score(s Signals) float64 {
	w := a.Weights
	return w.Text*a.TextSimilarity(s) +
		w.Skill*unit(s.SkillAffinity) +
		w.Language*unit(s.Language) +
		w.Location*unit(s.Location) +
		w.Rating*unit(s.Rating/a.MaxRating)
}

// unit clamps x to [0, 1]; NaN becomes 0.
func unit(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	return min(x, 1)
}
