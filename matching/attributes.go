package matching

import (
	"fmt"
	"strings"

	"github.com/poiesic/helpmatch/ai"
	"github.com/poiesic/helpmatch/core"
)

// LanguageMatch returns 1 when preferred occurs in spoken, else 0.
//
// The check is plain case-sensitive substring containment over the
// delimited languages field, so "En" matches "English" and an empty
// preference matches every volunteer.
func LanguageMatch(preferred, spoken string) float64 {
	if strings.Contains(spoken, preferred) {
		return 1
	}
	return 0
}

// LocationPolicy scores how practical it is for a volunteer to reach an
// in-person request.
type LocationPolicy struct {
	// PartialScore is the base score of a volunteer without transportation.
	PartialScore float64 `mapstructure:"partial_score"`

	// Willingness multipliers. Any value other than High or Moderate,
	// including an empty one, gets LowFactor.
	HighFactor     float64 `mapstructure:"high_factor"`
	ModerateFactor float64 `mapstructure:"moderate_factor"`
	LowFactor      float64 `mapstructure:"low_factor"`

	// Cap bounds the product so every score stays on a common scale.
	Cap float64 `mapstructure:"cap"`
}

// DefaultLocationPolicy returns the standard policy.
func DefaultLocationPolicy() LocationPolicy {
	return LocationPolicy{
		PartialScore:   0.3,
		HighFactor:     1.2,
		ModerateFactor: 1.0,
		LowFactor:      0.8,
		Cap:            1.0,
	}
}

// Validate checks that the policy produces scores in [0, 1].
func (p LocationPolicy) Validate() error {
	if p.PartialScore <= 0 || p.PartialScore > 1 {
		return fmt.Errorf("%w: partial score %v must be in (0, 1]", ErrInvalidLocationPolicy, p.PartialScore)
	}
	if p.HighFactor < 0 || p.ModerateFactor < 0 || p.LowFactor < 0 {
		return fmt.Errorf("%w: willingness factors cannot be negative", ErrInvalidLocationPolicy)
	}
	if p.Cap <= 0 || p.Cap > 1 {
		return fmt.Errorf("%w: cap %v must be in (0, 1]", ErrInvalidLocationPolicy, p.Cap)
	}
	return nil
}

// Score returns the location score of v for req.
// Remote requests score 1 for everyone.
func (p LocationPolicy) Score(req *core.HelpRequest, v *core.Volunteer) float64 {
	if req.IsRemote() {
		return 1
	}

	base := p.PartialScore
	if v.Transportation == core.TransportationYes {
		base = 1
	}
	return min(base*p.factor(v.WillingnessToTravel), p.Cap)
}

func (p LocationPolicy) factor(willingness string) float64 {
	switch willingness {
	case core.WillingnessHigh:
		return p.HighFactor
	case core.WillingnessModerate:
		return p.ModerateFactor
	default:
		return p.LowFactor
	}
}

// SkillAffinity is the semantic similarity between a volunteer's skills
// embedding and the request category embedding.
func SkillAffinity(skills, category []float32) float64 {
	return ai.CosineSimilarity(skills, category)
}
