package matching

import (
	"testing"

	"github.com/poiesic/helpmatch/core"
	"github.com/stretchr/testify/assert"
)

func TestLanguageMatch(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		spoken    string
		want      float64
	}{
		{"member of list", "English", "English,Spanish", 1},
		{"last in list", "Spanish", "English,Spanish", 1},
		{"absent", "French", "English,Spanish", 0},
		{"case sensitive", "english", "English", 0},
		{"substring counts", "En", "English", 1},
		{"empty preference matches", "", "French", 1},
		{"empty spoken", "English", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LanguageMatch(tt.preferred, tt.spoken))
		})
	}
}

func TestLocationPolicy_Remote(t *testing.T) {
	policy := DefaultLocationPolicy()
	req := &core.HelpRequest{RequestType: core.RequestTypeRemote}

	for _, transport := range []string{core.TransportationYes, core.TransportationNo, ""} {
		for _, willingness := range []string{core.WillingnessHigh, core.WillingnessModerate, core.WillingnessLow, ""} {
			v := &core.Volunteer{Transportation: transport, WillingnessToTravel: willingness}
			assert.Equal(t, 1.0, policy.Score(req, v), "transport=%q willingness=%q", transport, willingness)
		}
	}
}

func TestLocationPolicy_InPerson(t *testing.T) {
	policy := DefaultLocationPolicy()
	req := &core.HelpRequest{RequestType: core.RequestTypeInPerson}

	tests := []struct {
		transport   string
		willingness string
		want        float64
	}{
		{core.TransportationYes, core.WillingnessHigh, 1.0}, // 1.2 capped
		{core.TransportationYes, core.WillingnessModerate, 1.0},
		{core.TransportationYes, core.WillingnessLow, 0.8},
		{core.TransportationNo, core.WillingnessHigh, 0.36},
		{core.TransportationNo, core.WillingnessModerate, 0.3},
		{core.TransportationNo, core.WillingnessLow, 0.24},
		{core.TransportationNo, "", 0.24},
		{"", "Sometimes", 0.24},
	}

	for _, tt := range tests {
		v := &core.Volunteer{Transportation: tt.transport, WillingnessToTravel: tt.willingness}
		assert.InDelta(t, tt.want, policy.Score(req, v), 1e-9, "transport=%q willingness=%q", tt.transport, tt.willingness)
	}
}

func TestLocationPolicy_BestBeatsWorst(t *testing.T) {
	policy := DefaultLocationPolicy()
	req := &core.HelpRequest{RequestType: core.RequestTypeInPerson}

	best := policy.Score(req, &core.Volunteer{Transportation: core.TransportationYes, WillingnessToTravel: core.WillingnessHigh})
	worst := policy.Score(req, &core.Volunteer{Transportation: core.TransportationNo, WillingnessToTravel: core.WillingnessLow})

	assert.LessOrEqual(t, best, 1.0)
	assert.GreaterOrEqual(t, best, worst)
	assert.Greater(t, worst, 0.0)
}

func TestLocationPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultLocationPolicy().Validate())

	bad := DefaultLocationPolicy()
	bad.PartialScore = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidLocationPolicy)

	bad = DefaultLocationPolicy()
	bad.LowFactor = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidLocationPolicy)

	bad = DefaultLocationPolicy()
	bad.Cap = 1.5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidLocationPolicy)
}

func TestSkillAffinity(t *testing.T) {
	assert.InDelta(t, 1.0, SkillAffinity([]float32{1, 1}, []float32{2, 2}), 1e-6)
	assert.Equal(t, 0.0, SkillAffinity([]float32{0, 0}, []float32{1, 0}))
}
