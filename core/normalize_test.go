package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{raw: "4.5", want: 4.5},
		{raw: " 3 ", want: 3},
		{raw: "", want: 0},
		{raw: "n/a", want: 0},
		{raw: "NaN", want: 0},
		{raw: "Inf", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.raw))
		})
	}
}

func TestNormalizeVolunteer(t *testing.T) {
	t.Run("nil becomes zero record", func(t *testing.T) {
		v := NormalizeVolunteer(nil)
		require.NotNil(t, v)
		assert.Equal(t, Volunteer{}, *v)
	})

	t.Run("NaN rating becomes zero", func(t *testing.T) {
		in := &Volunteer{ID: "VOL_1", Rating: math.NaN()}
		out := NormalizeVolunteer(in)
		assert.Equal(t, 0.0, out.Rating)
		assert.Equal(t, "VOL_1", out.ID)
	})

	t.Run("returns a copy", func(t *testing.T) {
		in := &Volunteer{Skills: "cooking", Rating: 4}
		out := NormalizeVolunteer(in)
		out.Skills = "changed"
		assert.Equal(t, "cooking", in.Skills)
	})
}

func TestNormalizeHelpRequest(t *testing.T) {
	out := NormalizeHelpRequest(&HelpRequest{ID: "REQ_1", Duration: math.Inf(1)})
	assert.Equal(t, 0.0, out.Duration)
	assert.Equal(t, "REQ_1", out.ID)

	assert.Equal(t, HelpRequest{}, *NormalizeHelpRequest(nil))
}
