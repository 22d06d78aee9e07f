package storage

import (
	"testing"

	"github.com/poiesic/helpmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolunteerRoundTrip(t *testing.T) {
	v := &core.Volunteer{
		ID:                    "VOL_7",
		Name:                  "Ana Ruiz",
		ContactInformation:    "ana@example.org",
		Location:              "Austin",
		Skills:                "math tutoring",
		LanguagesSpoken:       "English,Spanish",
		PreferredServiceAreas: "education",
		Rating:                4.5,
		Status:                core.StatusActive,
		Transportation:        core.TransportationYes,
		WillingnessToTravel:   core.WillingnessHigh,
	}

	decoded, err := UnmarshalVolunteer(MarshalVolunteer(v))
	require.NoError(t, err)
	assert.Equal(t, v, decoded)
}

func TestHelpRequestRoundTrip(t *testing.T) {
	r := &core.HelpRequest{
		ID:                "REQ_3",
		Category:          "Tutoring",
		Location:          "Austin",
		RequestType:       core.RequestTypeRemote,
		Subject:           "Algebra help",
		Description:       "Weekly sessions for a ninth grader",
		LanguagePreferred: "English",
		Status:            "Open",
		Duration:          2.5,
	}

	decoded, err := UnmarshalHelpRequest(MarshalHelpRequest(r))
	require.NoError(t, err)
	assert.Equal(t, r, decoded)
}

func TestEmptyRecordsRoundTrip(t *testing.T) {
	v, err := UnmarshalVolunteer(MarshalVolunteer(&core.Volunteer{}))
	require.NoError(t, err)
	assert.Equal(t, &core.Volunteer{}, v)
}

func TestUnmarshalRecord_Invalid(t *testing.T) {
	_, err := UnmarshalVolunteer(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)

	data := MarshalHelpRequest(&core.HelpRequest{ID: "REQ_1", Subject: "groceries"})
	_, err = UnmarshalHelpRequest(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestVectorRoundTrip(t *testing.T) {
	vector := []float32{0.25, -1, 0, 3.5e-4}

	decoded, err := UnmarshalVector(MarshalVector(vector))
	require.NoError(t, err)
	assert.Equal(t, vector, decoded)

	empty, err := UnmarshalVector(MarshalVector(nil))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUnmarshalVector_Truncated(t *testing.T) {
	data := MarshalVector([]float32{1, 2, 3, 4})
	_, err := UnmarshalVector(data[:2])
	assert.ErrorIs(t, err, ErrTruncatedData)

	_, err = UnmarshalVector(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
