package csvfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/poiesic/helpmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const volunteerCSV = `VOL_ID,VolunteerName,ContactInformation,Location,Skills,LanguagesSpoken,PreferredServiceAreas,Rating,Status,TransportationAvailability,WillingnessToTravel
VOL_1,Ana,ana@example.org,Austin,math tutoring,"English,Spanish",education,5,Active,Yes,High
VOL_2,Ben,,Dallas,gardening,French,,not-a-number,Active,No,Low
`

func TestReadVolunteers(t *testing.T) {
	volunteers, err := ReadVolunteers(strings.NewReader(volunteerCSV))
	require.NoError(t, err)
	require.Len(t, volunteers, 2)

	assert.Equal(t, &core.Volunteer{
		ID:                    "VOL_1",
		Name:                  "Ana",
		ContactInformation:    "ana@example.org",
		Location:              "Austin",
		Skills:                "math tutoring",
		LanguagesSpoken:       "English,Spanish",
		PreferredServiceAreas: "education",
		Rating:                5,
		Status:                core.StatusActive,
		Transportation:        core.TransportationYes,
		WillingnessToTravel:   core.WillingnessHigh,
	}, volunteers[0])

	assert.Equal(t, "", volunteers[1].ContactInformation)
	assert.Zero(t, volunteers[1].Rating)
}

func TestReadVolunteers_MissingColumnsAndShortRows(t *testing.T) {
	in := "VOL_ID,Skills,Rating\nVOL_1,cooking\n"
	volunteers, err := ReadVolunteers(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, volunteers, 1)
	assert.Equal(t, "cooking", volunteers[0].Skills)
	assert.Equal(t, "", volunteers[0].Status)
	assert.Zero(t, volunteers[0].Rating)
}

func TestReadVolunteers_Empty(t *testing.T) {
	volunteers, err := ReadVolunteers(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, volunteers)
}

func TestReadVolunteers_Malformed(t *testing.T) {
	_, err := ReadVolunteers(strings.NewReader("VOL_ID,Skills\n\"unterminated,x\n"))
	assert.ErrorIs(t, err, ErrMalformedTable)
}

func TestRequestsRoundTrip(t *testing.T) {
	requests := []*core.HelpRequest{{
		ID:                "REQ_1",
		ExternalID:        "ext-9",
		Category:          "Tutoring",
		RequestType:       core.RequestTypeRemote,
		Subject:           "Algebra",
		Description:       "Needs help with \"quadratics\", weekly",
		LanguagePreferred: "English",
		Duration:          1.5,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteRequests(&buf, requests))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.Equal(t, strings.Join(RequestHeader, ","), header)

	decoded, err := ReadRequests(&buf)
	require.NoError(t, err)
	assert.Equal(t, requests, decoded)
}

func TestWriteVolunteers_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVolunteers(&buf, []*core.Volunteer{{ID: "VOL_1", Rating: 4.5}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(VolunteerHeader, ","), lines[0])
	assert.Equal(t, "VOL_1,,,,,,,4.5,,,", lines[1])
}
