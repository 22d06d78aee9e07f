package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		existing []string
		want     string
	}{
		{name: "empty store", prefix: VolunteerPrefix, existing: nil, want: "VOL_1"},
		{name: "only blanks", prefix: VolunteerPrefix, existing: []string{"", ""}, want: "VOL_1"},
		{name: "sequential", prefix: VolunteerPrefix, existing: []string{"VOL_1", "VOL_2"}, want: "VOL_3"},
		{name: "highest wins over order", prefix: RequestPrefix, existing: []string{"REQ_9", "REQ_2"}, want: "REQ_10"},
		{name: "other prefixes ignored", prefix: RequestPrefix, existing: []string{"VOL_7", "REQ_1"}, want: "REQ_2"},
		{name: "missing separator resets", prefix: VolunteerPrefix, existing: []string{"VOL_4", "VOL5"}, want: "VOL_1"},
		{name: "non numeric suffix resets", prefix: VolunteerPrefix, existing: []string{"VOL_4", "VOL_x"}, want: "VOL_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.prefix, tt.existing))
		})
	}
}
