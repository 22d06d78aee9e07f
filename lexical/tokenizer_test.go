package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "case folding", text: "Math TUTORING", want: []string{"math", "tutoring"}},
		{name: "stop words removed", text: "help with the garden", want: []string{"help", "garden"}},
		{name: "punctuation splits", text: "first-aid, CPR; driving.", want: []string{"aid", "cpr", "driving"}},
		{name: "single characters dropped", text: "a b c dd", want: []string{"dd"}},
		{name: "digits kept", text: "grade 10 math", want: []string{"grade", "10", "math"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("the of and"))
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("the"))
	assert.False(t, IsStopWord("tutoring"))
}
