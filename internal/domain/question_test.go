package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionMatches(t *testing.T) {
	q := &Question{Prompt: "Capital of France?", Answers: []string{"Paris", " lutetia "}}

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"exact", "Paris", true},
		{"case insensitive", "pArIs", true},
		{"surrounding whitespace", "  paris\t", true},
		{"second accepted answer", "Lutetia", true},
		{"accepted answer itself unnormalized", "LUTETIA", true},
		{"wrong answer", "London", false},
		{"substring is not a match", "Par", false},
		{"empty candidate", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, q.Matches(tt.candidate))
		})
	}
}

func TestQuestionAnswer(t *testing.T) {
	q := &Question{Prompt: "2+2?", Answers: []string{"4", "four"}}
	assert.Equal(t, "4", q.Answer())

	empty := &Question{Prompt: "?"}
	assert.Equal(t, "", empty.Answer())
}
