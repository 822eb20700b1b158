package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettingsNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{
			name: "zero values get defaults",
			in:   Settings{},
			want: Settings{
				QuestionDuration:     40 * time.Second,
				TimeBetweenQuestions: 15 * time.Second,
				TimeBeforeTip:        10 * time.Second,
				NoAnswerLimit:        8,
			},
		},
		{
			name: "duration below floor is clamped up",
			in:   Settings{QuestionDuration: 3 * time.Second},
			want: Settings{
				QuestionDuration:     10 * time.Second,
				TimeBetweenQuestions: 15 * time.Second,
				TimeBeforeTip:        10 * time.Second,
				NoAnswerLimit:        8,
			},
		},
		{
			name: "tip lead larger than duration is clamped to half",
			in:   Settings{QuestionDuration: 20 * time.Second, TimeBeforeTip: 30 * time.Second},
			want: Settings{
				QuestionDuration:     20 * time.Second,
				TimeBetweenQuestions: 15 * time.Second,
				TimeBeforeTip:        10 * time.Second,
				NoAnswerLimit:        8,
			},
		},
		{
			name: "valid values pass through",
			in: Settings{
				QuestionDuration:     60 * time.Second,
				TimeBetweenQuestions: 5 * time.Second,
				TimeBeforeTip:        20 * time.Second,
				NoAnswerLimit:        3,
			},
			want: Settings{
				QuestionDuration:     60 * time.Second,
				TimeBetweenQuestions: 5 * time.Second,
				TimeBeforeTip:        20 * time.Second,
				NoAnswerLimit:        3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.normalized()
			assert.Equal(t, tt.want.QuestionDuration, got.QuestionDuration)
			assert.Equal(t, tt.want.TimeBetweenQuestions, got.TimeBetweenQuestions)
			assert.Equal(t, tt.want.TimeBeforeTip, got.TimeBeforeTip)
			assert.Equal(t, tt.want.NoAnswerLimit, got.NoAnswerLimit)
		})
	}
}

func TestSettingsClampFloorForAnyShortDuration(t *testing.T) {
	// Every configured duration below the floor ends up exactly at it.
	for _, d := range []time.Duration{time.Millisecond, time.Second, 9999 * time.Millisecond} {
		got := Settings{QuestionDuration: d}.normalized()
		assert.Equal(t, minQuestionDuration, got.QuestionDuration, "duration %v", d)
	}
}

func TestSettingsTipDelay(t *testing.T) {
	s := Settings{QuestionDuration: 30 * time.Second, TimeBeforeTip: 10 * time.Second}.normalized()
	assert.Equal(t, 20*time.Second, s.tipDelay())
}
