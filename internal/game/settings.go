package game

import "time"

const (
	// minQuestionDuration is the enforced floor for a round's total window.
	minQuestionDuration = 10 * time.Second

	defaultQuestionDuration     = 40 * time.Second
	defaultTimeBetweenQuestions = 15 * time.Second
	defaultTimeBeforeTip        = 10 * time.Second
	defaultNoAnswerLimit        = 8
)

// Settings carries the timing and inactivity policy for one engine.
type Settings struct {
	// Channel is the chat channel all announcements go to.
	Channel string

	// QuestionDuration is the total answer window per round.
	// Values below the 10s floor are clamped up.
	QuestionDuration time.Duration

	// TimeBetweenQuestions is the delay before a selected question is presented.
	TimeBetweenQuestions time.Duration

	// TimeBeforeTip is how long before the round timeout the tip is revealed.
	// Clamped to half the question duration when configured larger.
	TimeBeforeTip time.Duration

	// NoAnswerLimit is the number of consecutive unanswered rounds after
	// which the quiz force-stops.
	NoAnswerLimit int
}

// normalized returns a copy with defaults applied and clamps enforced.
func (s Settings) normalized() Settings {
	if s.QuestionDuration <= 0 {
		s.QuestionDuration = defaultQuestionDuration
	}
	if s.QuestionDuration < minQuestionDuration {
		s.QuestionDuration = minQuestionDuration
	}
	if s.TimeBetweenQuestions <= 0 {
		s.TimeBetweenQuestions = defaultTimeBetweenQuestions
	}
	if s.TimeBeforeTip <= 0 {
		s.TimeBeforeTip = defaultTimeBeforeTip
	}
	if s.TimeBeforeTip > s.QuestionDuration {
		s.TimeBeforeTip = s.QuestionDuration / 2
	}
	if s.NoAnswerLimit <= 0 {
		s.NoAnswerLimit = defaultNoAnswerLimit
	}
	return s
}

// tipDelay is the time from question presentation until the tip reveal.
func (s Settings) tipDelay() time.Duration {
	return s.QuestionDuration - s.TimeBeforeTip
}
