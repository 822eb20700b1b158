package domain

import "strings"

// Question is one entry of the question pool. Immutable after load.
type Question struct {
	Prompt  string
	Answers []string
	Tip     string
}

// Matches reports whether candidate equals any accepted answer.
// Case and surrounding whitespace are ignored on both sides.
func (q *Question) Matches(candidate string) bool {
	normalized := normalizeAnswer(candidate)
	if normalized == "" {
		return false
	}
	for _, answer := range q.Answers {
		if normalizeAnswer(answer) == normalized {
			return true
		}
	}
	return false
}

// Answer returns the canonical (first) accepted answer for reveal messages.
func (q *Question) Answer() string {
	if len(q.Answers) == 0 {
		return ""
	}
	return q.Answers[0]
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
