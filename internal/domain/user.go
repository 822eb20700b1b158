package domain

// User identifies a chat participant as seen by a transport.
// ID is transport-specific (Twitch login, Telegram user id); Name is the
// display name user records are keyed by.
type User struct {
	ID   string
	Name string
}

// UserRecord holds the cumulative counters for one player.
// Invariant: CorrectAnswers <= TotalAnswers.
type UserRecord struct {
	Name           string
	Points         int
	TotalAnswers   int
	CorrectAnswers int
	QuizzesStarted int
	QuizzesStopped int
}
