// Package metrics defines the Prometheus metrics of the quiz bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Quiz Metrics
var (
	// QuestionsAsked tracks the total number of questions announced in chat
	QuestionsAsked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_questions_asked_total",
			Help: "Total questions announced in chat",
		},
	)

	// AnswersEvaluated tracks evaluated answers by result (correct/incorrect)
	AnswersEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_answers_evaluated_total",
			Help: "Total answers evaluated by result",
		},
		[]string{"result"},
	)

	// RoundsResolved tracks resolved rounds by outcome (answered/timeout)
	RoundsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_rounds_resolved_total",
			Help: "Total question rounds resolved by outcome",
		},
		[]string{"outcome"},
	)

	// QuizStops tracks quiz stops by reason (manual/inactivity)
	QuizStops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_stops_total",
			Help: "Total quiz stops by reason",
		},
		[]string{"reason"},
	)

	// QuizRunning reports whether a quiz is currently running (0 or 1)
	QuizRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quiz_running",
			Help: "Whether a quiz is currently running (0 or 1)",
		},
	)
)

// Persistence Metrics
var (
	// PersistOpsTotal tracks scoreboard persistence attempts by status
	PersistOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persist_operations_total",
			Help: "Total scoreboard persistence operations by status",
		},
		[]string{"status"},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)
