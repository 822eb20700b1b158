package game

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/quizpulse/internal/domain"
	"github.com/pscheid92/quizpulse/internal/metrics"
)

// --- Command types ---

type engineCmd interface{ engineCmd() }

type cmdStartQuiz struct {
	requester *domain.User
}

func (cmdStartQuiz) engineCmd() {}

type cmdStopQuiz struct {
	requester *domain.User
}

func (cmdStopQuiz) engineCmd() {}

type cmdAnswer struct {
	user domain.User
	text string
}

func (cmdAnswer) engineCmd() {}

type cmdForceQuestion struct {
	question *domain.Question
}

func (cmdForceQuestion) engineCmd() {}

type cmdCycleDue struct {
	cycleID uuid.UUID
}

func (cmdCycleDue) engineCmd() {}

type cmdTipDue struct {
	roundID uuid.UUID
}

func (cmdTipDue) engineCmd() {}

type cmdRoundTimeout struct {
	roundID uuid.UUID
}

func (cmdRoundTimeout) engineCmd() {}

type cmdSnapshot struct {
	replyCh chan Snapshot
}

func (cmdSnapshot) engineCmd() {}

type cmdShutdown struct {
	doneCh chan struct{}
}

func (cmdShutdown) engineCmd() {}

// Snapshot is a point-in-time view of the session state, used by the ops
// surface and by tests. Reading it through the actor doubles as a barrier:
// all previously submitted commands have been processed when it returns.
type Snapshot struct {
	Running         bool
	CurrentQuestion *domain.Question
	NoAnswerStreak  int
}

// round is one active question instance. Timers carry the round id so a
// firing that lost the race against cancellation detects it is stale.
type round struct {
	id       uuid.UUID
	question *domain.Question
	tipTimer clockwork.Timer
	endTimer clockwork.Timer
}

// pendingCycle is the armed between-questions delay plus the question it
// will present when due.
type pendingCycle struct {
	id       uuid.UUID
	question *domain.Question
	timer    clockwork.Timer
}

// --- Engine ---

// Engine is the quiz session state machine. A single goroutine drains the
// command channel; chat events and timer expirations both arrive as
// commands, so every transition is serialized. Timer callbacks never touch
// state directly.
type Engine struct {
	cmdCh     chan engineCmd
	transport domain.Transport
	scores    *Scoreboard
	selector  Selector
	loc       domain.Localizer
	clock     clockwork.Clock
	settings  Settings

	running        bool
	current        *round
	next           *pendingCycle
	forced         *domain.Question
	noAnswerStreak int
}

func NewEngine(transport domain.Transport, scores *Scoreboard, selector Selector, loc domain.Localizer, clock clockwork.Clock, settings Settings) *Engine {
	return &Engine{
		cmdCh:     make(chan engineCmd, 256),
		transport: transport,
		scores:    scores,
		selector:  selector,
		loc:       loc,
		clock:     clock,
		settings:  settings.normalized(),
	}
}

// Start launches the actor goroutine.
func (e *Engine) Start() {
	go e.run()
}

// Shutdown drains the actor and stops it. Pending timers are cancelled.
func (e *Engine) Shutdown() {
	doneCh := make(chan struct{})
	e.cmdCh <- cmdShutdown{doneCh: doneCh}
	<-doneCh
}

// --- Public API (all calls are forwarded into the actor) ---

// StartQuiz begins a quiz. A nil requester is an internal start and
// bypasses the operator check; a non-operator requester is silently
// ignored. Starting while running is a no-op.
func (e *Engine) StartQuiz(requester *domain.User) {
	e.cmdCh <- cmdStartQuiz{requester: requester}
}

// StopQuiz ends a running quiz. Same operator rules as StartQuiz.
func (e *Engine) StopQuiz(requester *domain.User) {
	e.cmdCh <- cmdStopQuiz{requester: requester}
}

// SubmitAnswer evaluates free-text input against the active question.
// Ignored while no question is active.
func (e *Engine) SubmitAnswer(user domain.User, text string) {
	e.cmdCh <- cmdAnswer{user: user, text: text}
}

// ForceQuestion overrides pool selection for the next round. Starts the
// quiz internally when idle; replaces the active round when running.
func (e *Engine) ForceQuestion(q *domain.Question) {
	e.cmdCh <- cmdForceQuestion{question: q}
}

// Snapshot returns the current session state.
func (e *Engine) Snapshot() Snapshot {
	replyCh := make(chan Snapshot, 1)
	e.cmdCh <- cmdSnapshot{replyCh: replyCh}
	return <-replyCh
}

// --- Actor loop ---

func (e *Engine) run() {
	ctx := context.Background()
	for cmd := range e.cmdCh {
		switch c := cmd.(type) {
		case cmdStartQuiz:
			e.handleStart(ctx, c.requester)

		case cmdStopQuiz:
			e.handleStop(ctx, c.requester)

		case cmdAnswer:
			e.handleAnswer(ctx, c.user, c.text)

		case cmdForceQuestion:
			e.handleForce(ctx, c.question)

		case cmdCycleDue:
			e.handleCycleDue(c.cycleID)

		case cmdTipDue:
			e.handleTipDue(c.roundID)

		case cmdRoundTimeout:
			e.handleRoundTimeout(ctx, c.roundID)

		case cmdSnapshot:
			snap := Snapshot{Running: e.running, NoAnswerStreak: e.noAnswerStreak}
			if e.current != nil {
				snap.CurrentQuestion = e.current.question
			}
			c.replyCh <- snap

		case cmdShutdown:
			e.cancelCycle()
			e.clearRound()
			close(c.doneCh)
			return
		}
	}
}

func (e *Engine) handleStart(ctx context.Context, requester *domain.User) {
	if e.running {
		return
	}
	if requester != nil && !e.transport.IsOperator(ctx, *requester, e.settings.Channel) {
		slog.Debug("Start rejected, requester is not an operator", "user", requester.Name)
		return
	}

	e.running = true
	e.noAnswerStreak = 0
	metrics.QuizRunning.Set(1)

	if requester != nil {
		e.scores.RecordStarted(requester.Name)
		e.scores.Persist(ctx)
	}

	slog.Info("Quiz started", "channel", e.settings.Channel)
	e.transport.Send(e.settings.Channel, e.loc.T("game.started"))
	e.scheduleCycle(ctx)
}

// scheduleCycle selects the next question and arms the between-questions
// delay. Selection happens up front so pool exhaustion and the inactivity
// limit route to stop without waiting out the delay.
func (e *Engine) scheduleCycle(ctx context.Context) {
	if e.noAnswerStreak >= e.settings.NoAnswerLimit {
		e.handleStop(ctx, nil)
		return
	}

	question := e.forced
	e.forced = nil
	if question == nil {
		var ok bool
		question, ok = e.selector.Next()
		if !ok {
			slog.Info("Question pool exhausted", "channel", e.settings.Channel)
			e.handleStop(ctx, nil)
			return
		}
	}

	cycleID := uuid.New()
	e.next = &pendingCycle{
		id:       cycleID,
		question: question,
		timer: e.clock.AfterFunc(e.settings.TimeBetweenQuestions, func() {
			e.cmdCh <- cmdCycleDue{cycleID: cycleID}
		}),
	}
}

func (e *Engine) handleCycleDue(cycleID uuid.UUID) {
	if !e.running || e.next == nil || e.next.id != cycleID {
		return
	}
	question := e.next.question
	e.next = nil

	roundID := uuid.New()
	e.current = &round{
		id:       roundID,
		question: question,
		tipTimer: e.clock.AfterFunc(e.settings.tipDelay(), func() {
			e.cmdCh <- cmdTipDue{roundID: roundID}
		}),
		endTimer: e.clock.AfterFunc(e.settings.QuestionDuration, func() {
			e.cmdCh <- cmdRoundTimeout{roundID: roundID}
		}),
	}

	metrics.QuestionsAsked.Inc()
	slog.Debug("Question presented", "channel", e.settings.Channel, "round", roundID)
	e.transport.Send(e.settings.Channel, e.loc.T("game.question", question.Prompt))
}

func (e *Engine) handleTipDue(roundID uuid.UUID) {
	if e.current == nil || e.current.id != roundID {
		return
	}
	if tip := e.current.question.Tip; tip != "" {
		e.transport.Send(e.settings.Channel, e.loc.T("game.tip", tip))
	}
}

func (e *Engine) handleRoundTimeout(ctx context.Context, roundID uuid.UUID) {
	if e.current == nil || e.current.id != roundID {
		return
	}
	question := e.current.question

	e.clearRound()
	e.noAnswerStreak++
	metrics.RoundsResolved.WithLabelValues("timeout").Inc()

	slog.Debug("Round timed out", "channel", e.settings.Channel, "streak", e.noAnswerStreak)
	e.transport.Send(e.settings.Channel, e.loc.T("game.timeout", question.Answer()))

	e.scores.Persist(ctx)
	e.scheduleCycle(ctx)
}

func (e *Engine) handleAnswer(ctx context.Context, user domain.User, text string) {
	if e.current == nil {
		return
	}

	if !e.current.question.Matches(text) {
		e.scores.RecordIncorrect(user.Name)
		metrics.AnswersEvaluated.WithLabelValues("incorrect").Inc()
		e.scores.Persist(ctx)
		return
	}

	question := e.current.question
	points := e.scores.RecordCorrect(user.Name)
	metrics.AnswersEvaluated.WithLabelValues("correct").Inc()
	metrics.RoundsResolved.WithLabelValues("answered").Inc()

	e.clearRound()
	e.noAnswerStreak = 0

	slog.Info("Correct answer", "channel", e.settings.Channel, "user", user.Name, "points", points)
	e.transport.Send(e.settings.Channel, e.loc.T("game.correct", user.Name, question.Answer(), points))

	e.scores.Persist(ctx)
	e.scheduleCycle(ctx)
}

func (e *Engine) handleStop(ctx context.Context, requester *domain.User) {
	if !e.running {
		return
	}
	if requester != nil && !e.transport.IsOperator(ctx, *requester, e.settings.Channel) {
		slog.Debug("Stop rejected, requester is not an operator", "user", requester.Name)
		return
	}

	e.cancelCycle()
	e.clearRound()
	e.running = false
	metrics.QuizRunning.Set(0)

	if requester != nil {
		e.scores.RecordStopped(requester.Name)
	}

	// Pool exhaustion and manual stop share the plain message; only the
	// inactivity counter selects the dedicated one.
	if e.noAnswerStreak >= e.settings.NoAnswerLimit {
		metrics.QuizStops.WithLabelValues("inactivity").Inc()
		slog.Info("Quiz stopped due to inactivity", "channel", e.settings.Channel, "streak", e.noAnswerStreak)
		e.transport.Send(e.settings.Channel, e.loc.T("game.stopped_inactive"))
	} else {
		metrics.QuizStops.WithLabelValues("manual").Inc()
		slog.Info("Quiz stopped", "channel", e.settings.Channel)
		e.transport.Send(e.settings.Channel, e.loc.T("game.stopped"))
	}

	e.scores.Persist(ctx)
}

func (e *Engine) handleForce(ctx context.Context, question *domain.Question) {
	if question == nil {
		// Invalid forced selection is an end-of-game condition.
		e.handleStop(ctx, nil)
		return
	}

	e.forced = question
	if !e.running {
		e.handleStart(ctx, nil)
		return
	}

	e.cancelCycle()
	e.clearRound()
	e.scheduleCycle(ctx)
}

// clearRound cancels the round timers and clears the active question.
// Must run before any re-entry into the cycle so a stale timer firing
// finds no matching round id and no-ops.
func (e *Engine) clearRound() {
	if e.current == nil {
		return
	}
	e.current.tipTimer.Stop()
	e.current.endTimer.Stop()
	e.current = nil
}

func (e *Engine) cancelCycle() {
	if e.next == nil {
		return
	}
	e.next.timer.Stop()
	e.next = nil
}
