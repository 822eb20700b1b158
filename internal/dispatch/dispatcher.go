// Package dispatch routes inbound chat lines to the game engine.
//
// Lines starting with the command prefix are tokenized into a command and
// arguments; everything else is treated as a free-text answer. Unknown
// commands are ignored on purpose, and privileged commands fail without
// any feedback when the invoker is not a channel operator.
package dispatch

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pscheid92/quizpulse/internal/domain"
)

const defaultTopSize = 5

// Engine is the subset of game engine operations the dispatcher drives.
type Engine interface {
	StartQuiz(requester *domain.User)
	StopQuiz(requester *domain.User)
	SubmitAnswer(user domain.User, text string)
	ForceQuestion(q *domain.Question)
}

// Scoreboard is the read side used for stats and rankings.
type Scoreboard interface {
	Lookup(name string) (domain.UserRecord, bool)
	Top(n int) []domain.UserRecord
}

type Dispatcher struct {
	prefix    string
	channel   string
	engine    Engine
	scores    Scoreboard
	transport domain.Transport
	loc       domain.Localizer
	pool      []domain.Question
}

func New(prefix, channel string, engine Engine, scores Scoreboard, transport domain.Transport, loc domain.Localizer, pool []domain.Question) *Dispatcher {
	if prefix == "" {
		prefix = "!"
	}
	return &Dispatcher{
		prefix:    prefix,
		channel:   channel,
		engine:    engine,
		scores:    scores,
		transport: transport,
		loc:       loc,
		pool:      pool,
	}
}

// HandleMessage classifies one inbound line as command or answer.
// Safe to register directly as the transport's message handler.
func (d *Dispatcher) HandleMessage(msg domain.ChatMessage) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if !strings.HasPrefix(text, d.prefix) {
		d.engine.SubmitAnswer(msg.From, text)
		return
	}

	fields := strings.Fields(text[len(d.prefix):])
	if len(fields) == 0 {
		return
	}
	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "start":
		d.engine.StartQuiz(&msg.From)
	case "stop":
		d.engine.StopQuiz(&msg.From)
	case "ask":
		d.handleAsk(msg.From, args)
	case "lang":
		d.handleLang(msg.From, args)
	case "stats":
		d.handleStats(msg.From, args)
	case "top":
		d.handleTop(msg.From, args)
	case "say":
		d.handleSay(msg.From, args)
	case "help":
		d.handleHelp(msg.From, args)
	default:
		// Unrecognized commands are dropped without feedback.
		slog.Debug("Ignoring unknown command", "command", command, "user", msg.From.Name)
	}
}

// handleAsk forces the 1-based pool entry n into play. An out-of-range
// index is a no-question condition and routes to stop.
func (d *Dispatcher) handleAsk(user domain.User, args []string) {
	if !d.isOperator(user) || len(args) == 0 {
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}
	if n < 1 || n > len(d.pool) {
		slog.Debug("Forced question index out of range", "index", n, "pool", len(d.pool))
		d.engine.ForceQuestion(nil)
		return
	}
	d.engine.ForceQuestion(&d.pool[n-1])
}

func (d *Dispatcher) handleLang(user domain.User, args []string) {
	if !d.isOperator(user) {
		return
	}
	codes := strings.Join(d.loc.Locales(), ", ")
	if len(args) == 0 {
		d.transport.SendPrivate(user, d.loc.T("lang.help", codes))
		return
	}
	if err := d.loc.SetLocale(args[0]); err != nil {
		d.transport.SendPrivate(user, d.loc.T("lang.help", codes))
		return
	}
	d.transport.Send(d.channel, d.loc.T("lang.changed", args[0]))
}

func (d *Dispatcher) handleStats(user domain.User, args []string) {
	name := user.Name
	if len(args) > 0 {
		name = args[0]
	}
	rec, ok := d.scores.Lookup(name)
	if !ok {
		d.transport.SendPrivate(user, d.loc.T("stats.unknown", name))
		return
	}
	d.transport.SendPrivate(user, d.loc.T("stats.user",
		rec.Name, rec.Points, rec.CorrectAnswers, rec.TotalAnswers, rec.QuizzesStarted, rec.QuizzesStopped))
}

// handleTop posts the ranking to the channel for operators and privately
// otherwise. An invoker the transport cannot vouch for counts as
// non-operator rather than failing.
func (d *Dispatcher) handleTop(user domain.User, args []string) {
	n := defaultTopSize
	if len(args) > 0 {
		if parsed, err := strconv.Atoi(args[0]); err == nil && parsed > 0 {
			n = parsed
		}
	}

	ranked := d.scores.Top(n)
	lines := make([]string, 0, len(ranked)+1)
	lines = append(lines, d.loc.T("top.header", len(ranked)))
	for i, rec := range ranked {
		lines = append(lines, d.loc.T("top.entry", i+1, rec.Name, rec.Points))
	}

	if d.isOperator(user) {
		for _, line := range lines {
			d.transport.Send(d.channel, line)
		}
		return
	}
	for _, line := range lines {
		d.transport.SendPrivate(user, line)
	}
}

func (d *Dispatcher) handleSay(user domain.User, args []string) {
	if !d.isOperator(user) || len(args) == 0 {
		return
	}
	d.transport.Send(d.channel, strings.Join(args, " "))
}

func (d *Dispatcher) handleHelp(user domain.User, args []string) {
	key := "help.general"
	if len(args) > 0 {
		switch topic := strings.ToLower(args[0]); topic {
		case "start", "stop", "ask", "lang", "stats", "top", "say":
			key = "help." + topic
		}
	}
	d.transport.SendPrivate(user, d.loc.T(key, d.prefix))
}

func (d *Dispatcher) isOperator(user domain.User) bool {
	return d.transport.IsOperator(context.Background(), user, d.channel)
}
