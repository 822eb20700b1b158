// Package twitchirc connects the bot to a Twitch channel over the
// IRC-over-WebSocket chat interface.
package twitchirc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pscheid92/quizpulse/internal/domain"
	"github.com/pscheid92/quizpulse/internal/platform/retry"
)

const (
	chatURL      = "wss://irc-ws.chat.twitch.tv:443"
	writeTimeout = 5 * time.Second
)

type Config struct {
	Channel   string
	Nick      string
	AuthToken string
	// URL overrides the chat endpoint, used by tests.
	URL string
}

// Transport is a domain.Transport backed by a single Twitch IRC connection.
// Operator status is learned from the badges tag of each PRIVMSG, so a
// moderator is recognized from their first message onward.
type Transport struct {
	cfg Config

	mu        sync.Mutex
	conn      *websocket.Conn
	handler   domain.MessageHandler
	operators map[string]bool

	writeCh chan string
	closed  chan struct{}
}

var _ domain.Transport = (*Transport)(nil)

func New(cfg Config) *Transport {
	if cfg.URL == "" {
		cfg.URL = chatURL
	}
	if !strings.HasPrefix(cfg.Channel, "#") {
		cfg.Channel = "#" + cfg.Channel
	}
	return &Transport{
		cfg:       cfg,
		operators: make(map[string]bool),
		writeCh:   make(chan string, 64),
		closed:    make(chan struct{}),
	}
}

// ChannelName returns the normalized channel the transport joins.
func (t *Transport) ChannelName() string {
	return t.cfg.Channel
}

func (t *Transport) OnMessage(handler domain.MessageHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = handler
}

// Connect dials the chat endpoint and keeps the connection alive until ctx
// is cancelled or Close is called, reconnecting with backoff on failures.
func (t *Transport) Connect(ctx context.Context) error {
	policy := retry.Policy{
		MaxAttempts:    5,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Twitch connection failed, retrying",
				"attempt", attempt,
				"backoff", backoff,
				"error", err,
			)
		},
	}

	if err := retry.Do(ctx, policy, func() error { return t.dial(ctx) }); err != nil {
		return fmt.Errorf("failed to connect to twitch chat: %w", err)
	}

	go t.supervise(ctx)
	return nil
}

func (t *Transport) dial(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.cfg.URL, nil)
	if err != nil {
		return err
	}

	lines := []string{
		"CAP REQ :twitch.tv/tags twitch.tv/commands",
		"PASS " + t.cfg.AuthToken,
		"NICK " + t.cfg.Nick,
		"JOIN " + t.cfg.Channel,
	}
	for _, line := range lines {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			conn.Close()
			return fmt.Errorf("failed to send %q: %w", strings.Fields(line)[0], err)
		}
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	slog.Info("Connected to Twitch chat", "channel", t.cfg.Channel, "nick", t.cfg.Nick)
	return nil
}

// supervise runs the read and write pumps and redials when the read pump
// exits with a connection error.
func (t *Transport) supervise(ctx context.Context) {
	for {
		done := make(chan struct{})
		go t.writePump(done)
		t.readPump()
		close(done)

		select {
		case <-ctx.Done():
			return
		case <-t.closed:
			return
		default:
		}

		slog.Warn("Twitch connection lost, reconnecting")
		policy := retry.Policy{MaxAttempts: 10, InitialBackoff: time.Second, MaxBackoff: time.Minute}
		if err := retry.Do(ctx, policy, func() error { return t.dial(ctx) }); err != nil {
			slog.Error("Giving up on Twitch reconnection", "error", err)
			return
		}
	}
}

func (t *Transport) readPump() {
	conn := t.currentConn()
	if conn == nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		// The server may batch several IRC lines into one frame.
		for _, raw := range strings.Split(string(data), "\r\n") {
			t.handleLine(raw)
		}
	}
}

func (t *Transport) writePump(done chan struct{}) {
	for {
		select {
		case line := <-t.writeCh:
			conn := t.currentConn()
			if conn == nil {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				slog.Warn("Failed to write to Twitch chat", "error", err)
			}
		case <-done:
			return
		}
	}
}

func (t *Transport) handleLine(raw string) {
	msg, err := parseLine(raw)
	if err != nil {
		return
	}

	switch msg.Command {
	case "PING":
		payload := ""
		if len(msg.Params) > 0 {
			payload = " :" + msg.Params[len(msg.Params)-1]
		}
		t.writeCh <- "PONG" + payload
	case "PRIVMSG":
		t.handlePrivmsg(msg)
	case "RECONNECT":
		// The server is about to drop us; supervise redials after the
		// read pump returns.
		if conn := t.currentConn(); conn != nil {
			conn.Close()
		}
	}
}

func (t *Transport) handlePrivmsg(msg message) {
	nick := strings.ToLower(msg.Nick())

	t.mu.Lock()
	t.operators[nick] = msg.IsModerator()
	handler := t.handler
	t.mu.Unlock()

	if handler == nil {
		return
	}

	handler(domain.ChatMessage{
		From:    domain.User{ID: msg.UserID(), Name: msg.DisplayName()},
		Channel: msg.Channel(),
		Text:    msg.Text(),
	})
}

func (t *Transport) Send(channel, text string) {
	select {
	case t.writeCh <- fmt.Sprintf("PRIVMSG %s :%s", channel, text):
	case <-t.closed:
		slog.Debug("Dropping outbound message, transport closed", "channel", channel)
	}
}

// SendPrivate addresses the user directly in the channel. Twitch whispers
// require a verified bot account, so a mention is the portable fallback.
func (t *Transport) SendPrivate(user domain.User, text string) {
	t.Send(t.cfg.Channel, fmt.Sprintf("@%s %s", user.Name, text))
}

func (t *Transport) IsOperator(_ context.Context, user domain.User, _ string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.operators[strings.ToLower(user.Name)]
}

func (t *Transport) Close() error {
	select {
	case <-t.closed:
		return nil
	default:
		close(t.closed)
	}

	if conn := t.currentConn(); conn != nil {
		return conn.Close()
	}
	return nil
}

func (t *Transport) currentConn() *websocket.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}
