// Package telegram connects the bot to a Telegram group chat via the Bot API.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pscheid92/quizpulse/internal/domain"
)

// botAPI is the slice of tgbotapi.BotAPI the transport needs, kept narrow
// so tests can stub it.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
	StopReceivingUpdates()
}

type Config struct {
	Token  string
	ChatID int64
}

// Transport is a domain.Transport backed by a Telegram group chat. The
// chat ID doubles as the channel name, and chat administrators are the
// operators.
type Transport struct {
	bot    botAPI
	chatID int64

	mu      sync.Mutex
	handler domain.MessageHandler

	done chan struct{}
}

var _ domain.Transport = (*Transport)(nil)

func New(cfg Config) (*Transport, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return newWithAPI(bot, cfg.ChatID), nil
}

func newWithAPI(bot botAPI, chatID int64) *Transport {
	return &Transport{
		bot:    bot,
		chatID: chatID,
		done:   make(chan struct{}),
	}
}

// ChannelName renders a chat ID the way incoming messages carry it.
func ChannelName(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func (t *Transport) OnMessage(handler domain.MessageHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = handler
}

// Connect starts the long-polling loop. Updates from chats other than the
// configured one are dropped.
func (t *Transport) Connect(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)

	go t.poll(ctx, updates)

	slog.Info("Connected to Telegram", "chat_id", t.chatID)
	return nil
}

func (t *Transport) poll(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			t.handleUpdate(update)
		case <-ctx.Done():
			return
		case <-t.done:
			return
		}
	}
}

func (t *Transport) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}
	if msg.Chat == nil || msg.Chat.ID != t.chatID {
		return
	}

	t.mu.Lock()
	handler := t.handler
	t.mu.Unlock()
	if handler == nil {
		return
	}

	name := msg.From.UserName
	if name == "" {
		name = msg.From.FirstName
	}

	handler(domain.ChatMessage{
		From:    domain.User{ID: strconv.FormatInt(msg.From.ID, 10), Name: name},
		Channel: strconv.FormatInt(msg.Chat.ID, 10),
		Text:    msg.Text,
	})
}

func (t *Transport) Send(_ string, text string) {
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		slog.Warn("Failed to send telegram message", "error", err)
	}
}

// SendPrivate messages the user directly. The user must have started a
// conversation with the bot first; otherwise Telegram rejects the send and
// the mention fallback posts to the group instead.
func (t *Transport) SendPrivate(user domain.User, text string) {
	userID, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		slog.Warn("Invalid telegram user id", "user_id", user.ID, "error", err)
		return
	}

	if _, err := t.bot.Send(tgbotapi.NewMessage(userID, text)); err != nil {
		t.Send("", fmt.Sprintf("@%s %s", user.Name, text))
	}
}

// IsOperator reports whether the user administers the configured chat.
func (t *Transport) IsOperator(_ context.Context, user domain.User, _ string) bool {
	userID, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return false
	}

	member, err := t.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: t.chatID,
			UserID: userID,
		},
	})
	if err != nil {
		slog.Warn("Failed to resolve telegram chat member", "user_id", userID, "error", err)
		return false
	}

	return member.IsCreator() || member.IsAdministrator()
}

func (t *Transport) Close() error {
	select {
	case <-t.done:
		return nil
	default:
		close(t.done)
	}
	t.bot.StopReceivingUpdates()
	return nil
}
