package telegram

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscheid92/quizpulse/internal/domain"
)

type stubBot struct {
	sent    []tgbotapi.MessageConfig
	sendErr error
	members map[int64]tgbotapi.ChatMember
}

func (s *stubBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		if s.sendErr != nil {
			return tgbotapi.Message{}, s.sendErr
		}
		s.sent = append(s.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (s *stubBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (s *stubBot) GetChatMember(c tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	return s.members[c.UserID], nil
}

func (s *stubBot) StopReceivingUpdates() {}

func update(chatID, userID int64, username, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID, UserName: username},
			Chat: &tgbotapi.Chat{ID: chatID},
			Text: text,
		},
	}
}

func TestHandleUpdateForwardsGroupMessages(t *testing.T) {
	tr := newWithAPI(&stubBot{}, 100)

	var got []domain.ChatMessage
	tr.OnMessage(func(msg domain.ChatMessage) { got = append(got, msg) })

	tr.handleUpdate(update(100, 7, "alice", "!start"))

	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].From.Name)
	assert.Equal(t, "7", got[0].From.ID)
	assert.Equal(t, "100", got[0].Channel)
	assert.Equal(t, "!start", got[0].Text)
}

func TestHandleUpdateDropsOtherChats(t *testing.T) {
	tr := newWithAPI(&stubBot{}, 100)

	var got []domain.ChatMessage
	tr.OnMessage(func(msg domain.ChatMessage) { got = append(got, msg) })

	tr.handleUpdate(update(999, 7, "alice", "hello"))

	assert.Empty(t, got)
}

func TestHandleUpdateIgnoresNonTextUpdates(t *testing.T) {
	tr := newWithAPI(&stubBot{}, 100)

	var got []domain.ChatMessage
	tr.OnMessage(func(msg domain.ChatMessage) { got = append(got, msg) })

	tr.handleUpdate(tgbotapi.Update{})
	tr.handleUpdate(update(100, 7, "alice", ""))

	assert.Empty(t, got)
}

func TestSendTargetsConfiguredChat(t *testing.T) {
	bot := &stubBot{}
	tr := newWithAPI(bot, 100)

	tr.Send("ignored", "hello")

	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(100), bot.sent[0].ChatID)
	assert.Equal(t, "hello", bot.sent[0].Text)
}

func TestSendPrivateMessagesUserDirectly(t *testing.T) {
	bot := &stubBot{}
	tr := newWithAPI(bot, 100)

	tr.SendPrivate(domain.User{ID: "7", Name: "alice"}, "psst")

	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(7), bot.sent[0].ChatID)
}

func TestIsOperatorChecksAdminStatus(t *testing.T) {
	bot := &stubBot{members: map[int64]tgbotapi.ChatMember{
		1: {Status: "administrator"},
		2: {Status: "creator"},
		3: {Status: "member"},
	}}
	tr := newWithAPI(bot, 100)

	ctx := context.Background()
	assert.True(t, tr.IsOperator(ctx, domain.User{ID: "1"}, ""))
	assert.True(t, tr.IsOperator(ctx, domain.User{ID: "2"}, ""))
	assert.False(t, tr.IsOperator(ctx, domain.User{ID: "3"}, ""))
	assert.False(t, tr.IsOperator(ctx, domain.User{ID: "not-a-number"}, ""))
}
