package domain

import "context"

// ChatMessage is one inbound line from the chat transport.
type ChatMessage struct {
	From    User
	Channel string
	Text    string
}

// MessageHandler consumes inbound chat messages. Handlers must not block;
// the engine serializes everything behind its own command channel.
type MessageHandler func(msg ChatMessage)

// Transport is the chat collaborator. Send and SendPrivate are
// fire-and-forget: delivery failures are the adapter's concern and are
// never surfaced to the game core.
type Transport interface {
	Connect(ctx context.Context) error
	Close() error
	Send(channel, text string)
	SendPrivate(user User, text string)
	IsOperator(ctx context.Context, user User, channel string) bool
	OnMessage(handler MessageHandler)
}
