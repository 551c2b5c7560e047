package bot

import (
	"context"
	"errors"
)

// ErrMessageNotFound is returned by Client implementations when the
// target message does not exist (deleted, never sent, or out of reach).
// Callers branch on it to tell "message gone" apart from transport
// failures; anything else is treated as a real error.
var ErrMessageNotFound = errors.New("bot: message not found")

// SendOptions 发送消息的可选项
type SendOptions struct {
	ThreadID            int // 发到哪个话题；0 为主会话
	Caption             string
	DisableNotification bool
}

// Client is the chat-network client the host lends to its plugins.
// Implementations wrap the actual bot API transport; tests substitute
// an in-memory fake.
type Client interface {
	LeaveChat(ctx context.Context, chatID int64) error

	SendMessage(ctx context.Context, chatID int64, text string, opts *SendOptions) (*Message, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	GetMessage(ctx context.Context, chatID int64, messageID int) (*Message, error)
	SendDocument(ctx context.Context, chatID int64, doc *Document, opts *SendOptions) (*Message, error)
	PinMessage(ctx context.Context, chatID int64, messageID int) error

	CreateForumTopic(ctx context.Context, chatID int64, name string) (*ForumTopic, error)
	EditForumTopic(ctx context.Context, chatID int64, threadID int, name string) error
	DeleteForumTopic(ctx context.Context, chatID int64, threadID int) error

	GetChatMember(ctx context.Context, chatID int64, userID int64) (*ChatMember, error)
	AnswerCallback(ctx context.Context, queryID string, text string) error
}

// TextProvider renders localized text for a chat. Localization itself
// is host-owned; plugins only reference keys. kv are template
// placeholder pairs (name, value, name, value, ...).
type TextProvider interface {
	Text(chatID int64, key string, kv ...string) string
}
