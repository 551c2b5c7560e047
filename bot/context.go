package bot

import (
	"context"
	"time"
)

// RespondOptions 应答消息的装配结果
type RespondOptions struct {
	DeleteAfter time.Duration
	Buttons     [][]InlineButton
}

// RespondOption mutates RespondOptions.
type RespondOption func(*RespondOptions)

// WithDeleteAfter makes the response self-delete after d. Used for the
// transient error/info convention.
func WithDeleteAfter(d time.Duration) RespondOption {
	return func(o *RespondOptions) { o.DeleteAfter = d }
}

// WithButtons attaches inline button rows to the response.
func WithButtons(rows [][]InlineButton) RespondOption {
	return func(o *RespondOptions) { o.Buttons = rows }
}

// Responder posts replies on behalf of a command invocation. The host
// implementation handles reply threading and delayed self-deletion.
type Responder interface {
	Respond(ctx context.Context, text string, opts *RespondOptions) (*Message, error)
}

// Context is the single argument a command handler receives. It embeds
// the request context so it can be passed straight into Client and
// store calls.
type Context struct {
	context.Context

	Bot   Client
	Texts TextProvider
	Msg   *Message
	// Input 命令名之后的参数原文（已去首尾空白）
	Input string

	responder Responder
}

// NewContext assembles a command context. The host calls this before
// running a handler; tests call it with fakes.
func NewContext(ctx context.Context, client Client, texts TextProvider, responder Responder, msg *Message, input string) *Context {
	return &Context{
		Context:   ctx,
		Bot:       client,
		Texts:     texts,
		Msg:       msg,
		Input:     input,
		responder: responder,
	}
}

// Chat returns the chat the command was invoked in.
func (c *Context) Chat() *Chat { return c.Msg.Chat }

// Author returns the invoking user.
func (c *Context) Author() *User { return c.Msg.From }

// Text renders a localized text for the invoking chat.
func (c *Context) Text(key string, kv ...string) string {
	return c.Texts.Text(c.Msg.Chat.ID, key, kv...)
}

// Respond posts a reply in the invoking chat/thread.
func (c *Context) Respond(text string, opts ...RespondOption) (*Message, error) {
	var o RespondOptions
	for _, opt := range opts {
		opt(&o)
	}
	return c.responder.Respond(c.Context, text, &o)
}
