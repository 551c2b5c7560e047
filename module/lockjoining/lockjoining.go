package lockjoining

import (
	"context"

	"go.uber.org/zap"

	"RoomsBot/bot"
	"RoomsBot/logger"
	"RoomsBot/tools/safe"
)

// LockJoining makes the bot leave any chat it is added to. Unload the
// plugin when the bot should be allowed into new chats.
type LockJoining struct {
	bot.Base
}

// New builds the plugin.
func New(base bot.Base) *LockJoining {
	safe.MustNotNil(base.Client, "bot client")
	if base.Log == nil {
		base.Log = logger.Named("lockjoining")
	}
	return &LockJoining{Base: base}
}

func (p *LockJoining) Name() string { return "LockJoining" }

// ListenerPriority 要抢在其他成员变动逻辑之前
func (p *LockJoining) ListenerPriority() int { return 150 }

// OnChatAction leaves the chat as soon as the bot itself shows up in
// the new-member list.
func (p *LockJoining) OnChatAction(ctx context.Context, m *bot.Message) error {
	for _, member := range m.NewChatMembers {
		if member.IsSelf {
			p.Log.Info("added to chat, leaving", zap.Int64("chat_id", m.Chat.ID))
			return p.Client.LeaveChat(ctx, m.Chat.ID)
		}
	}
	return nil
}
