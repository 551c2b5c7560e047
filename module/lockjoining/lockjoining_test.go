package lockjoining

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"RoomsBot/bot"
)

var (
	_ bot.Plugin             = (*LockJoining)(nil)
	_ bot.ChatActionListener = (*LockJoining)(nil)
	_ bot.Prioritized        = (*LockJoining)(nil)
)

// leaveRecorder fakes only the call this plugin makes; everything else
// inherited from the embedded interface would panic if reached.
type leaveRecorder struct {
	bot.Client
	left []int64
}

func (c *leaveRecorder) LeaveChat(ctx context.Context, chatID int64) error {
	c.left = append(c.left, chatID)
	return nil
}

func newPlugin() (*LockJoining, *leaveRecorder) {
	client := &leaveRecorder{}
	p := New(bot.Base{Client: client, Log: zap.NewNop()})
	return p, client
}

func action(chatID int64, members ...bot.User) *bot.Message {
	return &bot.Message{
		ID:             1,
		Chat:           &bot.Chat{ID: chatID, Type: bot.ChatSupergroup},
		NewChatMembers: members,
	}
}

func TestLeavesWhenAddedItself(t *testing.T) {
	p, client := newPlugin()

	m := action(77, bot.User{ID: 5}, bot.User{ID: 9, IsSelf: true})
	if err := p.OnChatAction(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	if len(client.left) != 1 || client.left[0] != 77 {
		t.Errorf("left = %v, want [77]", client.left)
	}
}

func TestIgnoresOtherJoins(t *testing.T) {
	p, client := newPlugin()

	m := action(77, bot.User{ID: 5}, bot.User{ID: 6})
	if err := p.OnChatAction(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	if len(client.left) != 0 {
		t.Errorf("left = %v, want none", client.left)
	}
}

func TestIgnoresActionsWithoutMembers(t *testing.T) {
	p, client := newPlugin()

	if err := p.OnChatAction(context.Background(), action(77)); err != nil {
		t.Fatal(err)
	}
	if len(client.left) != 0 {
		t.Errorf("left = %v, want none", client.left)
	}
}

func TestDispatchMetadata(t *testing.T) {
	p, _ := newPlugin()
	if p.Name() != "LockJoining" {
		t.Errorf("Name() = %q", p.Name())
	}
	if p.ListenerPriority() != 150 {
		t.Errorf("ListenerPriority() = %d, want 150", p.ListenerPriority())
	}
}
