package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"RoomsBot/bot"
	"RoomsBot/logger"
	"RoomsBot/module/rooms/model"
	"RoomsBot/module/rooms/store"
	"RoomsBot/tools/decode"
	"RoomsBot/tools/errs"
	"RoomsBot/tools/safe"
)

// 提示类应答的存活时间
const deleteResponseTime = 15 * time.Second

const (
	callbackPrefix = "rooms_action_"
	callbackRemove = "rooms_action_remove"
	callbackCancel = "rooms_action_cancel"
)

// Rooms turns forum topics into posting boards: one post per writer,
// reposts are backed up privately and dropped, owners rename and
// re-describe their room, topic managers delete it.
type Rooms struct {
	bot.Base

	store store.Store
	cache *roomCache
}

// New builds the plugin; the store is acquired later via OnLoad.
func New(base bot.Base) *Rooms {
	safe.MustNotNil(base.Client, "bot client")
	safe.MustNotNil(base.Texts, "text provider")
	if base.Log == nil {
		base.Log = logger.Named("rooms")
	}
	return &Rooms{Base: base, cache: newRoomCache()}
}

// NewWithStore wires an explicit store. Used by tests and by hosts that
// manage persistence themselves.
func NewWithStore(base bot.Base, s store.Store) *Rooms {
	p := New(base)
	p.store = s
	return p
}

func (p *Rooms) Name() string { return "rooms" }

// ListenerPriority 比常规插件早一步，抢在别的消息逻辑之前
func (p *Rooms) ListenerPriority() int { return 120 }

// OnLoad acquires the plugin's collection from the host database.
func (p *Rooms) OnLoad(ctx context.Context, host bot.Host) error {
	p.store = store.NewMongo(host.Database().Collection(store.CollectionName))
	return nil
}

func (p *Rooms) Commands() []bot.Command {
	return []bot.Command{
		{Name: "newroom", Help: "Create a room in a new forum topic", Run: p.cmdNewRoom},
		{Name: "roomname", Help: "Rename the current room (owner only)", Run: p.cmdRoomName},
		{Name: "roomdesc", Help: "Change the room description (owner only)", Run: p.cmdRoomDesc},
		{Name: "deleteroom", Help: "Delete the current room", Filters: bot.FilterCanManageTopic, Run: p.cmdDeleteRoom},
	}
}

// getRoom 先查缓存，miss 再读库并回填。(nil, nil) 表示该话题不归本插件管。
func (p *Rooms) getRoom(ctx context.Context, chatID int64, threadID int) (*model.Room, error) {
	if r, ok := p.cache.Get(chatID, threadID); ok {
		return r, nil
	}
	r, err := p.store.GetRoom(ctx, chatID, threadID)
	if errors.Is(err, store.ErrRoomNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.cache.Put(chatID, threadID, r)
	return r, nil
}

func (p *Rooms) respondTransient(c *bot.Context, key string) error {
	_, err := c.Respond(c.Text(key), bot.WithDeleteAfter(deleteResponseTime))
	return err
}

func (p *Rooms) cmdNewRoom(c *bot.Context) error {
	chatID := c.Chat().ID
	if !c.Chat().IsForum {
		return p.respondTransient(c, "rooms-non-topic")
	}

	name := c.Input
	if name == "" {
		return p.respondTransient(c, "rooms-name-missing")
	}

	topic, err := p.Client.CreateForumTopic(c, chatID, name)
	if err != nil {
		return errs.WrapMsg(err, "create forum topic", "chat_id", chatID)
	}

	descText := c.Text("rooms-description",
		"room_name", topic.Title,
		"room_desc", c.Text("rooms-standard-description"),
		"username", c.Author().Username,
	)
	desc, err := p.Client.SendMessage(c, chatID, descText, &bot.SendOptions{ThreadID: topic.ID})
	if err != nil {
		return errs.WrapMsg(err, "send room description", "chat_id", chatID, "thread_id", topic.ID)
	}

	room := &model.Room{
		OwnerID:       c.Author().ID,
		DescriptionID: desc.ID,
		Writers:       []model.Writer{},
	}
	if err := p.store.PutRoom(c, chatID, c.Chat().Title, topic.ID, room); err != nil {
		return err
	}
	p.cache.Put(chatID, topic.ID, room)

	p.Log.Info("room created",
		zap.Int64("chat_id", chatID),
		zap.Int("thread_id", topic.ID),
		zap.Int64("owner_id", room.OwnerID))
	return p.respondTransient(c, "rooms-created")
}

func (p *Rooms) cmdRoomName(c *bot.Context) error {
	if !c.Chat().IsForum {
		return p.respondTransient(c, "rooms-non-topic")
	}

	room, err := p.getRoom(c, c.Chat().ID, c.Msg.ThreadID)
	if err != nil {
		return err
	}
	if room == nil {
		return p.respondTransient(c, "rooms-non-room")
	}
	if room.OwnerID != c.Author().ID {
		return p.respondTransient(c, "error-no-rights")
	}

	name := c.Input
	if name == "" {
		return p.respondTransient(c, "rooms-name-missing")
	}

	// 标题只改网络侧，不落库
	if err := p.Client.EditForumTopic(c, c.Chat().ID, c.Msg.ThreadID, name); err != nil {
		return errs.WrapMsg(err, "edit forum topic", "chat_id", c.Chat().ID, "thread_id", c.Msg.ThreadID)
	}
	return nil
}

func (p *Rooms) cmdRoomDesc(c *bot.Context) error {
	chatID := c.Chat().ID
	if !c.Chat().IsForum {
		return p.respondTransient(c, "rooms-non-topic")
	}

	room, err := p.getRoom(c, chatID, c.Msg.ThreadID)
	if err != nil {
		return err
	}
	if room == nil {
		return p.respondTransient(c, "rooms-non-room")
	}
	if room.OwnerID != c.Author().ID {
		return p.respondTransient(c, "error-no-rights")
	}

	desc := c.Input
	if desc == "" {
		return p.respondTransient(c, "rooms-desc-missing")
	}

	text := c.Text("rooms-description", "room_desc", desc, "username", c.Author().Username)

	err = p.Client.EditMessageText(c, chatID, room.DescriptionID, text)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bot.ErrMessageNotFound):
		// 原描述消息没了 → 重建一条并置顶
		return p.recreateDescription(c, room, text)
	default:
		// 限流、权限等瞬时故障不当成“描述丢了”
		return errs.WrapMsg(err, "edit description", "chat_id", chatID, "message_id", room.DescriptionID)
	}
}

func (p *Rooms) recreateDescription(c *bot.Context, room *model.Room, text string) error {
	chatID := c.Chat().ID
	threadID := c.Msg.ThreadID

	msg, err := p.Client.SendMessage(c, chatID, text, &bot.SendOptions{ThreadID: threadID})
	if err != nil {
		return errs.WrapMsg(err, "send new description", "chat_id", chatID, "thread_id", threadID)
	}
	if err := p.Client.PinMessage(c, chatID, msg.ID); err != nil {
		return errs.WrapMsg(err, "pin new description", "chat_id", chatID, "message_id", msg.ID)
	}
	if err := p.store.SetDescriptionID(c, chatID, threadID, msg.ID); err != nil {
		return err
	}
	room.DescriptionID = msg.ID
	p.cache.Put(chatID, threadID, room)
	return nil
}

func (p *Rooms) cmdDeleteRoom(c *bot.Context) error {
	if !c.Chat().IsForum {
		return p.respondTransient(c, "rooms-non-topic")
	}

	_, err := c.Respond(c.Text("rooms-remove-confirm"), bot.WithButtons([][]bot.InlineButton{
		{{Text: c.Text("rooms-delete-button"), CallbackData: callbackRemove}},
		{{Text: c.Text("rooms-cancel-button"), CallbackData: callbackCancel}},
	}))
	return err
}

// OnCallbackQuery drives the deletion confirmation. The privilege is
// re-checked here: callbacks can arrive from a different actor than the
// one who passed the command gate.
func (p *Rooms) OnCallbackQuery(ctx context.Context, q *bot.CallbackQuery) error {
	if !strings.HasPrefix(q.Data, callbackPrefix) {
		return nil
	}

	chat := q.Message.Chat
	threadID := q.Message.ThreadID

	member, err := p.Client.GetChatMember(ctx, chat.ID, q.From.ID)
	if err != nil {
		return errs.WrapMsg(err, "get chat member", "chat_id", chat.ID, "user_id", q.From.ID)
	}
	if !member.CanManageTopics() {
		return p.Client.AnswerCallback(ctx, q.ID, p.Texts.Text(chat.ID, "error-no-rights"))
	}

	room, err := p.getRoom(ctx, chat.ID, threadID)
	if err != nil {
		return err
	}
	if room == nil {
		// 确认框已失效：删掉提示并告知；两个清理互不影响
		return multierr.Append(
			p.Client.DeleteMessage(ctx, chat.ID, q.Message.ID),
			p.Client.AnswerCallback(ctx, q.ID, p.Texts.Text(chat.ID, "rooms-non-room")),
		)
	}

	switch q.Data {
	case callbackCancel:
		return p.Client.DeleteMessage(ctx, chat.ID, q.Message.ID)
	case callbackRemove:
		return p.removeRoom(ctx, chat.ID, threadID)
	}
	return nil
}

// removeRoom deletes the external topic first; only then is the
// persisted entry unset. The unset is idempotent and retried once, so
// a failure between the two steps cannot resurrect the topic.
func (p *Rooms) removeRoom(ctx context.Context, chatID int64, threadID int) error {
	if err := p.Client.DeleteForumTopic(ctx, chatID, threadID); err != nil {
		return errs.WrapMsg(err, "delete forum topic", "chat_id", chatID, "thread_id", threadID)
	}
	p.cache.DeleteTopic(chatID, threadID)

	err := p.store.RemoveRoom(ctx, chatID, threadID)
	if err != nil {
		err = p.store.RemoveRoom(ctx, chatID, threadID)
	}
	if err != nil {
		return errs.WrapMsg(err, "unset room entry", "chat_id", chatID, "thread_id", threadID)
	}

	p.Log.Info("room removed", zap.Int64("chat_id", chatID), zap.Int("thread_id", threadID))
	return nil
}

// OnMessage moderates posts inside managed rooms. Group chats only.
func (p *Rooms) OnMessage(ctx context.Context, m *bot.Message) error {
	if m.Chat == nil || !m.Chat.IsGroup() || m.From == nil {
		return nil
	}

	room, err := p.getRoom(ctx, m.Chat.ID, m.ThreadID)
	if err != nil {
		return err
	}
	if room == nil {
		return nil
	}
	if room.Writers == nil {
		// 老数据没有 writers 字段，懒迁移
		room.Writers = []model.Writer{}
	}

	// 命令和机器人消息不算内容，直接清掉
	if m.IsCommand() || m.From.IsBot {
		return p.Client.DeleteMessage(ctx, m.Chat.ID, m.ID)
	}

	w := room.Writer(m.From.ID)
	if w == nil {
		nw := model.Writer{WriterID: m.From.ID, MessageID: m.ID}
		room.Writers = append(room.Writers, nw)
		return p.store.AddWriter(ctx, m.Chat.ID, m.ThreadID, nw)
	}

	prev, err := p.Client.GetMessage(ctx, m.Chat.ID, w.MessageID)
	if err != nil && !errors.Is(err, bot.ErrMessageNotFound) {
		return errs.WrapMsg(err, "probe writer message", "chat_id", m.Chat.ID, "message_id", w.MessageID)
	}

	if err == nil && prev.ThreadID != 0 {
		// 已有现存发言 → 这条算重发：备份私发给作者，再删掉
		p.sendBackup(ctx, m)
		return p.Client.DeleteMessage(ctx, m.Chat.ID, m.ID)
	}

	// 旧帖已不在话题里 → 新帖顶上
	w.MessageID = m.ID
	return p.store.SetWriterMessage(ctx, m.Chat.ID, m.ThreadID, m.From.ID, m.ID)
}

// sendBackup delivers the rejected post privately as a text file.
// Delivery failures (user blocked the bot etc.) must not stop the
// deletion, so they are logged and swallowed.
func (p *Rooms) sendBackup(ctx context.Context, m *bot.Message) {
	doc := &bot.Document{
		Name: fmt.Sprintf("backup_%s.txt", m.From.Username),
		Data: []byte(m.Text),
	}
	caption := p.Texts.Text(m.Chat.ID, "rooms-backup-message", "username", m.From.Username)

	_, err := p.Client.SendDocument(ctx, m.From.ID, doc, &bot.SendOptions{
		Caption:             caption,
		DisableNotification: true,
	})
	if err != nil {
		p.Log.Info("cannot send backup to user",
			zap.String("username", m.From.Username),
			zap.String("error_type", fmt.Sprintf("%T", err)),
			zap.String("error", err.Error()))
	}
}

// OnChatMigrate carries the chat document over to the new chat id.
func (p *Rooms) OnChatMigrate(ctx context.Context, m *bot.Message) error {
	oldID := m.MigrateFromChatID
	newID := m.Chat.ID
	p.Log.Info("migrating chat", zap.Int64("from", oldID), zap.Int64("to", newID))

	if err := p.store.MigrateChat(ctx, oldID, newID); err != nil {
		return err
	}
	p.cache.Rekey(oldID, newID)
	return nil
}

// OnPluginBackup exports the chat document keyed by the plugin name.
func (p *Rooms) OnPluginBackup(ctx context.Context, chatID int64) (map[string]any, error) {
	p.Log.Info("backing up plugin data", zap.String("plugin", p.Name()), zap.Int64("chat_id", chatID))

	doc, err := p.store.Export(ctx, chatID)
	if errors.Is(err, store.ErrChatNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{p.Name(): doc}, nil
}

// OnPluginRestore merges a previously exported document back in. The
// payload crosses a trust boundary, so it is decoded into the typed
// document first; a shape mismatch is a returned error.
func (p *Rooms) OnPluginRestore(ctx context.Context, chatID int64, data map[string]any) error {
	p.Log.Info("restoring plugin data", zap.String("plugin", p.Name()), zap.Int64("chat_id", chatID))

	raw, ok := data[p.Name()]
	if !ok {
		return nil
	}

	var doc *model.ChatDoc
	switch v := raw.(type) {
	case *model.ChatDoc:
		doc = v
	case map[string]any:
		decoded, err := decode.Map[model.ChatDoc](v)
		if err != nil {
			return errs.WrapMsg(err, "restore: bad payload", "chat_id", chatID)
		}
		doc = decoded
	default:
		return errs.New("restore: unexpected payload type", "type", fmt.Sprintf("%T", raw))
	}
	return p.store.Restore(ctx, chatID, doc)
}
