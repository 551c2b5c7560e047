package bot

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Plugin is the minimal contract every plugin fulfils. Everything else
// is an optional capability the host discovers by interface assertion.
type Plugin interface {
	Name() string
}

// Base carries the host-provided collaborators shared by all plugins.
// Embed it in the plugin struct.
type Base struct {
	Client Client
	Texts  TextProvider
	Log    *zap.Logger
}

// Host 插件加载时宿主暴露的资源
type Host interface {
	// Database returns the bot's document database handle.
	Database() *mongo.Database
}

// Loader is implemented by plugins that need setup on load.
type Loader interface {
	OnLoad(ctx context.Context, host Host) error
}

// MessageListener receives every dispatched chat message.
type MessageListener interface {
	OnMessage(ctx context.Context, m *Message) error
}

// ChatActionListener receives service messages (member joins etc.).
type ChatActionListener interface {
	OnChatAction(ctx context.Context, m *Message) error
}

// MigrateListener is notified when a chat is migrated to a new id.
type MigrateListener interface {
	OnChatMigrate(ctx context.Context, m *Message) error
}

// CallbackListener receives inline-button callback queries.
type CallbackListener interface {
	OnCallbackQuery(ctx context.Context, q *CallbackQuery) error
}

// Backuper exports and re-imports the plugin's persisted data for a
// chat. The export is keyed by plugin name.
type Backuper interface {
	OnPluginBackup(ctx context.Context, chatID int64) (map[string]any, error)
	OnPluginRestore(ctx context.Context, chatID int64, data map[string]any) error
}

// Prioritized lets a plugin ask for earlier dispatch; higher runs first.
// Plugins without it run at priority 0.
type Prioritized interface {
	ListenerPriority() int
}

// Filter 宿主在分发命令前强制执行的门槛
type Filter uint

const (
	FilterNone Filter = 0
	// FilterGroup restricts the command to group chats.
	FilterGroup Filter = 1 << iota
	// FilterCanManageTopic requires the invoker to hold the
	// manage-topics privilege.
	FilterCanManageTopic
)

// Command 插件注册的一条命令
type Command struct {
	Name    string
	Help    string
	Filters Filter
	Run     func(c *Context) error
}

// HasCommands is implemented by plugins that register commands.
type HasCommands interface {
	Commands() []Command
}
