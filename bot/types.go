package bot

// ChatType 会话类型
type ChatType string

const (
	ChatPrivate    ChatType = "private"
	ChatGroup      ChatType = "group"
	ChatSupergroup ChatType = "supergroup"
	ChatChannel    ChatType = "channel"
)

// Chat 会话元数据（由宿主在分发前填好）
type Chat struct {
	ID      int64
	Title   string
	Type    ChatType
	IsForum bool // 是否开启了话题（forum topics）
}

// IsGroup reports whether the chat is a group or supergroup.
func (c *Chat) IsGroup() bool {
	return c.Type == ChatGroup || c.Type == ChatSupergroup
}

// User 发消息的账号
type User struct {
	ID       int64
	Username string
	IsBot    bool
	IsSelf   bool // 是否是本 bot 自己
}

// Message is a single incoming or sent chat message. ThreadID is the
// forum-topic thread the message lives in; 0 means the general chat.
type Message struct {
	ID       int
	Chat     *Chat
	From     *User
	ThreadID int
	Text     string

	// 事件字段（普通消息为空）
	NewChatMembers    []User
	MigrateFromChatID int64
}

// IsCommand reports whether the message text invokes a bot command.
func (m *Message) IsCommand() bool {
	return len(m.Text) > 0 && m.Text[0] == '/'
}

// ForumTopic 新建话题后网络侧返回的元数据
type ForumTopic struct {
	ID    int
	Title string
}

// Privileges 群管理权限位（只建模插件用到的）
type Privileges struct {
	CanManageTopics bool
}

// ChatMember 群成员及其权限；普通成员 Privileges 为 nil
type ChatMember struct {
	User       *User
	Privileges *Privileges
}

// CanManageTopics reports whether the member may manage forum topics.
func (m *ChatMember) CanManageTopics() bool {
	return m != nil && m.Privileges != nil && m.Privileges.CanManageTopics
}

// CallbackQuery 按钮回调；Message 是带按钮的那条消息
type CallbackQuery struct {
	ID      string
	Data    string
	From    *User
	Message *Message
}

// Document 以文件形式发送的附件
type Document struct {
	Name string
	Data []byte
}

// InlineButton 内联按钮
type InlineButton struct {
	Text         string
	CallbackData string
}
