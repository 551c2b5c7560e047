package model

import "strconv"

// Writer 某个话题里一位成员的“唯一现存发言”
type Writer struct {
	WriterID  int64 `bson:"writer_id"`  // 发言人
	MessageID int   `bson:"message_id"` // 其最新未删发言的消息ID；重发时原地更新
}

// Room 一个话题板（forum topic）的持久化数据
type Room struct {
	OwnerID       int64    `bson:"owner_id"`       // 创建者，建成后不可变
	DescriptionID int      `bson:"description_id"` // 描述消息的ID，重建描述时改写
	Writers       []Writer `bson:"writers"`        // 插入序 = 首次发言序；同一 writer_id 至多一条
}

// Writer returns the entry for the given writer id, or nil.
func (r *Room) Writer(writerID int64) *Writer {
	for i := range r.Writers {
		if r.Writers[i].WriterID == writerID {
			return &r.Writers[i]
		}
	}
	return nil
}

// ChatDoc 每个群一份的聊天文档；topics 以话题 thread id 的十进制串为键
type ChatDoc struct {
	ChatID   int64           `bson:"chat_id"`
	ChatName string          `bson:"chat_name"`
	Topics   map[string]Room `bson:"topics"`
}

// TopicKey converts a thread id into its document key.
func TopicKey(threadID int) string {
	return strconv.Itoa(threadID)
}
