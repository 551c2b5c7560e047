package store

import (
	"context"
	"errors"

	"RoomsBot/module/rooms/model"
)

// ErrRoomNotFound 话题不归本插件管，属正常结果而非故障
var ErrRoomNotFound = errors.New("store: room not found")

// ErrChatNotFound 该群从未创建过任何房间
var ErrChatNotFound = errors.New("store: chat not found")

// Store is the persistence boundary of the rooms plugin. The Mongo
// implementation is authoritative in production; Memory backs tests and
// embedded hosts without a database.
type Store interface {
	// GetRoom loads the room of a single topic. Absence is reported
	// as ErrRoomNotFound; decode failures are real errors.
	GetRoom(ctx context.Context, chatID int64, threadID int) (*model.Room, error)

	// PutRoom upserts the chat document, refreshes chat_name and sets
	// the topic entry.
	PutRoom(ctx context.Context, chatID int64, chatName string, threadID int, room *model.Room) error

	// SetDescriptionID rewrites the description message id of a room.
	SetDescriptionID(ctx context.Context, chatID int64, threadID int, messageID int) error

	// SetWriterMessage updates an existing writer entry in place.
	SetWriterMessage(ctx context.Context, chatID int64, threadID int, writerID int64, messageID int) error

	// AddWriter appends a new writer entry.
	AddWriter(ctx context.Context, chatID int64, threadID int, w model.Writer) error

	// RemoveRoom unsets the topic entry. Removing an absent room is a
	// no-op, so the operation can be retried safely.
	RemoveRoom(ctx context.Context, chatID int64, threadID int) error

	// MigrateChat re-keys the chat document to a new chat id.
	MigrateChat(ctx context.Context, oldChatID, newChatID int64) error

	// Export returns the full chat document (without the internal
	// database identifier) for backups.
	Export(ctx context.Context, chatID int64) (*model.ChatDoc, error)

	// Restore upserts a previously exported chat document.
	Restore(ctx context.Context, chatID int64, doc *model.ChatDoc) error
}
