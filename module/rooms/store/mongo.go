package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"RoomsBot/module/rooms/model"
	"RoomsBot/tools/errs"
)

// CollectionName 插件在宿主数据库里的集合名
const CollectionName = "ROOMS"

// Mongo persists chat documents in a MongoDB collection, one document
// per chat.
type Mongo struct {
	coll *mongo.Collection
}

// NewMongo wraps an acquired collection handle.
func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

func (s *Mongo) GetRoom(ctx context.Context, chatID int64, threadID int) (*model.Room, error) {
	key := "topics." + model.TopicKey(threadID)

	res := s.coll.FindOne(ctx,
		bson.M{"chat_id": chatID, key: bson.M{"$exists": true}},
		options.FindOne().SetProjection(bson.M{key: 1}),
	)

	var doc struct {
		Topics map[string]model.Room `bson:"topics"`
	}
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.WrapMsg(err, "decode room document", "chat_id", chatID, "thread_id", threadID)
	}

	room, ok := doc.Topics[model.TopicKey(threadID)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return &room, nil
}

func (s *Mongo) PutRoom(ctx context.Context, chatID int64, chatName string, threadID int, room *model.Room) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"chat_id": chatID},
		bson.M{"$set": bson.M{
			"chat_name":                          chatName,
			"topics." + model.TopicKey(threadID): room,
		}},
		options.Update().SetUpsert(true),
	)
	return errs.WrapMsg(err, "put room", "chat_id", chatID, "thread_id", threadID)
}

func (s *Mongo) SetDescriptionID(ctx context.Context, chatID int64, threadID int, messageID int) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"chat_id": chatID},
		bson.M{"$set": bson.M{
			"topics." + model.TopicKey(threadID) + ".description_id": messageID,
		}},
	)
	return errs.WrapMsg(err, "set description", "chat_id", chatID, "thread_id", threadID)
}

func (s *Mongo) SetWriterMessage(ctx context.Context, chatID int64, threadID int, writerID int64, messageID int) error {
	prefix := "topics." + model.TopicKey(threadID) + ".writers"
	// 定位数组元素用位置操作符 $
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"chat_id": chatID, prefix + ".writer_id": writerID},
		bson.M{"$set": bson.M{prefix + ".$.message_id": messageID}},
	)
	return errs.WrapMsg(err, "set writer message", "chat_id", chatID, "writer_id", writerID)
}

func (s *Mongo) AddWriter(ctx context.Context, chatID int64, threadID int, w model.Writer) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"chat_id": chatID},
		bson.M{"$push": bson.M{
			"topics." + model.TopicKey(threadID) + ".writers": w,
		}},
	)
	return errs.WrapMsg(err, "add writer", "chat_id", chatID, "writer_id", w.WriterID)
}

func (s *Mongo) RemoveRoom(ctx context.Context, chatID int64, threadID int) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"chat_id": chatID},
		bson.M{"$unset": bson.M{"topics." + model.TopicKey(threadID): ""}},
	)
	return errs.WrapMsg(err, "remove room", "chat_id", chatID, "thread_id", threadID)
}

func (s *Mongo) MigrateChat(ctx context.Context, oldChatID, newChatID int64) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"chat_id": oldChatID},
		bson.M{"$set": bson.M{"chat_id": newChatID}},
	)
	return errs.WrapMsg(err, "migrate chat", "old", oldChatID, "new", newChatID)
}

func (s *Mongo) Export(ctx context.Context, chatID int64) (*model.ChatDoc, error) {
	res := s.coll.FindOne(ctx,
		bson.M{"chat_id": chatID},
		options.FindOne().SetProjection(bson.M{"_id": 0}),
	)

	var doc model.ChatDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrChatNotFound
		}
		return nil, errs.WrapMsg(err, "decode chat document", "chat_id", chatID)
	}
	return &doc, nil
}

func (s *Mongo) Restore(ctx context.Context, chatID int64, doc *model.ChatDoc) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"chat_id": chatID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	return errs.WrapMsg(err, "restore chat document", "chat_id", chatID)
}
