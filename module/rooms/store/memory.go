package store

import (
	"context"
	"sync"

	"RoomsBot/module/rooms/model"
)

// Memory is an in-memory Store. It backs the test suite and hosts that
// run without a database; documents are copied on the way in and out so
// callers never alias internal state.
type Memory struct {
	mu    sync.RWMutex
	chats map[int64]*model.ChatDoc
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{chats: make(map[int64]*model.ChatDoc)}
}

func copyRoom(r *model.Room) *model.Room {
	cp := *r
	cp.Writers = append([]model.Writer(nil), r.Writers...)
	return &cp
}

func copyDoc(d *model.ChatDoc) *model.ChatDoc {
	cp := *d
	cp.Topics = make(map[string]model.Room, len(d.Topics))
	for k, r := range d.Topics {
		cp.Topics[k] = *copyRoom(&r)
	}
	return &cp
}

func (s *Memory) room(chatID int64, threadID int) (*model.ChatDoc, model.Room, bool) {
	doc, ok := s.chats[chatID]
	if !ok {
		return nil, model.Room{}, false
	}
	r, ok := doc.Topics[model.TopicKey(threadID)]
	return doc, r, ok
}

func (s *Memory) GetRoom(ctx context.Context, chatID int64, threadID int) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, r, ok := s.room(chatID, threadID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return copyRoom(&r), nil
}

func (s *Memory) PutRoom(ctx context.Context, chatID int64, chatName string, threadID int, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.chats[chatID]
	if !ok {
		doc = &model.ChatDoc{ChatID: chatID, Topics: make(map[string]model.Room)}
		s.chats[chatID] = doc
	}
	doc.ChatName = chatName
	doc.Topics[model.TopicKey(threadID)] = *copyRoom(room)
	return nil
}

func (s *Memory) SetDescriptionID(ctx context.Context, chatID int64, threadID int, messageID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, r, ok := s.room(chatID, threadID)
	if !ok {
		return nil
	}
	r.DescriptionID = messageID
	doc.Topics[model.TopicKey(threadID)] = r
	return nil
}

func (s *Memory) SetWriterMessage(ctx context.Context, chatID int64, threadID int, writerID int64, messageID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, r, ok := s.room(chatID, threadID)
	if !ok {
		return nil
	}
	for i := range r.Writers {
		if r.Writers[i].WriterID == writerID {
			r.Writers[i].MessageID = messageID
			break
		}
	}
	doc.Topics[model.TopicKey(threadID)] = r
	return nil
}

func (s *Memory) AddWriter(ctx context.Context, chatID int64, threadID int, w model.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, r, ok := s.room(chatID, threadID)
	if !ok {
		return nil
	}
	r.Writers = append(append([]model.Writer(nil), r.Writers...), w)
	doc.Topics[model.TopicKey(threadID)] = r
	return nil
}

func (s *Memory) RemoveRoom(ctx context.Context, chatID int64, threadID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.chats[chatID]; ok {
		delete(doc.Topics, model.TopicKey(threadID))
	}
	return nil
}

func (s *Memory) MigrateChat(ctx context.Context, oldChatID, newChatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.chats[oldChatID]
	if !ok {
		return nil
	}
	delete(s.chats, oldChatID)
	doc.ChatID = newChatID
	s.chats[newChatID] = doc
	return nil
}

func (s *Memory) Export(ctx context.Context, chatID int64) (*model.ChatDoc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.chats[chatID]
	if !ok {
		return nil, ErrChatNotFound
	}
	return copyDoc(doc), nil
}

func (s *Memory) Restore(ctx context.Context, chatID int64, doc *model.ChatDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := copyDoc(doc)
	cp.ChatID = chatID
	if cp.Topics == nil {
		cp.Topics = make(map[string]model.Room)
	}
	s.chats[chatID] = cp
	return nil
}
