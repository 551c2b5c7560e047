package rooms

import (
	"sync"

	"RoomsBot/module/rooms/model"
)

// roomCache mirrors persisted rooms per chat/thread. It is read-through
// and write-through: the persisted document stays authoritative, the
// cache is refreshed on every mutation the plugin performs. Entries are
// dropped when their topic is deleted and re-keyed on chat migration;
// growth is otherwise bounded by the number of live rooms.
type roomCache struct {
	mu    sync.RWMutex
	rooms map[int64]map[int]*model.Room
}

func newRoomCache() *roomCache {
	return &roomCache{rooms: make(map[int64]map[int]*model.Room)}
}

func (c *roomCache) Get(chatID int64, threadID int) (*model.Room, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.rooms[chatID][threadID]
	return r, ok
}

func (c *roomCache) Put(chatID int64, threadID int, r *model.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.rooms[chatID]
	if !ok {
		m = make(map[int]*model.Room)
		c.rooms[chatID] = m
	}
	m[threadID] = r
}

// DeleteTopic drops the entry of a removed room.
func (c *roomCache) DeleteTopic(chatID int64, threadID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.rooms[chatID]; ok {
		delete(m, threadID)
		if len(m) == 0 {
			delete(c.rooms, chatID)
		}
	}
}

// Rekey moves all entries of a migrated chat under its new id.
func (c *roomCache) Rekey(oldChatID, newChatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.rooms[oldChatID]; ok {
		delete(c.rooms, oldChatID)
		c.rooms[newChatID] = m
	}
}
