// internal/relay/manager.go
//
// Manager keys rooms by date so each game day is its own isolated
// channel. Rooms are created lazily on first connection and dropped
// again once the last connection leaves; there is no explicit
// create/destroy and no cross-room shared state.

package relay

import "sync"

// Manager holds the live set of rooms.
type Manager struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewManager constructs an empty Manager.
func NewManager() *Manager {
	return &Manager{rooms: make(map[string]*Room)}
}

// room returns the room for a key, creating it if needed.
func (m *Manager) room(key string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[key]; ok {
		return r
	}
	r := newRoom(key)
	m.rooms[key] = r
	return r
}

// drop removes a room from the table if it is still empty. A client
// may have joined between the caller's emptiness check and this call,
// so the count is re-checked under both locks.
func (m *Manager) drop(key string, r *Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rooms[key] != r {
		return
	}
	r.mu.Lock()
	n := len(r.clients)
	r.mu.Unlock()
	if n == 0 {
		delete(m.rooms, key)
	}
}

// RoomCount reports the number of live rooms (diagnostics).
func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}
