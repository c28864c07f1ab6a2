// internal/relay/room.go
//
// One Room per game day. A room owns the live connection table and
// nothing else: no persistence, no history. Presence snapshots are
// recomputed from scratch from the connection table every time they
// are sent, so each broadcast is a full-state replacement reflecting
// the table at the instant it was computed.
//
// All mutations for a room are serialized under its mutex; message
// handlers run to completion without blocking (sends to slow clients
// fall into the eviction path rather than waiting).

package relay

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// client is one open connection. user is nil while the connection is
// anonymous (connected but not yet announced via add-user).
type client struct {
	id   string
	conn *websocket.Conn
	send chan any
	user *UserPayload
}

// Room holds the ephemeral state for one game day.
type Room struct {
	key string

	mu      sync.Mutex
	clients map[*client]bool
}

func newRoom(key string) *Room {
	return &Room{
		key:     key,
		clients: make(map[*client]bool),
	}
}

// join adds a connection to the room. Nothing is broadcast: clients
// announce themselves with add-user, which triggers the first snapshot.
func (r *Room) join(c *client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = true
}

// leave removes a connection and rebroadcasts presence to whoever is
// left; the leaver's identity drops out naturally because it is no
// longer enumerable. Reports whether the room is now empty. Safe to
// call for a client that was already evicted.
func (r *Room) leave(c *client) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c]; ok {
		delete(r.clients, c)
		close(c.send)
	}
	if len(r.clients) == 0 {
		return true
	}
	r.broadcastLocked(r.snapshotLocked())
	return false
}

// handleMessage dispatches one inbound frame. Malformed JSON and
// unknown types are dropped with no observable side effect. Each
// typed handler reports whether a presence rebroadcast is required;
// reactions fan out verbatim and never touch presence state.
func (r *Room) handleMessage(c *client, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rebroadcast := false
	switch msg.Type {
	case TypeAddUser:
		rebroadcast = r.addUser(c, msg.Payload)
	case TypeRemoveUser:
		rebroadcast = r.removeUser(c)
	case TypeUpdateCursor:
		rebroadcast = r.updateCursor(c, msg.Payload)
	case TypeReaction:
		r.broadcastLocked(msg)
	default:
		// unknown types are dropped
	}

	if rebroadcast {
		r.broadcastLocked(r.snapshotLocked())
	}
}

// addUser attaches an identity to the sender connection, replacing any
// previous state (including cursor) with the announced payload.
func (r *Room) addUser(c *client, raw json.RawMessage) bool {
	var user UserPayload
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return false
	}
	c.user = &user
	return true
}

// removeUser detaches the sender's identity. The rebroadcast happens
// even if the connection was already anonymous, mirroring the
// unconditional update in the reference client protocol.
func (r *Room) removeUser(c *client) bool {
	c.user = nil
	return true
}

// updateCursor merges a new cursor into the sender's identity state.
// No-op while the connection is anonymous.
func (r *Room) updateCursor(c *client, raw json.RawMessage) bool {
	if c.user == nil {
		return false
	}
	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return false
	}
	cur := p.Cursor
	c.user.Cursor = &cur
	return true
}

// snapshotLocked recomputes the full presence set from the live
// connection table, deduplicated by participant id and sorted for a
// stable wire order. Callers must hold r.mu.
func (r *Room) snapshotLocked() presenceMessage {
	byID := make(map[string]UserPayload)
	for c := range r.clients {
		if c.user != nil {
			byID[c.user.ID] = *c.user
		}
	}
	users := make([]UserPayload, 0, len(byID))
	for _, u := range byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return presenceMessage{
		Type:    TypePresence,
		Payload: presencePayload{Users: users},
	}
}

// broadcastLocked queues a message for every open connection in the
// room, sender included. A client whose send buffer is full is evicted
// rather than blocking the room. Callers must hold r.mu.
func (r *Room) broadcastLocked(msg any) {
	for c := range r.clients {
		select {
		case c.send <- msg:
		default:
			log.Debug().Str("room", r.key).Str("conn", c.id).Msg("evicting slow relay client")
			delete(r.clients, c)
			close(c.send)
		}
	}
}
