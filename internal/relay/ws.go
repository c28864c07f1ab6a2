// internal/relay/ws.go
//
// WebSocket transport for the relay: upgrade, per-connection read and
// write pumps, and room attach/detach. Connection-level errors are
// ordinary leave events; the underlying transport's own liveness
// detection is the only timeout in play.

package relay

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeRoom upgrades the request and binds the connection to the room
// named by the {date} path segment. Blocks until the connection closes.
func (m *Manager) ServeRoom(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "date")
	if key == "" {
		http.Error(w, `{"error":"missing_room"}`, http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Str("room", key).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan any, 16),
	}

	room := m.room(key)
	room.join(c)

	go c.writePump()
	c.readPump(room)

	if room.leave(c) {
		m.drop(key, room)
	}
}

// readPump feeds inbound frames to the room until the connection dies.
func (c *client) readPump(r *Room) {
	defer c.conn.Close()
	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		r.handleMessage(c, data)
	}
}

// writePump drains the send channel onto the wire. Exits when the room
// closes the channel (leave or eviction) or a write fails.
func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
