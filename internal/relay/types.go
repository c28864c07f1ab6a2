// internal/relay/types.go
//
// Wire types for the presence relay. Messages are JSON text frames of
// the shape {type, payload}; the payload is kept raw until the type is
// known so unknown or malformed frames can be dropped without side
// effects.

package relay

import "encoding/json"

// Message types accepted from clients. "presence" is outbound only.
const (
	TypeAddUser      = "add-user"
	TypeRemoveUser   = "remove-user"
	TypeUpdateCursor = "update-cursor"
	TypeReaction     = "reaction"
	TypePresence     = "presence"
)

// Cursor is a live pointer position on the shared board.
type Cursor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UserPayload is one identified participant as broadcast in presence
// snapshots. It exists only while the owning connection is open.
type UserPayload struct {
	ID        string  `json:"id"`
	AvatarURL string  `json:"avatarUrl"`
	Name      string  `json:"name,omitempty"`
	Cursor    *Cursor `json:"cursor,omitempty"`
}

// Message is the tagged envelope for every frame in either direction.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// cursorPayload is the inbound body of an update-cursor frame.
type cursorPayload struct {
	ID     string `json:"id"`
	Cursor Cursor `json:"cursor"`
}

// presencePayload is the outbound body of a presence frame.
type presencePayload struct {
	Users []UserPayload `json:"users"`
}

// presenceMessage wraps a snapshot in the outbound envelope.
type presenceMessage struct {
	Type    string          `json:"type"`
	Payload presencePayload `json:"payload"`
}
