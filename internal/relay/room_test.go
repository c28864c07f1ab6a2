package relay

import (
	"encoding/json"
	"fmt"
	"testing"
)

func newTestClient(id string) *client {
	return &client{id: id, send: make(chan any, 32)}
}

// drainPresence pops queued messages until it finds a presence snapshot,
// returning its user list.
func drainPresence(t *testing.T, c *client) []UserPayload {
	t.Helper()
	for {
		select {
		case msg := <-c.send:
			if pm, ok := msg.(presenceMessage); ok {
				return pm.Payload.Users
			}
		default:
			t.Fatal("no presence snapshot queued")
		}
	}
}

func drainAll(c *client) []any {
	var out []any
	for {
		select {
		case msg := <-c.send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func addUserFrame(id, name string) []byte {
	return []byte(fmt.Sprintf(`{"type":"add-user","payload":{"id":%q,"name":%q,"avatarUrl":"https://example.com/%s.png"}}`, id, name, id))
}

func TestAddUserBroadcastsSnapshotToAll(t *testing.T) {
	r := newRoom("2026-08-30")
	a, b := newTestClient("c1"), newTestClient("c2")
	r.join(a)
	r.join(b)

	r.handleMessage(a, addUserFrame("u1", "Alice"))

	for _, c := range []*client{a, b} {
		users := drainPresence(t, c)
		if len(users) != 1 || users[0].ID != "u1" || users[0].Name != "Alice" {
			t.Fatalf("conn %s snapshot = %+v", c.id, users)
		}
	}
}

func TestPresenceIsFullStateReplacement(t *testing.T) {
	r := newRoom("2026-08-30")
	a, b := newTestClient("c1"), newTestClient("c2")
	r.join(a)
	r.join(b)

	r.handleMessage(a, addUserFrame("u1", "Alice"))
	r.handleMessage(b, addUserFrame("u2", "Bob"))
	r.handleMessage(a, []byte(`{"type":"remove-user","payload":{"id":"u1"}}`))

	drainAll(a)
	users := drainAll(b)
	last, ok := users[len(users)-1].(presenceMessage)
	if !ok {
		t.Fatalf("last message is %T, want presence", users[len(users)-1])
	}
	if got := last.Payload.Users; len(got) != 1 || got[0].ID != "u2" {
		t.Fatalf("snapshot after remove = %+v, want only u2", got)
	}
}

func TestCursorUpdatePreservesIdentity(t *testing.T) {
	r := newRoom("2026-08-30")
	a := newTestClient("c1")
	r.join(a)

	r.handleMessage(a, addUserFrame("u1", "Alice"))
	drainAll(a)
	r.handleMessage(a, []byte(`{"type":"update-cursor","payload":{"id":"u1","cursor":{"x":3,"y":1}}}`))

	users := drainPresence(t, a)
	if len(users) != 1 {
		t.Fatalf("snapshot = %+v", users)
	}
	u := users[0]
	if u.Name != "Alice" || u.AvatarURL == "" {
		t.Fatalf("cursor update clobbered identity: %+v", u)
	}
	if u.Cursor == nil || u.Cursor.X != 3 || u.Cursor.Y != 1 {
		t.Fatalf("cursor = %+v", u.Cursor)
	}
}

func TestCursorUpdateWhileAnonymousIsDropped(t *testing.T) {
	r := newRoom("2026-08-30")
	a := newTestClient("c1")
	r.join(a)

	r.handleMessage(a, []byte(`{"type":"update-cursor","payload":{"id":"u1","cursor":{"x":1,"y":1}}}`))
	if msgs := drainAll(a); len(msgs) != 0 {
		t.Fatalf("anonymous cursor update produced %d messages", len(msgs))
	}
}

func TestReactionFansOutWithoutTouchingPresence(t *testing.T) {
	r := newRoom("2026-08-30")
	a, b := newTestClient("c1"), newTestClient("c2")
	r.join(a)
	r.join(b)
	r.handleMessage(a, addUserFrame("u1", "Alice"))
	drainAll(a)
	drainAll(b)

	r.handleMessage(b, []byte(`{"type":"reaction","payload":{"id":"u1","emoji":"🎉"}}`))

	for _, c := range []*client{a, b} {
		msgs := drainAll(c)
		if len(msgs) != 1 {
			t.Fatalf("conn %s got %d messages, want 1", c.id, len(msgs))
		}
		m, ok := msgs[0].(Message)
		if !ok || m.Type != TypeReaction {
			t.Fatalf("conn %s got %+v, want reaction", c.id, msgs[0])
		}
		var body struct {
			Emoji string `json:"emoji"`
		}
		if err := json.Unmarshal(m.Payload, &body); err != nil || body.Emoji != "🎉" {
			t.Fatalf("reaction payload not forwarded verbatim: %s", m.Payload)
		}
	}
}

func TestMalformedAndUnknownFramesAreDropped(t *testing.T) {
	r := newRoom("2026-08-30")
	a := newTestClient("c1")
	r.join(a)

	r.handleMessage(a, []byte(`{not json`))
	r.handleMessage(a, []byte(`{"type":"self-destruct","payload":{}}`))
	r.handleMessage(a, []byte(`{"type":"add-user","payload":{"name":"no id"}}`))

	if msgs := drainAll(a); len(msgs) != 0 {
		t.Fatalf("dropped frames produced %d messages", len(msgs))
	}
	if len(r.clients) != 1 {
		t.Fatalf("connection table changed: %d clients", len(r.clients))
	}
}

func TestDuplicateIdentityIsDeduplicated(t *testing.T) {
	r := newRoom("2026-08-30")
	a, b := newTestClient("c1"), newTestClient("c2")
	r.join(a)
	r.join(b)

	// Same participant on two tabs.
	r.handleMessage(a, addUserFrame("u1", "Alice"))
	r.handleMessage(b, addUserFrame("u1", "Alice"))

	drainAll(a)
	msgs := drainAll(b)
	last := msgs[len(msgs)-1].(presenceMessage)
	if got := last.Payload.Users; len(got) != 1 || got[0].ID != "u1" {
		t.Fatalf("snapshot = %+v, want one deduplicated user", got)
	}
}

func TestLeaveRebroadcastsAndReportsEmpty(t *testing.T) {
	r := newRoom("2026-08-30")
	a, b := newTestClient("c1"), newTestClient("c2")
	r.join(a)
	r.join(b)
	r.handleMessage(a, addUserFrame("u1", "Alice"))
	r.handleMessage(b, addUserFrame("u2", "Bob"))
	drainAll(b)

	if empty := r.leave(a); empty {
		t.Fatal("room reported empty with a client remaining")
	}
	users := drainPresence(t, b)
	if len(users) != 1 || users[0].ID != "u2" {
		t.Fatalf("snapshot after leave = %+v", users)
	}

	if empty := r.leave(b); !empty {
		t.Fatal("room should report empty after last leave")
	}
	// Leaving twice must not panic on the closed send channel.
	if empty := r.leave(b); !empty {
		t.Fatal("repeated leave should still report empty")
	}
}

func TestSlowClientIsEvicted(t *testing.T) {
	r := newRoom("2026-08-30")
	slow := &client{id: "slow", send: make(chan any)} // no buffer, never read
	fast := newTestClient("fast")
	r.join(slow)
	r.join(fast)

	r.handleMessage(fast, addUserFrame("u1", "Alice"))

	r.mu.Lock()
	_, stillThere := r.clients[slow]
	r.mu.Unlock()
	if stillThere {
		t.Fatal("slow client was not evicted")
	}
	if users := drainPresence(t, fast); len(users) != 1 {
		t.Fatalf("fast client snapshot = %+v", users)
	}
}

func TestManagerRoomLifecycle(t *testing.T) {
	m := NewManager()
	r1 := m.room("2026-08-30")
	if m.room("2026-08-30") != r1 {
		t.Fatal("same key should return the same room")
	}
	if m.room("2026-08-31") == r1 {
		t.Fatal("different keys should not share rooms")
	}
	if n := m.RoomCount(); n != 2 {
		t.Fatalf("RoomCount = %d", n)
	}

	c := newTestClient("c1")
	r1.join(c)
	if r1.leave(c) {
		m.drop("2026-08-30", r1)
	}
	if n := m.RoomCount(); n != 1 {
		t.Fatalf("RoomCount after drop = %d", n)
	}
}
