// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used in tests and when durability is not required; state is lost
// when the process restarts.
//
// Characteristics:
//   - Game documents are deep-copied through JSON on the way in and
//     out, so callers never share grid slices with the store.
//   - Concurrency-safe via RWMutex (concurrent reads allowed).

package store

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tanmay-pathak/wordle/internal/game"
)

type memory struct {
	mu      sync.RWMutex
	games   map[string]*game.Game  // keyed by date
	words   map[string]*SecretWord // keyed by id
	winners []Winner
}

// NewMemory constructs an empty in-memory Store.
func NewMemory() Store {
	return &memory{
		games: make(map[string]*game.Game),
		words: make(map[string]*SecretWord),
	}
}

func copyGame(g *game.Game) *game.Game {
	raw, _ := json.Marshal(g)
	var out game.Game
	_ = json.Unmarshal(raw, &out)
	return &out
}

func (m *memory) GetGame(ctx context.Context, date string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[date]
	if !ok {
		return nil, nil
	}
	return copyGame(g), nil
}

func (m *memory) SetGame(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	m.games[g.Date] = copyGame(g)
	return nil
}

func (m *memory) GetSecretWord(ctx context.Context, date string) (*SecretWord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.words {
		if w.Assigned && w.Date == date {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memory) UnassignedWord(ctx context.Context) (*SecretWord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var pool []*SecretWord
	for _, w := range m.words {
		if !w.Assigned {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return nil, nil
	}
	cp := *pool[rand.Intn(len(pool))]
	return &cp, nil
}

func (m *memory) AssignWordToDate(ctx context.Context, id, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.words[id]
	if !ok {
		return ErrNotFound
	}
	w.Assigned = true
	w.Date = date
	return nil
}

func (m *memory) MarkWordConsumed(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.words[id]
	if !ok {
		return ErrNotFound
	}
	w.Consumed = true
	return nil
}

func (m *memory) AddWord(ctx context.Context, word string) (*SecretWord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := &SecretWord{ID: uuid.NewString(), Word: word}
	m.words[w.ID] = w
	cp := *w
	return &cp, nil
}

func (m *memory) SaveAboutWord(ctx context.Context, id, about string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.words[id]
	if !ok {
		return ErrNotFound
	}
	w.AboutWord = about
	return nil
}

func (m *memory) InsertWinner(ctx context.Context, w Winner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	// newest first
	m.winners = append([]Winner{w}, m.winners...)
	return nil
}

func (m *memory) RecentWinners(ctx context.Context, limit int) ([]Winner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 {
		limit = 15
	}
	if limit > len(m.winners) {
		limit = len(m.winners)
	}
	out := make([]Winner, limit)
	copy(out, m.winners[:limit])
	return out, nil
}

func (m *memory) Records(ctx context.Context) (*Records, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]Winner, len(m.winners))
	copy(all, m.winners)
	return aggregateRecords(all), nil
}
