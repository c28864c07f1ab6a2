// internal/store/store.go
//
// Persistence interface for the daily game.  The backing store is
// treated as a plain document store: game boards are read and written
// whole (full-document replace), secret words and winners are simple
// keyed rows.  Implementations: SQLite (production) and memory (tests).

package store

import (
	"context"
	"errors"
	"time"

	"github.com/tanmay-pathak/wordle/internal/game"
)

// ErrNotFound is returned by lookups that require a row to exist.
var ErrNotFound = errors.New("store: not found")

// SecretWord is one entry in the word pool. Exactly one word is
// assigned per calendar date; Consumed flips once its game finishes.
type SecretWord struct {
	ID        string `json:"id"`
	Word      string `json:"word"`
	Date      string `json:"date,omitempty"` // assigned date, YYYY-MM-DD
	Assigned  bool   `json:"assigned"`
	Consumed  bool   `json:"consumed"`
	AboutWord string `json:"aboutWord,omitempty"`
}

// Winner records one finished game. Winner is empty for a loss.
type Winner struct {
	Date      string    `json:"date"`
	Word      string    `json:"word"`
	Attempts  int       `json:"attempts"`
	Players   []string  `json:"players"`
	Winner    string    `json:"winner,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// PlayerRecord is a per-player aggregate for the records page.
type PlayerRecord struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// Records aggregates historical results across all finished games.
type Records struct {
	TotalGames      int            `json:"totalGames"`
	TotalWins       int            `json:"totalWins"`
	WinRate         float64        `json:"winRate"`
	AverageAttempts float64        `json:"averageAttempts"`
	UniquePlayers   int            `json:"uniquePlayers"`
	FastestSolve    *Winner        `json:"fastestSolve,omitempty"`
	TopPlayers      []PlayerRecord `json:"topPlayers"`
	RecentGames     []Winner       `json:"recentGames"`
}

// Store is the persistence contract consumed by the HTTP layer and the
// daily pipeline.
type Store interface {
	// GetGame returns the game document for a date, or (nil, nil) when
	// no board has been created yet.
	GetGame(ctx context.Context, date string) (*game.Game, error)
	// SetGame inserts or fully replaces the document for g.Date.
	SetGame(ctx context.Context, g *game.Game) error

	// GetSecretWord returns the word assigned to a date, or (nil, nil).
	GetSecretWord(ctx context.Context, date string) (*SecretWord, error)
	// MarkWordConsumed flips the consumed flag for a word id.
	MarkWordConsumed(ctx context.Context, id string) error
	// UnassignedWord returns a random not-yet-assigned word from the
	// pool, or (nil, nil) when the pool is exhausted.
	UnassignedWord(ctx context.Context) (*SecretWord, error)
	// AssignWordToDate stamps a pool word with a date.
	AssignWordToDate(ctx context.Context, id, date string) error
	// AddWord inserts a new word into the pool and returns it.
	AddWord(ctx context.Context, word string) (*SecretWord, error)
	// SaveAboutWord attaches collaborator-generated flavor text.
	SaveAboutWord(ctx context.Context, id, about string) error

	// InsertWinner records a finished game.
	InsertWinner(ctx context.Context, w Winner) error
	// RecentWinners lists the most recent finished games, newest first.
	RecentWinners(ctx context.Context, limit int) ([]Winner, error)
	// Records computes the historical aggregates.
	Records(ctx context.Context) (*Records, error)
}
