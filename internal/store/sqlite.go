// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Game boards are persisted as JSON documents keyed by date, matching
// the full-document replace semantics of the document-store contract.
// Winners keep their player list as a JSON array column.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tanmay-pathak/wordle/internal/game"
)

// SQLite is a Store backed by an *sql.DB opened with the sqlite3 driver.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an already-opened (and migrated) database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// ------------------------------ games --------------------------------

func (s *SQLite) GetGame(ctx context.Context, date string) (*game.Game, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM games WHERE date=?`, date,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var g game.Game
	if err := json.Unmarshal([]byte(doc), &g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", date, err)
	}
	return &g, nil
}

func (s *SQLite) SetGame(ctx context.Context, g *game.Game) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.Date, err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (date, doc, updated_at) VALUES (?,?,?)
        ON CONFLICT(date) DO UPDATE SET doc=excluded.doc, updated_at=excluded.updated_at`,
		g.Date, string(doc), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// --------------------------- secret words ----------------------------

func (s *SQLite) GetSecretWord(ctx context.Context, date string) (*SecretWord, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, word, COALESCE(date,''), assigned, consumed, COALESCE(about_word,'')
        FROM secret_words WHERE date=?`, date)
	return scanSecretWord(row)
}

func (s *SQLite) UnassignedWord(ctx context.Context) (*SecretWord, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, word, COALESCE(date,''), assigned, consumed, COALESCE(about_word,'')
        FROM secret_words WHERE assigned=0 ORDER BY RANDOM() LIMIT 1`)
	return scanSecretWord(row)
}

func scanSecretWord(row *sql.Row) (*SecretWord, error) {
	var w SecretWord
	err := row.Scan(&w.ID, &w.Word, &w.Date, &w.Assigned, &w.Consumed, &w.AboutWord)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *SQLite) AssignWordToDate(ctx context.Context, id, date string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE secret_words SET assigned=1, date=? WHERE id=?`, date, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) MarkWordConsumed(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE secret_words SET consumed=1 WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) AddWord(ctx context.Context, word string) (*SecretWord, error) {
	w := &SecretWord{ID: uuid.NewString(), Word: word}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO secret_words (id, word, assigned, consumed) VALUES (?,?,0,0)`,
		w.ID, w.Word)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *SQLite) SaveAboutWord(ctx context.Context, id, about string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE secret_words SET about_word=? WHERE id=?`, about, id)
	return err
}

// ------------------------------ winners ------------------------------

func (s *SQLite) InsertWinner(ctx context.Context, w Winner) error {
	players, err := json.Marshal(w.Players)
	if err != nil {
		return err
	}
	created := w.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO winners (date, word, attempts, players, winner, created_at)
        VALUES (?,?,?,?,?,?)`,
		w.Date, w.Word, w.Attempts, string(players), w.Winner,
		created.Format(time.RFC3339),
	)
	return err
}

func (s *SQLite) RecentWinners(ctx context.Context, limit int) ([]Winner, error) {
	if limit <= 0 {
		limit = 15
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT date, word, attempts, players, COALESCE(winner,''), created_at
        FROM winners ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWinners(rows)
}

func collectWinners(rows *sql.Rows) ([]Winner, error) {
	out := []Winner{}
	for rows.Next() {
		var w Winner
		var players, created string
		if err := rows.Scan(&w.Date, &w.Word, &w.Attempts, &players, &w.Winner, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(players), &w.Players); err != nil {
			return nil, err
		}
		w.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, w)
	}
	return out, rows.Err()
}

// Records walks all finished games and aggregates in memory. The table
// stays small (one row per day), so no fancy SQL is needed.
func (s *SQLite) Records(ctx context.Context) (*Records, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT date, word, attempts, players, COALESCE(winner,''), created_at
        FROM winners ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	all, err := collectWinners(rows)
	if err != nil {
		return nil, err
	}
	return aggregateRecords(all), nil
}

// aggregateRecords computes the records summary from finished games,
// newest first.
func aggregateRecords(all []Winner) *Records {
	rec := &Records{TopPlayers: []PlayerRecord{}, RecentGames: []Winner{}}
	rec.TotalGames = len(all)
	if len(all) == 0 {
		return rec
	}

	players := make(map[string]bool)
	winsByPlayer := make(map[string]int)
	var attemptsSum int
	for i := range all {
		w := all[i]
		attemptsSum += w.Attempts
		for _, p := range w.Players {
			players[p] = true
		}
		if w.Winner == "" {
			continue
		}
		rec.TotalWins++
		winsByPlayer[w.Winner]++
		if rec.FastestSolve == nil || w.Attempts < rec.FastestSolve.Attempts {
			rec.FastestSolve = &all[i]
		}
	}

	rec.WinRate = math.Round(float64(rec.TotalWins)/float64(rec.TotalGames)*1000) / 10
	rec.AverageAttempts = math.Round(float64(attemptsSum)/float64(rec.TotalGames)*10) / 10
	rec.UniquePlayers = len(players)

	for name, wins := range winsByPlayer {
		rec.TopPlayers = append(rec.TopPlayers, PlayerRecord{Name: name, Wins: wins})
	}
	sort.Slice(rec.TopPlayers, func(i, j int) bool {
		if rec.TopPlayers[i].Wins != rec.TopPlayers[j].Wins {
			return rec.TopPlayers[i].Wins > rec.TopPlayers[j].Wins
		}
		return rec.TopPlayers[i].Name < rec.TopPlayers[j].Name
	})
	if len(rec.TopPlayers) > 10 {
		rec.TopPlayers = rec.TopPlayers[:10]
	}

	n := len(all)
	if n > 15 {
		n = 15
	}
	rec.RecentGames = all[:n]
	return rec
}
