// internal/httpserver/routes_game.go
//
// Game document routes.
//   - GET  /game       → today's (or ?date=) document, or a fresh empty
//                        board when none is stored yet.
//   - PUT  /game       → full-document replace (typing sync).
//   - POST /game/guess → score the cursor row server-side and persist.
//   - GET  /game/qr    → shareable QR code for the game page.
//   - GET  /winners    → recent finished games.
//   - GET  /records    → historical aggregates.
//
// The stored document is the single source of truth for turn state;
// scoring happens only here, never on the client.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/tanmay-pathak/wordle/internal/game"
	"github.com/tanmay-pathak/wordle/internal/notify"
	"github.com/tanmay-pathak/wordle/internal/store"
)

// dateOrToday returns the ?date= query value or today's date key.
func (s *Server) dateOrToday(r *http.Request) string {
	if d := r.URL.Query().Get("date"); d != "" {
		return d
	}
	return s.pipe.Today()
}

// handleGetGame returns the stored document for the date, or an
// unpersisted empty board so a client can always render a grid. The
// empty board is not written: board creation belongs to the daily
// pipeline (or the first PUT).
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	date := s.dateOrToday(r)
	g, err := s.store.GetGame(r.Context(), date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("load game")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if g == nil {
		g = game.NewGame(date)
	}
	_ = json.NewEncoder(w).Encode(g)
}

// handleSetGame replaces the whole document for its date. Used by the
// client to sync typing (letters and cursor) between guesses.
func (s *Server) handleSetGame(w http.ResponseWriter, r *http.Request) {
	var g game.Game
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if g.Date == "" || len(g.Grid) != game.NumberOfTries {
		http.Error(w, `{"error":"bad_document"}`, http.StatusBadRequest)
		return
	}
	for _, row := range g.Grid {
		if len(row) != game.NumberOfLetters {
			http.Error(w, `{"error":"bad_document"}`, http.StatusBadRequest)
			return
		}
	}

	existing, err := s.store.GetGame(r.Context(), g.Date)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if existing != nil && existing.Finished {
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		return
	}
	if existing != nil {
		// Scoring state is owned by the guess route.
		g.ID = existing.ID
		g.Attempts = existing.Attempts
		g.Finished = existing.Finished
		g.Won = existing.Won
		g.SubmittedUsers = existing.SubmittedUsers
	}

	if err := s.store.SetGame(r.Context(), &g); err != nil {
		log.Error().Err(err).Str("date", g.Date).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(&g)
}

// guessReq/guessRes payloads for POST /game/guess.
type guessReq struct {
	Date string `json:"date"`
}
type guessRes struct {
	Status   string      `json:"status"` // "playing" | "won" | "lost"
	Row      []game.Tile `json:"row"`
	Attempts int         `json:"attempts"`
}

// handleGuess scores the row under the cursor against the day's secret
// word and persists the updated document. Validation failures come
// back as a typed status with the document untouched.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	me := identityFrom(r)
	if me == nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	date := req.Date
	if date == "" {
		date = s.pipe.Today()
	}

	g, err := s.store.GetGame(r.Context(), date)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if g == nil {
		http.Error(w, `{"error":"no_game"}`, http.StatusNotFound)
		return
	}
	sw, err := s.store.GetSecretWord(r.Context(), date)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if sw == nil {
		http.Error(w, `{"error":"no_word"}`, http.StatusConflict)
		return
	}

	submittedRow := g.Cursor.Y
	status := g.SubmitRow(sw.Word, game.Contributor{
		ID:        me.ID,
		Name:      me.Name,
		AvatarURL: me.AvatarURL,
	})
	if status != game.SubmitOK {
		http.Error(w, `{"error":"`+string(status)+`"}`, statusCodeFor(status))
		return
	}

	if err := s.store.SetGame(r.Context(), g); err != nil {
		log.Error().Err(err).Str("date", date).Msg("save scored game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	if g.Finished {
		s.finishGame(r.Context(), g, sw, me)
	}

	_ = json.NewEncoder(w).Encode(guessRes{
		Status:   g.Status(),
		Row:      g.Grid[submittedRow],
		Attempts: g.Attempts,
	})
}

// statusCodeFor maps a submit status to an HTTP code.
func statusCodeFor(st game.SubmitStatus) int {
	switch st {
	case game.SubmitGameFinished, game.SubmitAlreadySubmitted:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// finishGame runs the end-of-game side effects: consume the word,
// record the result, and fire the notification. All best effort; the
// guess itself has already been persisted.
func (s *Server) finishGame(ctx context.Context, g *game.Game, sw *store.SecretWord, me *identity) {
	if err := s.store.MarkWordConsumed(ctx, sw.ID); err != nil {
		log.Warn().Err(err).Str("wordId", sw.ID).Msg("mark word consumed")
	}

	var players []string
	for _, c := range g.Participants() {
		if c.Name != "" {
			players = append(players, c.Name)
		}
	}
	winner := ""
	if g.Won {
		winner = me.Name
	}

	if err := s.store.InsertWinner(ctx, store.Winner{
		Date:     g.Date,
		Word:     sw.Word,
		Attempts: g.Attempts,
		Players:  players,
		Winner:   winner,
	}); err != nil {
		log.Warn().Err(err).Str("date", g.Date).Msg("record finished game")
	}

	if s.notifier != nil {
		summary := notify.GameSummary{
			Date:      g.Date,
			Word:      sw.Word,
			Attempts:  g.Attempts,
			Won:       g.Won,
			Winner:    winner,
			Players:   players,
			AboutWord: sw.AboutWord,
		}
		// Fire and forget; the request should not wait on the chat API.
		go s.notifier.GameFinished(context.Background(), summary)
	}
}

// handleWinners returns the most recent finished games.
func (s *Server) handleWinners(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.RecentWinners(r.Context(), 15)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}

// handleRecords returns the historical aggregates.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Records(r.Context())
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rec)
}

// handleShareQR renders a PNG QR code pointing at the game page, for
// sharing today's room.
func (s *Server) handleShareQR(w http.ResponseWriter, r *http.Request) {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:3000"
	}
	url := origin + "/?date=" + s.dateOrToday(r)

	png, err := qrcode.Encode(url, qrcode.Medium, 320)
	if err != nil {
		http.Error(w, `{"error":"qr_failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
