// internal/daily/pipeline.go
//
// The scheduled word-assignment pipeline. Exposes idempotent entry
// points reachable from both the internal scheduler and the HTTP cron
// trigger routes:
//   - AssignDailyWord: pick a secret word for today, once.
//   - CreateGame:      persist today's empty board, once.
//   - SendReminder:    nudge the channel if today is still unsolved.
//
// Idempotency is checked against the store, not in memory, so repeated
// triggers (scheduler plus an external cron hitting the HTTP route)
// are harmless.

package daily

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tanmay-pathak/wordle/internal/game"
	"github.com/tanmay-pathak/wordle/internal/store"
	"github.com/tanmay-pathak/wordle/internal/words"
)

// Reminderer is the slice of the notifier the pipeline needs.
type Reminderer interface {
	Reminder(ctx context.Context, date string, participants []string)
}

// Pipeline wires the store, the word lists, and the notifier into the
// daily jobs.
type Pipeline struct {
	Store    store.Store
	Salt     string         // HMAC salt for the fallback word picker
	Location *time.Location // game-day timezone
	Notifier Reminderer     // may be nil
}

// Today returns the current date key in the pipeline's timezone.
func (p *Pipeline) Today() string {
	return DateKey(time.Now(), p.Location)
}

// AssignDailyWord assigns a secret word to today if none is assigned
// yet. Preference order: a random unassigned word from the curated
// pool; otherwise a deterministic HMAC pick from the embedded answers
// list, inserted into the pool on the way through so consumption
// tracking still works.
func (p *Pipeline) AssignDailyWord(ctx context.Context) error {
	today := p.Today()

	existing, err := p.Store.GetSecretWord(ctx, today)
	if err != nil {
		return fmt.Errorf("check today's word: %w", err)
	}
	if existing != nil {
		log.Info().Str("date", today).Str("word", existing.Word).Msg("cron: word already assigned, skipping")
		return nil
	}

	w, err := p.Store.UnassignedWord(ctx)
	if err != nil {
		return fmt.Errorf("pick unassigned word: %w", err)
	}
	if w == nil {
		// Pool exhausted: deterministic fallback from the embedded list.
		answers := words.Answers()
		if len(answers) == 0 {
			return fmt.Errorf("no unassigned words and no embedded answers")
		}
		pick := answers[WordIndex(today, p.Salt, len(answers))]
		w, err = p.Store.AddWord(ctx, pick)
		if err != nil {
			return fmt.Errorf("insert fallback word: %w", err)
		}
		log.Warn().Str("date", today).Msg("cron: word pool exhausted, using deterministic fallback")
	}

	if err := p.Store.AssignWordToDate(ctx, w.ID, today); err != nil {
		return fmt.Errorf("assign word to date: %w", err)
	}
	log.Info().Str("date", today).Str("word", w.Word).Msg("cron: assigned daily word")
	return nil
}

// CreateGame persists today's empty board if no game document exists.
func (p *Pipeline) CreateGame(ctx context.Context) error {
	today := p.Today()

	existing, err := p.Store.GetGame(ctx, today)
	if err != nil {
		return fmt.Errorf("check today's game: %w", err)
	}
	if existing != nil {
		log.Info().Str("date", today).Msg("cron: game already exists, skipping")
		return nil
	}

	if err := p.Store.SetGame(ctx, game.NewGame(today)); err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	log.Info().Str("date", today).Msg("cron: created daily game board")
	return nil
}

// SendReminder posts a reminder when today's game exists and is still
// unfinished, listing everyone who has contributed so far.
func (p *Pipeline) SendReminder(ctx context.Context) error {
	if p.Notifier == nil {
		return nil
	}
	today := p.Today()

	g, err := p.Store.GetGame(ctx, today)
	if err != nil {
		return fmt.Errorf("check today's game: %w", err)
	}
	if g == nil || g.Finished {
		log.Info().Str("date", today).Msg("cron: no reminder needed")
		return nil
	}

	var names []string
	for _, c := range g.Participants() {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	p.Notifier.Reminder(ctx, today, names)
	return nil
}
