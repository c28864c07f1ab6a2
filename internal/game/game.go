// internal/game/game.go
//
// Turn logic for the shared daily game.
// Responsibilities:
//   - Validate a row submission (complete row, allowed word, game not
//     finished, submitter has not already used their daily guess).
//   - Score the current row atomically via ScoreRow.
//   - Track state transitions: playing → won/lost, cursor advancement.
//
// Validation failures are reported as typed statuses, never as errors:
// the document is left untouched so the caller's turn state survives.

package game

import (
	"github.com/tanmay-pathak/wordle/internal/words"
)

// SubmitStatus is the typed outcome of a row submission.
type SubmitStatus string

const (
	SubmitOK               SubmitStatus = "ok"
	SubmitGameFinished     SubmitStatus = "game_finished"
	SubmitRowIncomplete    SubmitStatus = "row_incomplete"
	SubmitNotInWordList    SubmitStatus = "not_in_word_list"
	SubmitAlreadySubmitted SubmitStatus = "already_submitted"
)

// SubmitRow validates and scores the row under the cursor, mutating the
// document only when the submission is accepted.
//
// Rules:
//   - The game must not be finished.
//   - The cursor row must be fully populated.
//   - The row's word must be in the allowed list.
//   - Each player triggers at most one scoring per day (the letters in
//     a row may come from several contributors; the submit itself is
//     what is rationed).
//
// On SubmitOK the row is scored in a single atomic step, attempts and
// the submitted-users guard are updated, and the cursor advances to the
// start of the next row. A fully correct row wins; exhausting all rows
// loses.
func (g *Game) SubmitRow(secret string, by Contributor) SubmitStatus {
	if g.Finished {
		return SubmitGameFinished
	}
	for _, id := range g.SubmittedUsers {
		if id == by.ID {
			return SubmitAlreadySubmitted
		}
	}

	y := g.Cursor.Y
	if y < 0 || y >= len(g.Grid) {
		return SubmitGameFinished
	}
	row := g.Grid[y]
	if !RowFull(row) {
		return SubmitRowIncomplete
	}
	if !words.IsAllowed(RowWord(row)) {
		return SubmitNotInWordList
	}

	scored := ScoreRow(row, secret)
	g.Grid[y] = scored
	g.Attempts++
	if by.ID != "" {
		g.SubmittedUsers = append(g.SubmittedUsers, by.ID)
	}

	if allCorrect(scored) {
		g.Finished, g.Won = true, true
	} else if y+1 >= len(g.Grid) {
		g.Finished = true
	} else {
		g.Cursor = Cursor{X: 0, Y: y + 1}
	}
	return SubmitOK
}

// allCorrect returns true if every tile in the row is VariantCorrect.
func allCorrect(row []Tile) bool {
	for _, t := range row {
		if t.Variant != VariantCorrect {
			return false
		}
	}
	return true
}
