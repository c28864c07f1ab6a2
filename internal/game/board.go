// internal/game/board.go
//
// Board construction and row helpers for the daily game document.

package game

import "strings"

const (
	// NumberOfTries is the fixed number of guess rows per day.
	NumberOfTries = 6
	// NumberOfLetters is the fixed word length.
	NumberOfLetters = 5
)

// NewGame constructs the all-empty board document for a date.
// Every tile starts as VariantEmpty with its grid position stamped in.
func NewGame(date string) *Game {
	grid := make([][]Tile, NumberOfTries)
	for y := range grid {
		row := make([]Tile, NumberOfLetters)
		for x := range row {
			row[x] = Tile{
				Variant: VariantEmpty,
				Letter:  "",
				Pos:     Cursor{X: x, Y: y},
			}
		}
		grid[y] = row
	}
	return &Game{
		Date:   date,
		Grid:   grid,
		Cursor: Cursor{X: 0, Y: 0},
	}
}

// RowWord joins a row's letters into the guessed word, lowercased.
func RowWord(row []Tile) string {
	var b strings.Builder
	for _, t := range row {
		b.WriteString(strings.ToLower(strings.TrimSpace(t.Letter)))
	}
	return b.String()
}

// RowFull reports whether every tile in the row holds a letter.
func RowFull(row []Tile) bool {
	for _, t := range row {
		if strings.TrimSpace(t.Letter) == "" {
			return false
		}
	}
	return true
}

// Participants returns the deduplicated contributors across the whole
// grid, in first-appearance order. Used for notifications and the
// daily reminder.
func (g *Game) Participants() []Contributor {
	seen := make(map[string]bool)
	var out []Contributor
	for _, row := range g.Grid {
		for _, t := range row {
			if t.Contributor == nil || t.Contributor.ID == "" {
				continue
			}
			if seen[t.Contributor.ID] {
				continue
			}
			seen[t.Contributor.ID] = true
			out = append(out, *t.Contributor)
		}
	}
	return out
}
