// internal/game/types.go
//
// Core type definitions for the shared daily Wordle board.
// Defines:
//   - Variant: per-tile scoring verdict (empty/correct/present/absent).
//   - Cursor:  (x, y) grid coordinate; y is the row, x the column.
//   - Contributor: the player who typed a given letter.
//   - Tile:    one cell of the guess grid.
//   - Game:    the whole-of-day collaborative game document.

package game

// Variant represents the scoring verdict for a single tile.
// Possible values:
//   - "empty":   tile has no letter yet (unscored).
//   - "correct": letter is in the answer at this exact position.
//   - "present": letter is in the answer at a different position.
//   - "absent":  letter does not appear in the answer (or its copies
//     are already accounted for by other tiles).
type Variant string

const (
	VariantEmpty   Variant = "empty"
	VariantCorrect Variant = "correct"
	VariantPresent Variant = "present"
	VariantAbsent  Variant = "absent"
)

// Cursor is a grid coordinate. For the game document cursor it points
// at the next tile to be typed into.
type Cursor struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Contributor identifies the player who typed a letter into a tile.
// Populated from the identity provider's session assertion.
type Contributor struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Tile holds one cell of the guess grid.
// Invariant: Variant is VariantEmpty iff Letter is "".
type Tile struct {
	Variant     Variant      `json:"variant"`
	Letter      string       `json:"letter"`
	Pos         Cursor       `json:"position"`
	Contributor *Contributor `json:"contributor,omitempty"`
}

// Game is the per-date game document. It is the single source of truth
// for turn state and is persisted with full-document replace semantics:
// callers load the whole document, mutate it, and store it back.
type Game struct {
	ID             string   `json:"id,omitempty"`
	Date           string   `json:"date"`
	Grid           [][]Tile `json:"data"`
	Cursor         Cursor   `json:"cursor"`
	Finished       bool     `json:"finished"`
	Won            bool     `json:"won"`
	Attempts       int      `json:"attempts"`
	SubmittedUsers []string `json:"submittedUsers,omitempty"`
}

// Status reports a coarse string representation of the game state:
// "playing", "won", or "lost".
func (g *Game) Status() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}
