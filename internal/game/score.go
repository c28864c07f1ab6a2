// internal/game/score.go
//
// Scoring for one submitted row against the day's secret word.
// Implements the classic two-pass Wordle algorithm with
// consume-by-count duplicate-letter accounting.

package game

// ScoreRow converts a fully populated row of tiles plus the secret word
// into a scored row. Letter, position, and contributor are carried
// through unchanged; only Variant is rewritten, and every output tile
// ends up correct, present, or absent.
//
// Preconditions (caller bugs, not runtime errors):
//   - len(row) == len(secret)
//   - every tile has a non-empty Letter
//
// Pass 1: mark exact matches as correct and count the remaining
// (unmatched) secret letters. Pass 2, left to right: a not-yet-marked
// tile is present while its letter still has remaining count, absent
// otherwise. Availability is consumed strictly in position order, so a
// letter guessed more often than the secret contains it is only
// credited up to the secret's count, earliest tiles first, and correct
// matches are never stolen by the present pass.
//
// The input row is not mutated; re-scoring the same inputs yields an
// identical result.
func ScoreRow(row []Tile, secret string) []Tile {
	n := len(row)
	out := make([]Tile, n)

	// Frequency of secret letters not claimed by an exact match.
	remaining := make(map[byte]int, n)

	for i := 0; i < n; i++ {
		out[i] = row[i]
		if letterAt(row[i]) == secret[i] {
			out[i].Variant = VariantCorrect
		} else {
			remaining[secret[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if out[i].Variant == VariantCorrect {
			continue
		}
		c := letterAt(row[i])
		if remaining[c] > 0 {
			out[i].Variant = VariantPresent
			remaining[c]--
		} else {
			out[i].Variant = VariantAbsent
		}
	}
	return out
}

// letterAt returns the tile's letter as a single lowercase byte.
func letterAt(t Tile) byte {
	c := t.Letter[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	return c
}
