package game

import (
	"testing"

	"github.com/tanmay-pathak/wordle/internal/words"
)

func fillRow(g *Game, word string, by *Contributor) {
	y := g.Cursor.Y
	for i, r := range word {
		g.Grid[y][i].Letter = string(r)
		g.Grid[y][i].Contributor = by
	}
}

func TestNewGameShape(t *testing.T) {
	g := NewGame("2026-08-30")
	if len(g.Grid) != NumberOfTries {
		t.Fatalf("rows = %d, want %d", len(g.Grid), NumberOfTries)
	}
	for y, row := range g.Grid {
		if len(row) != NumberOfLetters {
			t.Fatalf("row %d has %d tiles", y, len(row))
		}
		for x, tile := range row {
			if tile.Variant != VariantEmpty || tile.Letter != "" {
				t.Fatalf("tile %d,%d not empty: %+v", x, y, tile)
			}
			if tile.Pos != (Cursor{X: x, Y: y}) {
				t.Fatalf("tile %d,%d position = %+v", x, y, tile.Pos)
			}
		}
	}
	if g.Status() != "playing" {
		t.Fatalf("fresh game status = %q", g.Status())
	}
}

func TestSubmitRowHappyPath(t *testing.T) {
	words.Init()
	g := NewGame("2026-08-30")
	alice := Contributor{ID: "u1", Name: "Alice"}

	fillRow(g, "fight", &alice)
	if st := g.SubmitRow("night", alice); st != SubmitOK {
		t.Fatalf("submit = %q, want ok", st)
	}
	if g.Attempts != 1 {
		t.Fatalf("attempts = %d", g.Attempts)
	}
	if g.Cursor != (Cursor{X: 0, Y: 1}) {
		t.Fatalf("cursor = %+v", g.Cursor)
	}
	if g.Finished {
		t.Fatal("game finished after one wrong guess")
	}
	if g.Grid[0][0].Variant != VariantAbsent || g.Grid[0][1].Variant != VariantCorrect {
		t.Fatalf("row not scored: %+v", g.Grid[0])
	}
}

func TestSubmitRowWin(t *testing.T) {
	words.Init()
	g := NewGame("2026-08-30")
	alice := Contributor{ID: "u1", Name: "Alice"}
	fillRow(g, "night", &alice)
	if st := g.SubmitRow("night", alice); st != SubmitOK {
		t.Fatalf("submit = %q", st)
	}
	if !g.Finished || !g.Won {
		t.Fatalf("finished=%v won=%v, want both true", g.Finished, g.Won)
	}
	if g.Status() != "won" {
		t.Fatalf("status = %q", g.Status())
	}
	if st := g.SubmitRow("night", Contributor{ID: "u2"}); st != SubmitGameFinished {
		t.Fatalf("post-win submit = %q, want game_finished", st)
	}
}

func TestSubmitRowLossOnLastRow(t *testing.T) {
	words.Init()
	g := NewGame("2026-08-30")
	for i := 0; i < NumberOfTries; i++ {
		by := Contributor{ID: string(rune('a' + i))}
		fillRow(g, "fight", &by)
		if st := g.SubmitRow("siege", by); st != SubmitOK {
			t.Fatalf("row %d submit = %q", i, st)
		}
	}
	if !g.Finished || g.Won {
		t.Fatalf("finished=%v won=%v, want lost", g.Finished, g.Won)
	}
	if g.Status() != "lost" {
		t.Fatalf("status = %q", g.Status())
	}
	if g.Attempts != NumberOfTries {
		t.Fatalf("attempts = %d", g.Attempts)
	}
}

func TestSubmitRowValidation(t *testing.T) {
	words.Init()
	alice := Contributor{ID: "u1"}

	t.Run("incomplete row", func(t *testing.T) {
		g := NewGame("2026-08-30")
		g.Grid[0][0].Letter = "f"
		if st := g.SubmitRow("night", alice); st != SubmitRowIncomplete {
			t.Fatalf("got %q", st)
		}
		if g.Attempts != 0 || g.Cursor.Y != 0 {
			t.Fatal("rejected submit mutated the document")
		}
	})

	t.Run("not in word list", func(t *testing.T) {
		g := NewGame("2026-08-30")
		fillRow(g, "zzzzz", &alice)
		if st := g.SubmitRow("night", alice); st != SubmitNotInWordList {
			t.Fatalf("got %q", st)
		}
		if g.Grid[0][0].Variant != VariantEmpty {
			t.Fatal("rejected row was scored")
		}
	})

	t.Run("one submit per user per day", func(t *testing.T) {
		g := NewGame("2026-08-30")
		fillRow(g, "fight", &alice)
		if st := g.SubmitRow("night", alice); st != SubmitOK {
			t.Fatalf("first submit = %q", st)
		}
		fillRow(g, "crane", &alice)
		if st := g.SubmitRow("night", alice); st != SubmitAlreadySubmitted {
			t.Fatalf("second submit = %q, want already_submitted", st)
		}
		// Another user may still submit the same row.
		if st := g.SubmitRow("night", Contributor{ID: "u2"}); st != SubmitOK {
			t.Fatalf("other user submit = %q", st)
		}
	})
}

func TestParticipants(t *testing.T) {
	g := NewGame("2026-08-30")
	alice := Contributor{ID: "u1", Name: "Alice"}
	bob := Contributor{ID: "u2", Name: "Bob"}
	g.Grid[0][0].Contributor = &alice
	g.Grid[0][1].Contributor = &bob
	g.Grid[1][0].Contributor = &alice
	got := g.Participants()
	if len(got) != 2 || got[0].ID != "u1" || got[1].ID != "u2" {
		t.Fatalf("participants = %+v", got)
	}
}

func TestRowHelpers(t *testing.T) {
	g := NewGame("2026-08-30")
	if RowFull(g.Grid[0]) {
		t.Fatal("empty row reported full")
	}
	fillRow(g, "NiGhT", nil)
	if !RowFull(g.Grid[0]) {
		t.Fatal("full row reported empty")
	}
	if w := RowWord(g.Grid[0]); w != "night" {
		t.Fatalf("RowWord = %q", w)
	}
}
