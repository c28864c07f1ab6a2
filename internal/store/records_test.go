package store

import (
	"context"
	"testing"

	"github.com/tanmay-pathak/wordle/internal/game"
)

func TestAggregateRecordsEmpty(t *testing.T) {
	rec := aggregateRecords(nil)
	if rec.TotalGames != 0 || rec.TotalWins != 0 {
		t.Fatalf("empty aggregate = %+v", rec)
	}
	if rec.TopPlayers == nil || rec.RecentGames == nil {
		t.Fatal("slices must be non-nil so they serialize as []")
	}
	if rec.FastestSolve != nil {
		t.Fatalf("fastest solve = %+v", rec.FastestSolve)
	}
}

func TestAggregateRecordsMath(t *testing.T) {
	all := []Winner{
		{Date: "2026-08-04", Word: "mango", Attempts: 3, Players: []string{"Cara"}, Winner: "Cara"},
		{Date: "2026-08-03", Word: "crane", Attempts: 2, Players: []string{"Bob", "Cara"}, Winner: "Bob"},
		{Date: "2026-08-02", Word: "night", Attempts: 6, Players: []string{"Alice", "Bob"}},
		{Date: "2026-08-01", Word: "siege", Attempts: 5, Players: []string{"Alice"}, Winner: "Alice"},
	}
	rec := aggregateRecords(all)

	if rec.TotalGames != 4 || rec.TotalWins != 3 {
		t.Fatalf("games=%d wins=%d", rec.TotalGames, rec.TotalWins)
	}
	if rec.WinRate != 75.0 {
		t.Fatalf("win rate = %v", rec.WinRate)
	}
	if rec.AverageAttempts != 4.0 {
		t.Fatalf("average attempts = %v", rec.AverageAttempts)
	}
	if rec.UniquePlayers != 3 {
		t.Fatalf("unique players = %d", rec.UniquePlayers)
	}
	if rec.FastestSolve == nil || rec.FastestSolve.Word != "crane" || rec.FastestSolve.Attempts != 2 {
		t.Fatalf("fastest solve = %+v", rec.FastestSolve)
	}
	// One win each: ties break alphabetically.
	if len(rec.TopPlayers) != 3 ||
		rec.TopPlayers[0].Name != "Alice" ||
		rec.TopPlayers[1].Name != "Bob" ||
		rec.TopPlayers[2].Name != "Cara" {
		t.Fatalf("top players = %+v", rec.TopPlayers)
	}
	if len(rec.RecentGames) != 4 || rec.RecentGames[0].Date != "2026-08-04" {
		t.Fatalf("recent games = %+v", rec.RecentGames)
	}
}

func TestMemoryStoreIsolatesDocuments(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	g := game.NewGame("2026-08-30")
	if err := m.SetGame(ctx, g); err != nil {
		t.Fatal(err)
	}
	// Mutating the caller's copy must not leak into the store.
	g.Grid[0][0].Letter = "x"

	got, err := m.GetGame(ctx, "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}
	if got.Grid[0][0].Letter != "" {
		t.Fatal("store shares grid memory with caller")
	}
	// Nor must mutating the returned copy.
	got.Attempts = 5
	again, _ := m.GetGame(ctx, "2026-08-30")
	if again.Attempts != 0 {
		t.Fatal("returned document shares memory with store")
	}
}

func TestMemoryStoreWordPool(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if w, err := m.UnassignedWord(ctx); err != nil || w != nil {
		t.Fatalf("empty pool = %v, %v", w, err)
	}
	w, err := m.AddWord(ctx, "siege")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.AssignWordToDate(ctx, w.ID, "2026-08-30"); err != nil {
		t.Fatal(err)
	}
	got, _ := m.GetSecretWord(ctx, "2026-08-30")
	if got == nil || got.Word != "siege" || !got.Assigned {
		t.Fatalf("assigned = %+v", got)
	}
	if w2, _ := m.UnassignedWord(ctx); w2 != nil {
		t.Fatalf("assigned word still in pool: %+v", w2)
	}
	if err := m.AssignWordToDate(ctx, "missing", "2026-08-31"); err != ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
