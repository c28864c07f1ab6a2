package daily

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	// 2026-08-30 02:30 UTC is still 2026-08-29 in Regina (UTC-6, no DST).
	ts := time.Date(2026, 8, 30, 2, 30, 0, 0, time.UTC)

	if got := DateKey(ts, nil); got != "2026-08-30" {
		t.Fatalf("nil location: got %q", got)
	}
	regina, err := time.LoadLocation("America/Regina")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	if got := DateKey(ts, regina); got != "2026-08-29" {
		t.Fatalf("Regina: got %q", got)
	}
}

func TestWordIndexDeterministic(t *testing.T) {
	a := WordIndex("2026-08-30", "salt", 100)
	b := WordIndex("2026-08-30", "salt", 100)
	if a != b {
		t.Fatalf("same inputs gave %d and %d", a, b)
	}
	if a < 0 || a >= 100 {
		t.Fatalf("index %d out of range", a)
	}
	if WordIndex("2026-08-30", "salt", 100) == WordIndex("2026-08-31", "salt", 100) &&
		WordIndex("2026-08-30", "salt", 100) == WordIndex("2026-09-01", "salt", 100) {
		t.Fatal("indices suspiciously constant across dates")
	}
	if WordIndex("2026-08-30", "salt-a", 1000) == WordIndex("2026-08-30", "salt-b", 1000) {
		t.Log("different salts collided; possible but unlikely")
	}
	if got := WordIndex("2026-08-30", "salt", 0); got != 0 {
		t.Fatalf("n=0 should clamp to 0, got %d", got)
	}
	if got := WordIndex("2026-08-30", "salt", 1); got != 0 {
		t.Fatalf("n=1 must always pick 0, got %d", got)
	}
}
