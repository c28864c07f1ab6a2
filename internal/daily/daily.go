// internal/daily/daily.go
//
// Date keying and deterministic word selection for the daily pipeline.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD for t in the given location. The location
// defines the game-day cutoff; the reference deployment runs on
// America/Regina so the day rolls over near midnight local time.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date key using
// HMAC(salt, key) % n. Used as the fallback word picker when the
// curated pool is exhausted, so every instance agrees on the day's
// word without coordination.
func WordIndex(dateKey, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dateKey))
	sum := h.Sum(nil)
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
