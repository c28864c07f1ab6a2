// internal/words/words.go
//
// Word list management for the daily game.
//
// Responsibilities:
//   - Load answer and allowed guess lists from environment-provided
//     files or fall back to the embedded defaults in the assets package.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply utilities: RandomAnswer, IsAllowed, IsAnswer, Stats.
//
// Word Lists:
//   - "answers": the solution pool (exactly 5 lowercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Environment variables:
//   WORDS_ANSWERS_FILE=/path/to/answers.txt
//   WORDS_ALLOWED_FILE=/path/to/allowed.txt
//
// Initialization runs once (sync.Once); lists are normalized to
// lowercase and filtered to 5 alphabetic letters.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/tanmay-pathak/wordle/assets"
)

var (
	initOnce   sync.Once
	answers    []string            // solution pool
	allowedSet map[string]struct{} // answers ∪ guesses
	answersSet map[string]struct{} // answers only
	initialErr error
)

// Init loads word lists exactly once.
// Returns an error if the answers list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var ansList, allowList []string

		answersPath := os.Getenv("WORDS_ANSWERS_FILE")
		allowedPath := os.Getenv("WORDS_ALLOWED_FILE")

		switch {
		case answersPath != "":
			var err error
			ansList, err = readWordFile(answersPath)
			if err != nil {
				initialErr = err
				return
			}
			if allowedPath != "" {
				allowList, err = readWordFile(allowedPath)
				if err != nil {
					initialErr = err
					return
				}
			}

		case answersPath == "" && allowedPath != "":
			// Only an allowed file provided: use it for both.
			var err error
			allowList, err = readWordFile(allowedPath)
			if err != nil {
				initialErr = err
				return
			}
			ansList = allowList

		default:
			var err error
			ansList, err = assets.AnswersList()
			if err != nil {
				initialErr = err
				return
			}
			allowList, err = assets.AllowedList()
			if err != nil {
				initialErr = err
				return
			}
		}

		answers = filterValid(ansList)
		answersSet = toSet(answers)

		allowedSet = toSet(answers)
		for _, w := range filterValid(allowList) {
			allowedSet[w] = struct{}{}
		}

		if len(answers) == 0 {
			initialErr = errors.New("words: answers list is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// filterValid lowercases, trims, and keeps only 5-letter a–z words.
func filterValid(list []string) []string {
	var out []string
	for _, line := range list {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) == 5 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Answers returns the solution pool (all lowercase).
func Answers() []string {
	return answers
}

// RandomAnswer returns a cryptographically random word from the pool.
// Falls back to "crane" if lists are not loaded.
func RandomAnswer() string {
	if len(answers) == 0 {
		return "crane"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(answers))))
	return answers[nBig.Int64()]
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func IsAllowed(w string) bool {
	_, ok := allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is in the solution pool.
func IsAnswer(w string) bool {
	_, ok := answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func Stats() (answersCount int, allowedCount int) {
	return len(answers), len(allowedSet)
}
