// internal/httpserver/routes_cron.go
//
// HTTP trigger routes for the daily pipeline, for deployments that use
// an external cron facility instead of (or alongside) the internal
// scheduler. All three land on idempotent pipeline entry points.
//
// Access is gated by a shared secret checked against a bcrypt hash so
// the plaintext never lives in server config. An empty hash leaves the
// routes open for local development.

package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// mountCron registers the /cron routes.
func (s *Server) mountCron(r chi.Router) {
	if s.cfg.CronSecretHash == "" {
		log.Warn().Msg("cron routes are unauthenticated (no CRON_SECRET_HASH set)")
	}
	r.Post("/cron/assign-word", s.cronGuard(s.handleCronAssignWord))
	r.Post("/cron/create-game", s.cronGuard(s.handleCronCreateGame))
	r.Post("/cron/reminder", s.cronGuard(s.handleCronReminder))
}

// cronGuard checks the caller-supplied secret against the stored
// bcrypt hash.
func (s *Server) cronGuard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.CronSecretHash != "" {
			secret := r.Header.Get("X-Cron-Secret")
			if secret == "" {
				if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
					secret = strings.TrimSpace(a[7:])
				}
			}
			if bcrypt.CompareHashAndPassword([]byte(s.cfg.CronSecretHash), []byte(secret)) != nil {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleCronAssignWord(w http.ResponseWriter, r *http.Request) {
	if err := s.pipe.AssignDailyWord(r.Context()); err != nil {
		log.Error().Err(err).Msg("cron: assign word")
		http.Error(w, `{"error":"assign_failed"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (s *Server) handleCronCreateGame(w http.ResponseWriter, r *http.Request) {
	if err := s.pipe.CreateGame(r.Context()); err != nil {
		log.Error().Err(err).Msg("cron: create game")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (s *Server) handleCronReminder(w http.ResponseWriter, r *http.Request) {
	if err := s.pipe.SendReminder(r.Context()); err != nil {
		log.Error().Err(err).Msg("cron: reminder")
		http.Error(w, `{"error":"reminder_failed"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}
