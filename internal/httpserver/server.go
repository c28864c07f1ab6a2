// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle with Friends backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/winners", "/records".
//   - Game endpoints: GET /game, PUT /game, POST /game/guess, GET /game/qr.
//   - Presence relay websocket: GET /party/{date}.
//   - Cron trigger endpoints under /cron (shared-secret gated).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Identity is asserted by the external identity provider's JWT;
//     optional-identity routes still run for guests, the guess route
//     requires it so contributions can be attributed.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tanmay-pathak/wordle/internal/daily"
	"github.com/tanmay-pathak/wordle/internal/notify"
	"github.com/tanmay-pathak/wordle/internal/relay"
	"github.com/tanmay-pathak/wordle/internal/store"
	"github.com/tanmay-pathak/wordle/internal/words"
)

// Notifier is the slice of the notify client the game routes need.
type Notifier interface {
	GameFinished(ctx context.Context, s notify.GameSummary)
}

// Config carries the handler-level knobs.
type Config struct {
	ClientOrigin   string // frontend origin for CORS and share links
	JWTSecret      string // HS256 secret shared with the identity provider
	CronSecretHash string // bcrypt hash gating /cron; empty leaves it open (dev)
}

// Server bundles router, store, relay manager, and the daily pipeline.
type Server struct {
	r        *chi.Mux
	store    store.Store
	relay    *relay.Manager
	pipe     *daily.Pipeline
	notifier Notifier
	cfg      Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, rm *relay.Manager, pipe *daily.Pipeline, n Notifier, cfg Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, relay: rm, pipe: pipe, notifier: n, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	// Top level so preflights are answered before routing.
	s.r.Use(corsFromOrigin(s.cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-with-friends","endpoints":["/health","GET /game","PUT /game","POST /game/guess","GET /party/{date}"]}`))
	})

	// Websocket upgrade must not run under the timeout or JSON middleware.
	s.r.Get("/party/{date}", rm.ServeRoom)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		r.With(s.withOptionalIdentity()).Get("/game", s.handleGetGame)
		r.With(s.withOptionalIdentity()).Put("/game", s.handleSetGame)
		r.With(s.requireIdentity()).Post("/game/guess", s.handleGuess)
		r.Get("/game/qr", s.handleShareQR)

		r.Get("/winners", s.handleWinners)
		r.Get("/records", s.handleRecords)

		s.mountCron(r)

		// Debug: word list counts
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, g := words.Stats()
			_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr, shutting down when ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       10 * time.Minute,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromOrigin enables credentialed CORS for a single origin.
func corsFromOrigin(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
