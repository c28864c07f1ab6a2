package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tanmay-pathak/wordle/internal/daily"
	"github.com/tanmay-pathak/wordle/internal/httpserver"
	"github.com/tanmay-pathak/wordle/internal/notify"
	"github.com/tanmay-pathak/wordle/internal/relay"
	"github.com/tanmay-pathak/wordle/internal/store"
	"github.com/tanmay-pathak/wordle/internal/words"
)

const releaseVersion = "1.0.0"

func main() {
	_ = godotenv.Load()
	cfg := &Config{}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd := newCmd(cfg)
	cobra.CheckErr(cmd.ExecuteContext(ctx))
}

func run(ctx context.Context, cfg *Config) error {
	if lvl, err := zerolog.ParseLevel(cfg.logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		return err
	}

	db, err := openDB(cfg.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := migrate(db, cfg.sqlDir); err != nil {
		return err
	}

	st := store.NewSQLite(db)
	notifier := notify.New(os.Getenv("SLACK_BOT_TOKEN"), os.Getenv("SLACK_CHANNEL_ID"))

	pipe := &daily.Pipeline{
		Store:    st,
		Salt:     cfg.dailySalt,
		Location: cfg.location,
		Notifier: notifier,
	}
	if cfg.scheduler {
		sched := &daily.Scheduler{
			Pipeline:     pipe,
			RolloverHour: cfg.rolloverHour,
			ReminderHour: cfg.reminderHour,
		}
		go sched.Run(ctx)
	}

	srv := httpserver.New(st, relay.NewManager(), pipe, notifier, httpserver.Config{
		ClientOrigin:   cfg.clientOrigin,
		JWTSecret:      os.Getenv("IDP_JWT_SECRET"),
		CronSecretHash: os.Getenv("CRON_SECRET_HASH"),
	})

	addr := net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port))
	log.Info().Str("addr", addr).Str("version", releaseVersion).Msg("starting wordle-server")
	return srv.Start(ctx, addr)
}
