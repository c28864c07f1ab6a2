// config.go
//
// Command-line and environment configuration. Flags are bound to
// WORDLE_-prefixed environment variables via viper, so either form
// works: --port 5175 or WORDLE_PORT=5175. Secrets (Slack token, JWT
// secret, cron secret hash) stay environment-only.

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind         string
	port         int
	dbPath       string
	sqlDir       string
	logLevel     string
	clientOrigin string
	gameTimezone string // IANA name for the game-day cutoff
	rolloverHour int    // local hour for the daily word/board jobs
	reminderHour int    // local hour for the reminder; -1 disables
	dailySalt    string // HMAC salt for the fallback word picker
	scheduler    bool   // run the internal scheduler loop

	location *time.Location // resolved from gameTimezone
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.rolloverHour < 0 || c.rolloverHour > 23 {
		return fmt.Errorf("invalid rollover hour: %d", c.rolloverHour)
	}
	if c.reminderHour > 23 {
		return fmt.Errorf("invalid reminder hour: %d", c.reminderHour)
	}
	loc, err := time.LoadLocation(c.gameTimezone)
	if err != nil {
		return errors.New("invalid game timezone: " + c.gameTimezone)
	}
	c.location = loc
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("WORDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "wordle-server",
		Short:         "Backend for Wordle with Friends: shared daily board, presence relay, and the word-assignment pipeline.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: WORDLE_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 5175, "port to listen on (env: WORDLE_PORT)")
	fs.StringVar(&cfg.dbPath, "db", "./data/wordle.db", "path to the sqlite database (env: WORDLE_DB)")
	fs.StringVar(&cfg.sqlDir, "sql-dir", "sql", "directory holding *.sql migrations (env: WORDLE_SQL_DIR)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "zerolog level (env: WORDLE_LOG_LEVEL)")
	fs.StringVar(&cfg.clientOrigin, "client-origin", "http://localhost:3000", "frontend origin for CORS and share links (env: WORDLE_CLIENT_ORIGIN)")
	fs.StringVar(&cfg.gameTimezone, "game-timezone", "America/Regina", "IANA timezone defining the game-day cutoff (env: WORDLE_GAME_TIMEZONE)")
	fs.IntVar(&cfg.rolloverHour, "rollover-hour", 0, "local hour for daily word assignment and board creation (env: WORDLE_ROLLOVER_HOUR)")
	fs.IntVar(&cfg.reminderHour, "reminder-hour", 15, "local hour for the daily reminder, -1 to disable (env: WORDLE_REMINDER_HOUR)")
	fs.StringVar(&cfg.dailySalt, "daily-salt", "local_dev_salt", "HMAC salt for the deterministic fallback word pick (env: WORDLE_DAILY_SALT)")
	fs.BoolVar(&cfg.scheduler, "scheduler", true, "run the internal daily scheduler (env: WORDLE_SCHEDULER)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("wordle-server v{{.Version}}\n")

	return cmd
}
