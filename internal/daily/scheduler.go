// internal/daily/scheduler.go
//
// Internal time-based trigger for the daily jobs. Deployments that use
// an external cron can hit the HTTP trigger routes instead; both paths
// land on the same idempotent pipeline entry points, so running both
// is safe.

package daily

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Scheduler fires the pipeline once per game day at the configured
// hour, and the reminder at a later hour the same day.
type Scheduler struct {
	Pipeline     *Pipeline
	RolloverHour int // local hour for assign+create (0-23)
	ReminderHour int // local hour for the reminder; <0 disables
}

// Run blocks until ctx is done, waking once a minute to check whether
// a job boundary was crossed. Minute granularity keeps the loop simple
// and is plenty for jobs that fire once a day.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	var lastRollover, lastReminder string

	// Catch up immediately on start so a restart mid-day still has a
	// word and a board.
	s.rollover(ctx)
	lastRollover = s.Pipeline.Today()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			loc := s.Pipeline.Location
			if loc == nil {
				loc = time.UTC
			}
			local := now.In(loc)
			today := DateKey(now, loc)

			if local.Hour() >= s.RolloverHour && lastRollover != today {
				s.rollover(ctx)
				lastRollover = today
			}
			if s.ReminderHour >= 0 && local.Hour() >= s.ReminderHour && lastReminder != today {
				if err := s.Pipeline.SendReminder(ctx); err != nil {
					log.Warn().Err(err).Msg("scheduler: reminder failed")
				}
				lastReminder = today
			}
		}
	}
}

func (s *Scheduler) rollover(ctx context.Context) {
	if err := s.Pipeline.AssignDailyWord(ctx); err != nil {
		log.Error().Err(err).Msg("scheduler: assign daily word failed")
	}
	if err := s.Pipeline.CreateGame(ctx); err != nil {
		log.Error().Err(err).Msg("scheduler: create daily game failed")
	}
}
