// Package jobs runs background maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"tourlogistics/internal/app/logistics"
	"tourlogistics/internal/clock"
	"tourlogistics/internal/models"
)

const dateLayout = "2006-01-02"

// DayLister finds the days that have events scheduled.
type DayLister interface {
	ListScheduledDays(ctx context.Context, from, to string) ([]models.DayKey, error)
}

// Recomputer rewrites the logistics of one day.
type Recomputer interface {
	Recompute(ctx context.Context, orgID, date string) (logistics.RecomputeSummary, error)
}

// Refresher recomputes logistics for every scheduled day in a window
// starting today, so stored drive times track current traffic.
type Refresher struct {
	days    DayLister
	engine  Recomputer
	clock   clock.Clock
	window  int
	timeout time.Duration
	logger  zerolog.Logger
}

// NewRefresher configures a Refresher covering window days from today.
func NewRefresher(days DayLister, engine Recomputer, clk clock.Clock, window int, logger zerolog.Logger) *Refresher {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if window < 1 {
		window = 1
	}
	return &Refresher{
		days:    days,
		engine:  engine,
		clock:   clk,
		window:  window,
		timeout: 10 * time.Minute,
		logger:  logger.With().Str("job", "logistics_refresh").Logger(),
	}
}

// RunReport summarises one refresh pass.
type RunReport struct {
	Days    int
	Failed  int
	Updated int
}

// RunOnce recomputes each scheduled day in the window, one at a time.
// A failing day is logged and skipped.
func (r *Refresher) RunOnce(ctx context.Context) (RunReport, error) {
	var report RunReport

	today := r.clock.Now().Format(dateLayout)
	end := r.clock.Now().AddDate(0, 0, r.window).Format(dateLayout)

	days, err := r.days.ListScheduledDays(ctx, today, end)
	if err != nil {
		return report, fmt.Errorf("list scheduled days: %w", err)
	}

	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Days++

		summary, err := r.engine.Recompute(ctx, day.OrgID, day.Date)
		if err != nil {
			report.Failed++
			r.logger.Warn().Err(err).
				Str("org_id", day.OrgID).
				Str("date", day.Date).
				Msg("logistics refresh failed")
			continue
		}
		report.Updated += summary.Updated
	}

	r.logger.Info().
		Int("days", report.Days).
		Int("failed", report.Failed).
		Int("updated", report.Updated).
		Msg("logistics refresh finished")

	return report, nil
}

// Schedule registers the refresher on a new cron runner. Runs never
// overlap; a tick that arrives while a run is in progress is skipped.
func (r *Refresher) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{r.logger}),
		cron.SkipIfStillRunning(cronLogger{r.logger}),
	))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if _, err := r.RunOnce(ctx); err != nil {
			r.logger.Error().Err(err).Msg("logistics refresh aborted")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	return c, nil
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
