package jobs

import (
	"context"
	"fmt"
	"time"

	"clinic-management-backend/internal/config"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const jobTimeout = 5 * time.Minute

// ReminderSender delivers tomorrow's appointment reminders
type ReminderSender interface {
	SendTomorrow(ctx context.Context) (int, error)
}

// TokenPurger removes expired refresh tokens
type TokenPurger interface {
	PurgeRefreshTokens(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic maintenance jobs
type Scheduler struct {
	cron      *cron.Cron
	logger    zerolog.Logger
	reminders ReminderSender
	purger    TokenPurger
}

func NewScheduler(logger zerolog.Logger, reminders ReminderSender, purger TokenPurger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		logger:    logger.With().Str("component", "jobs").Logger(),
		reminders: reminders,
		purger:    purger,
	}
}

// Register adds the jobs using the cron specs from config. Specs are evaluated in UTC.
func (s *Scheduler) Register(cfg config.JobsConfig) error {
	if _, err := s.cron.AddFunc(cfg.ReminderSpec, s.runReminders); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", cfg.ReminderSpec, err)
	}
	if _, err := s.cron.AddFunc(cfg.TokenPurgeSpec, s.runTokenPurge); err != nil {
		return fmt.Errorf("invalid token purge schedule %q: %w", cfg.TokenPurgeSpec, err)
	}
	return nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("scheduler stopped before running jobs finished")
	}
}

func (s *Scheduler) runReminders() {
	ctx, cancel := s.jobContext()
	defer cancel()

	sent, err := s.reminders.SendTomorrow(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("appointment reminders failed")
		return
	}
	s.logger.Info().Int("sent", sent).Msg("appointment reminders sent")
}

func (s *Scheduler) runTokenPurge() {
	ctx, cancel := s.jobContext()
	defer cancel()

	purged, err := s.purger.PurgeRefreshTokens(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("refresh token purge failed")
		return
	}
	s.logger.Info().Int64("purged", purged).Msg("refresh tokens purged")
}

func (s *Scheduler) jobContext() (context.Context, context.CancelFunc) {
	ctx := s.logger.WithContext(context.Background())
	return context.WithTimeout(ctx, jobTimeout)
}
