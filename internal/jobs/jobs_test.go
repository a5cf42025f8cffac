package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"clinic-management-backend/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReminders struct {
	sent  int
	err   error
	calls int
}

func (f *fakeReminders) SendTomorrow(ctx context.Context) (int, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("job context has no deadline")
	}
	return f.sent, f.err
}

type fakePurger struct {
	purged int64
	calls  int
}

func (f *fakePurger) PurgeRefreshTokens(context.Context) (int64, error) {
	f.calls++
	return f.purged, nil
}

func TestRegisterRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler(zerolog.Nop(), &fakeReminders{}, &fakePurger{})

	err := s.Register(config.JobsConfig{ReminderSpec: "every evening", TokenPurgeSpec: "@hourly"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reminder")
}

func TestRegisterAddsJobs(t *testing.T) {
	s := NewScheduler(zerolog.Nop(), &fakeReminders{}, &fakePurger{})

	require.NoError(t, s.Register(config.JobsConfig{ReminderSpec: "0 18 * * *", TokenPurgeSpec: "@hourly"}))
	assert.Len(t, s.cron.Entries(), 2)

	s.Start()
	s.Stop(context.Background())
}

func TestSchedulesRunInUTC(t *testing.T) {
	s := NewScheduler(zerolog.Nop(), &fakeReminders{}, &fakePurger{})
	assert.Equal(t, time.UTC, s.cron.Location())

	require.NoError(t, s.Register(config.JobsConfig{ReminderSpec: "0 18 * * *", TokenPurgeSpec: "@hourly"}))
	s.Start()
	defer s.Stop(context.Background())

	entries := s.cron.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, time.UTC, e.Next.Location())
		assert.Zero(t, e.Next.Minute())
	}
}

func TestRunJobsLogOutcome(t *testing.T) {
	var buf bytes.Buffer
	reminders := &fakeReminders{sent: 3}
	purger := &fakePurger{purged: 2}
	s := NewScheduler(zerolog.New(&buf), reminders, purger)

	s.runReminders()
	s.runTokenPurge()

	assert.Equal(t, 1, reminders.calls)
	assert.Equal(t, 1, purger.calls)
	assert.Contains(t, buf.String(), `"sent":3`)
	assert.Contains(t, buf.String(), `"purged":2`)

	buf.Reset()
	reminders.err = errors.New("smtp down")
	s.runReminders()
	assert.Contains(t, buf.String(), "appointment reminders failed")
}
