package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/warranty"
)

func TestAddRejectsInvalidSchedule(t *testing.T) {
	t.Parallel()

	s := NewScheduler(zap.NewNop())
	noop := func(context.Context) error { return nil }

	require.Error(t, s.Add("broken", "every now and then", noop))
	require.NoError(t, s.Add("hourly", "@every 1h", noop))
	require.Error(t, s.Add("hourly", "@every 2h", noop), "duplicate names are rejected")
	require.Error(t, s.Add("", "@every 1h", noop))

	entries := s.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "hourly", entries[0].Name)
	require.Equal(t, "@every 1h", entries[0].Schedule)
}

func TestRunLogsOutcome(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	s := NewScheduler(zap.New(core))
	boom := errors.New("boom")

	require.NoError(t, s.Add("ok", "@daily", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		require.True(t, hasDeadline)
		return nil
	}))
	require.NoError(t, s.Add("fails", "@daily", func(context.Context) error { return boom }))

	require.NoError(t, s.Run(context.Background(), "ok"))
	require.ErrorIs(t, s.Run(context.Background(), "fails"), boom)
	require.ErrorIs(t, s.Run(context.Background(), "missing"), ErrUnknownJob)

	require.Equal(t, 1, logs.FilterMessage("job completed").Len())
	failed := logs.FilterMessage("job failed").All()
	require.Len(t, failed, 1)
	require.Equal(t, "fails", failed[0].ContextMap()["job"])
}

func TestStartFiresJobsAndStopWaits(t *testing.T) {
	t.Parallel()

	s := NewScheduler(zap.NewNop())
	var runs atomic.Int32
	require.NoError(t, s.Add("tick", "@every 1s", func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	s.Start()
	s.Start()
	require.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx), "stopping twice is harmless")
}

func TestWarrantySweepJob(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	repo := storage.NewMemory(warranty.Seed(now)...)
	svc := warranty.NewService(repo, warranty.WithClock(func() time.Time { return now }))

	s := NewScheduler(zap.NewNop())
	require.NoError(t, s.Add(WarrantySweepJob, "@every 1h", WarrantySweep(svc, func() time.Time { return now })))
	require.NoError(t, s.Run(context.Background(), WarrantySweepJob))

	stored, err := repo.Get(context.Background(), "warranty-003")
	require.NoError(t, err)
	require.Equal(t, warranty.StatusExpired, stored.Status)
}
