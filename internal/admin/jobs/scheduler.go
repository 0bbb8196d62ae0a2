// Package jobs runs background maintenance tasks on cron schedules.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/observability"
)

// ErrUnknownJob is returned by Run for a name that was never registered.
var ErrUnknownJob = errors.New("jobs: unknown job")

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Entry describes a registered job.
type Entry struct {
	Name     string
	Schedule string
	Next     time.Time
}

// Scheduler wraps a cron runner with named jobs and zap logging.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	jobs    map[string]registered
	started bool
}

type registered struct {
	id       cron.EntryID
	schedule string
	job      Job
}

// Option customises the scheduler.
type Option func(*Scheduler)

// WithJobTimeout bounds each run. Zero disables the bound.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = d
	}
}

// NewScheduler constructs an idle scheduler. Jobs that are still running when their next
// activation fires are skipped, and panics are recovered and logged.
func NewScheduler(logger *zap.Logger, opts ...Option) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("jobs")
	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		timeout: 5 * time.Minute,
		jobs:    make(map[string]registered),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Add registers job under name using a standard cron expression or a descriptor such as
// "@every 1h".
func (s *Scheduler) Add(name, schedule string, job Job) error {
	if name == "" || job == nil {
		return fmt.Errorf("jobs: add: name and job are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("jobs: add %s: already registered", name)
	}
	id, err := s.cron.AddFunc(schedule, func() {
		_ = s.run(context.Background(), name, job)
	})
	if err != nil {
		return fmt.Errorf("jobs: add %s: invalid schedule %q: %w", name, schedule, err)
	}
	s.jobs[name] = registered{id: id, schedule: schedule, job: job}
	return nil
}

// Run executes the named job immediately on the calling goroutine.
func (s *Scheduler) Run(ctx context.Context, name string) error {
	s.mu.Lock()
	reg, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.run(ctx, name, reg.job)
}

func (s *Scheduler) run(ctx context.Context, name string, job Job) error {
	logger := s.logger.With(zap.String("job", name))
	ctx = observability.WithLogger(ctx, logger)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := job(ctx)
	if err != nil {
		logger.Error("job failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return err
	}
	logger.Info("job completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// Entries lists registered jobs ordered by name.
func (s *Scheduler) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.jobs))
	for name, reg := range s.jobs {
		entries = append(entries, Entry{
			Name:     name,
			Schedule: reg.schedule,
			Next:     s.cron.Entry(reg.id).Next,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Start begins firing jobs in the background. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop prevents further activations and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("jobs: stop: %w", ctx.Err())
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(fields(keysAndValues), zap.Error(err))...)
}

func fields(keysAndValues []interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		out = append(out, zap.Any(key, keysAndValues[i+1]))
	}
	return out
}
