package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// DefaultRunTimeout bounds one recurring savings run.
const DefaultRunTimeout = 5 * time.Minute

// Scheduler runs the periodic jobs of the service.
type Scheduler struct {
	cron      *cron.Cron
	recurring portssvc.RecurringContributionSvc
	location  *time.Location
	timeout   time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLocation sets the zone used both for cron specs and for the calendar day a run credits.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithRunTimeout bounds each recurring savings run.
func WithRunTimeout(timeout time.Duration) Option {
	return func(s *Scheduler) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for job and cron output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScheduler creates a Scheduler. Jobs start running after Start.
func NewScheduler(recurring portssvc.RecurringContributionSvc, opts ...Option) *Scheduler {
	s := &Scheduler{
		recurring: recurring,
		location:  time.UTC,
		timeout:   DefaultRunTimeout,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cronLogger := slogCronLogger{logger: s.logger}
	s.cron = cron.New(
		cron.WithLocation(s.location),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	return s
}

// RegisterRecurring schedules the monthly savings processor. spec uses the standard
// five-field cron format; a daily spec is expected since every run credits only the goals due that day.
func (s *Scheduler) RegisterRecurring(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.recurringTask); err != nil {
		return fmt.Errorf("register recurring savings job %q: %w", spec, err)
	}
	s.logger.Info("Recurring savings job registered", slog.String("schedule", spec), slog.String("timezone", s.location.String()))
	return nil
}

// Start starts the cron scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop stops scheduling new runs and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Scheduler stopped before running jobs finished", slog.String("error", ctx.Err().Error()))
	}
}

// RunRecurringNow processes the savings due today in the scheduler's zone.
func (s *Scheduler) RunRecurringNow(ctx context.Context) (*domain.RecurringRun, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.recurring.ProcessRecurringContributions(ctx, s.now().In(s.location))
}

func (s *Scheduler) recurringTask() {
	run, err := s.RunRecurringNow(context.Background())
	if err != nil {
		s.logger.Error("Recurring savings run failed", slog.String("error", err.Error()))
		return
	}
	if run.Failed > 0 {
		s.logger.Warn("Recurring savings run finished with failures",
			slog.String("run_on", run.RunOn.Format(time.DateOnly)),
			slog.Int("failed", run.Failed),
		)
	}
}

// slogCronLogger adapts slog to cron.Logger.
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err.Error())...)
}
