// Package maintenance runs the subsystem's periodic cleanup: data rows
// whose field definition was deleted under them are swept on a schedule.
package maintenance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/contentkit/customfields/pkg/logger"
	"github.com/contentkit/customfields/pkg/store"
)

// ErrInvalidSchedule is returned when the cron expression cannot be parsed.
var ErrInvalidSchedule = errors.New("maintenance: invalid cron schedule")

// DefaultSchedule sweeps hourly.
const DefaultSchedule = "@hourly"

// Sweeper deletes orphaned custom-field data rows on a cron schedule.
type Sweeper struct {
	store    store.Store
	cron     *cron.Cron
	log      *slog.Logger
	schedule string
	timeout  time.Duration
}

// Option configures the sweeper.
type Option func(*Sweeper)

// WithSchedule sets the cron expression. Default: @hourly.
func WithSchedule(expr string) Option {
	return func(s *Sweeper) {
		if expr != "" {
			s.schedule = expr
		}
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(log *slog.Logger) Option {
	return func(s *Sweeper) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTimeout bounds one sweep run. Default: 1 minute.
func WithTimeout(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewSweeper creates a sweeper over the given store.
func NewSweeper(st store.Store, opts ...Option) *Sweeper {
	s := &Sweeper{
		store:    st,
		log:      logger.NewNop(),
		schedule: DefaultSchedule,
		timeout:  time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules the sweep and returns. Call Stop to drain.
func (s *Sweeper) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.run); err != nil {
		return errors.Join(ErrInvalidSchedule, err)
	}
	s.cron = c
	c.Start()
	s.log.Info("orphan data sweeper started", slog.String("schedule", s.schedule))
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.Sweep(ctx); err != nil {
		s.log.ErrorContext(ctx, "orphan data sweep failed", slog.Any("error", err))
	}
}

// Sweep deletes orphaned data rows once, returning how many were removed.
// Exposed for hosts that trigger cleanup from their own job runner.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteOrphanData(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.InfoContext(ctx, "orphan data rows deleted", slog.Int64("rows", n))
	}
	return n, nil
}
