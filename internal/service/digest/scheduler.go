package digest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSpec ticks once a minute.
const DefaultSpec = "* * * * *"

// Status describes the most recent scheduler run.
type Status struct {
	LastRun  time.Time
	LastSent int
	LastErr  error
	NextRun  time.Time
}

// Scheduler runs SendDue on a cron schedule.
type Scheduler struct {
	log     *slog.Logger
	cron    *cron.Cron
	entry   cron.EntryID
	svc     sender
	timeout time.Duration
	now     func() time.Time

	mu   sync.Mutex
	last Status
}

// sender is satisfied by *Service.
type sender interface {
	SendDue(ctx context.Context, now time.Time) (int, error)
}

// NewScheduler registers svc on spec (standard five-field cron syntax,
// evaluated in loc). Each run is bounded by timeout.
func NewScheduler(logger *slog.Logger, svc sender, spec string, loc *time.Location, timeout time.Duration) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if loc == nil {
		loc = time.UTC
	}
	if timeout <= 0 {
		timeout = 50 * time.Second
	}

	s := &Scheduler{
		log:     logger.With("worker", "digest"),
		cron:    cron.New(cron.WithLocation(loc)),
		svc:     svc,
		timeout: timeout,
		now:     time.Now,
	}

	id, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		return nil, fmt.Errorf("digest: schedule %q: %w", spec, err)
	}
	s.entry = id
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	now := s.now()
	sent, err := s.svc.SendDue(ctx, now)
	if err != nil {
		s.log.ErrorContext(ctx, "digest run failed", slog.String("error", err.Error()))
	}

	s.mu.Lock()
	s.last = Status{LastRun: now, LastSent: sent, LastErr: err}
	s.mu.Unlock()
}

// Status returns the outcome of the last run and the next planned tick.
// NextRun is zero until the scheduler is started.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	st := s.last
	s.mu.Unlock()

	st.NextRun = s.cron.Entry(s.entry).Next
	return st
}

// Start begins ticking in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("digest scheduler started")
}

// Stop stops the scheduler and waits for a running digest to finish or ctx
// to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("digest scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
