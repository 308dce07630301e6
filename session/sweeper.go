package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/beankit/component"
	"github.com/kbukum/beankit/logger"
)

const sweeperName = "session-sweeper"

// DefaultSweepInterval is how often the sweeper evicts expired entries.
const DefaultSweepInterval = time.Minute

// Sweepable is the part of a Store the Sweeper needs.
type Sweepable interface {
	Sweep() int
	Len() int
}

// Sweeper periodically evicts expired entries so idle sessions release
// their values without waiting for the next access.
type Sweeper struct {
	store    Sweepable
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

var (
	_ component.Component   = (*Sweeper)(nil)
	_ component.Describable = (*Sweeper)(nil)
)

// NewSweeper creates a sweeper for store. A non-positive interval uses
// DefaultSweepInterval.
func NewSweeper(store Sweepable, interval time.Duration, log *logger.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if log == nil {
		log = logger.WithComponent(sweeperName)
	}
	return &Sweeper{store: store, interval: interval, log: log}
}

// Name returns the component name.
func (s *Sweeper) Name() string { return sweeperName }

// Start launches the sweep loop. Starting a running sweeper is a no-op.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(loopCtx, s.done)
	return nil
}

// Stop halts the sweep loop and waits for it to exit or ctx to end.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Health reports whether the sweep loop is running.
func (s *Sweeper) Health(ctx context.Context) component.Health {
	s.mu.Lock()
	running := s.cancel != nil
	s.mu.Unlock()

	if !running {
		return component.Health{Name: sweeperName, Status: component.StatusDegraded, Message: "sweeper not running"}
	}
	return component.Health{
		Name:    sweeperName,
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d entries", s.store.Len()),
	}
}

// Describe returns summary info for startup logging.
func (s *Sweeper) Describe() component.Description {
	return component.Description{
		Name:    "Session Sweeper",
		Type:    "store",
		Details: "interval=" + s.interval.String(),
	}
}

func (s *Sweeper) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Sweep(); n > 0 {
				s.log.Debug("evicted idle session entries", logger.Fields(logger.FieldCount, n))
			}
		}
	}
}
