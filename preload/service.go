package preload

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/screwyprof/stakeview/pkg/clock"
)

// Option configures the Service
// ------------------------------------------------
type Option func(*Service)

// WithClock injects a custom Clock (e.g., for testing)
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithRefreshInterval sets the interval between refresh cycles
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) { s.refreshInterval = d }
}

// WithMaxAttempts sets how many times a failed refresh is attempted per cycle
func WithMaxAttempts(n int) Option {
	return func(s *Service) { s.maxAttempts = n }
}

// StoreReloader is a Preparer that republishes persisted snapshots instead of
// fetching from the chain. Read-only consumers use it to follow snapshots
// written by the preloader daemon.
type StoreReloader struct {
	Cache *Cache
}

// Prepare reloads the persisted snapshot for network into the cache
func (r StoreReloader) Prepare(ctx context.Context, network NetworkID) error {
	return r.Cache.Bootstrap(ctx, network)
}

// Service keeps the preload snapshots of a set of networks fresh by refreshing
// them on a fixed interval, retrying failed attempts with exponential backoff.
// -----------------------------------------------------------------------------
type Service struct {
	preparer        Preparer
	networks        []NetworkID
	clock           Clock
	refreshInterval time.Duration
	maxAttempts     int
	events          chan Event
}

// NewService constructs a Service with required dependencies and options
// ----------------------------------------------------------------------
// By default, it uses a real clock, a 30m refresh interval, and 3 attempts.
func NewService(preparer Preparer, networks []NetworkID, opts ...Option) *Service {
	s := &Service{
		preparer:        preparer,
		networks:        networks,
		clock:           clock.SystemClock{},
		refreshInterval: DefaultRefreshInterval,
		maxAttempts:     DefaultMaxAttempts,
		events:          make(chan Event, 10),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the refresh loop and returns the events channel and done channel.
//
// Shutdown pattern:
//  1. Cancel context to request shutdown: cancel()
//  2. Service stops producing events and closes events channel
//  3. Wait for complete shutdown: <-done
//
// The context signals when to stop, the done channel confirms when stopped.
func (s *Service) Start(ctx context.Context) (<-chan Event, <-chan struct{}) {
	done := make(chan struct{})
	go func() {
		defer close(s.events)
		defer close(done)
		s.run(ctx)
	}()
	return s.events, done
}

// run drives the polling loop, respecting context cancellation
func (s *Service) run(ctx context.Context) {
	s.events <- PollingStarted{Interval: s.refreshInterval}
	for {
		select {
		case <-ctx.Done():
			s.events <- PollingShutdown{Reason: ctx.Err()}
			return
		case <-s.clock.After(s.refreshInterval):
			for _, network := range s.networks {
				if err := s.refresh(ctx, network); err != nil && ctx.Err() != nil {
					s.events <- PollingShutdown{Reason: ctx.Err()}
					return
				}
			}
		}
	}
}

// refresh runs one refresh cycle for a network, retrying failed attempts with
// exponential backoff. The last error is reported through events only; the
// previously published snapshot stays current.
func (s *Service) refresh(ctx context.Context, network NetworkID) error {
	start := s.clock.Now()
	s.events <- RefreshStarted{Network: network, StartedAt: start}

	delay := backoff.NewExponentialBackOff()
	for attempt := 1; ; attempt++ {
		err := s.preparer.Prepare(ctx, network)
		if err == nil {
			s.events <- RefreshCompleted{
				Network:  network,
				Duration: s.clock.Now().Sub(start),
			}
			return nil
		}

		s.events <- RefreshError{Network: network, Attempt: attempt, Err: err}
		if attempt >= s.maxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(delay.NextBackOff()):
		}
	}
}
