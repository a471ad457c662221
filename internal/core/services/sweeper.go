package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/tokend/internal/core/ports/driving"
)

// Sweeper runs the retention sweep on a fixed interval. Sweeping is
// best-effort housekeeping: expired states already fail verification
// whether or not they have been deleted, so failures are logged and
// swallowed, never fatal.
type Sweeper struct {
	service driving.OAuthService
	logger  *slog.Logger

	// Internal state
	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	interval time.Duration
}

// SweeperConfig holds configuration for the sweeper.
type SweeperConfig struct {
	Service  driving.OAuthService
	Logger   *slog.Logger
	Interval time.Duration // How often to sweep (default: 1h)
}

// NewSweeper creates a new retention sweeper.
func NewSweeper(cfg SweeperConfig) *Sweeper {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval == 0 {
		interval = time.Hour
	}

	return &Sweeper{
		service:  cfg.Service,
		logger:   logger,
		interval: interval,
	}
}

// Start begins the sweep loop. It sweeps once immediately, then on each
// tick, until Stop is called or the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info("sweeper starting", "interval", s.interval)

	go s.run(ctx)
}

// Stop gracefully stops the sweeper.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	s.mu.Unlock()

	<-s.doneCh

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper context cancelled")
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if err := s.service.Sweep(ctx); err != nil {
		s.logger.Warn("retention sweep incomplete", "error", err)
	}
}
