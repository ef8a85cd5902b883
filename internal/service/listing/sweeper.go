package listing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically completes expired garage sales
type Sweeper struct {
	service  *Service
	interval time.Duration
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewSweeper creates a sweeper; call Start to begin
func NewSweeper(service *Service, interval time.Duration, logger *zap.Logger) *Sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		service:  service,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs one sweep immediately and then every interval
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	if _, err := s.service.SweepExpired(ctx); err != nil {
		s.logger.Error("sweep failed", zap.Error(err))
	}
}

// Stop gracefully stops the sweeper
func (s *Sweeper) Stop(ctx context.Context) error {
	s.cancel()

	c := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(c)
	}()

	select {
	case <-c:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
