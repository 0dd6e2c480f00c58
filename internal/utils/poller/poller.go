package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type PollFunc func(ctx context.Context) error

// Poller runs a function on a fixed interval. Errors are logged and do not
// stop it.
type Poller struct {
	interval time.Duration
	poll     PollFunc

	stopOnce sync.Once
	quit     chan struct{}
}

func NewPoller(interval time.Duration, poll PollFunc) *Poller {
	return &Poller{
		interval: interval,
		poll:     poll,
		quit:     make(chan struct{}),
	}
}

// Start polls until ctx is cancelled or Stop is called. The first poll runs
// immediately.
func (p *Poller) Start(ctx context.Context) {
	logger := log.Ctx(ctx).With().Dur("interval", p.interval).Logger()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logger.Info().Msg("starting poller")

	for {
		if err := p.poll(ctx); err != nil {
			logger.Error().Err(err).Msg("error polling")
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			logger.Info().Msg("poller stopped due to context cancellation")
			return
		case <-p.quit:
			logger.Info().Msg("poller stopped")
			return
		}
	}
}

// Stop may be called more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
	})
}
