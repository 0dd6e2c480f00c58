package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/shekel-labs/shekel-settlement/internal/config"
	"github.com/shekel-labs/shekel-settlement/internal/observability/metrics"
)

var ErrNotStarted = errors.New("queue manager is not started")

type QueueManager struct {
	cfg       *config.QueueConfig
	logger    *zap.Logger
	newClient func(cfg *config.QueueConfig, logger *zap.Logger) (QueueClient, error)

	mu     sync.RWMutex
	client QueueClient
}

func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	if cfg == nil {
		return nil, errors.New("queue config is required")
	}
	return &QueueManager{
		cfg:    cfg,
		logger: logger,
		newClient: func(cfg *config.QueueConfig, logger *zap.Logger) (QueueClient, error) {
			return NewRabbitMqClient(cfg, logger)
		},
	}, nil
}

// NewQueueManagerWithClient builds a started manager around an existing client.
func NewQueueManagerWithClient(cfg *config.QueueConfig, logger *zap.Logger, client QueueClient) *QueueManager {
	return &QueueManager{
		cfg:    cfg,
		logger: logger,
		client: client,
	}
}

// Start connects to the broker.
func (qm *QueueManager) Start() error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.client != nil {
		return nil
	}
	client, err := qm.newClient(qm.cfg, qm.logger)
	if err != nil {
		return fmt.Errorf("failed to start queue client: %w", err)
	}
	qm.client = client
	return nil
}

// PushSettlementEvent publishes ev, retrying transient failures.
func (qm *QueueManager) PushSettlementEvent(ctx context.Context, ev *SettlementEvent) error {
	qm.mu.RLock()
	client := qm.client
	qm.mu.RUnlock()
	if client == nil {
		return ErrNotStarted
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement event: %w", err)
	}

	err = retry.Do(
		func() error {
			return client.SendMessage(ctx, body)
		},
		retry.Context(ctx),
		retry.Attempts(qm.cfg.MaxRetryTimes),
		retry.Delay(qm.cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Err(err).
				Uint("attempt", n+1).
				Str("settlement_id", ev.SettlementID).
				Msg("retrying settlement event publish")
		}),
	)
	if err != nil {
		metrics.RecordQueueSendError()
		return fmt.Errorf("failed to push settlement event %s: %w", ev.SettlementID, err)
	}

	return nil
}

// Stop gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Stop() error {
	log.Info().Msg("Shutting down queue manager")

	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.client == nil {
		return nil
	}
	err := qm.client.Close()
	qm.client = nil
	return err
}
