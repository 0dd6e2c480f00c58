package consumer

import (
	"context"

	"github.com/shekel-labs/shekel-settlement/internal/queue"
)

//go:generate mockery --name=EventConsumer --output=../tests/mocks --outpkg=mocks --filename=mock_event_consumer.go
type EventConsumer interface {
	Start() error
	PushSettlementEvent(ctx context.Context, ev *queue.SettlementEvent) error
	Stop() error
}
