package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shekel-labs/shekel-settlement/consumer"
	"github.com/shekel-labs/shekel-settlement/internal/authority"
	"github.com/shekel-labs/shekel-settlement/internal/config"
	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/token"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	mover     *token.Mover
	authority *authority.Authority
	operator  types.Address
	// nil when no queue is configured
	eventConsumer consumer.EventConsumer

	now   func() time.Time
	newID func() string
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	auth *authority.Authority,
	eventConsumer consumer.EventConsumer,
) *Service {
	return &Service{
		cfg:           cfg,
		db:            db,
		mover:         token.NewMover(db),
		authority:     auth,
		operator:      cfg.Operator.OperatorAddress(),
		eventConsumer: eventConsumer,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

func (s *Service) Authority() *authority.Authority {
	return s.authority
}

// requireOperator rejects every signer but the configured operator.
func (s *Service) requireOperator(signer types.Address) *types.Error {
	if signer != s.operator {
		return types.NewUnauthorizedError(signer)
	}
	return nil
}

// runInTx runs fn as one unit of work and classifies whatever it failed with.
func (s *Service) runInTx(ctx context.Context, fn func(ctx context.Context) error) *types.Error {
	err := s.db.RunInTx(ctx, fn)
	if err == nil {
		return nil
	}
	return types.ToError(err)
}

func (s *Service) HealthCheck(ctx context.Context) *types.Error {
	if err := s.db.Ping(ctx); err != nil {
		return types.NewError(http.StatusServiceUnavailable, types.InternalServiceError, err)
	}
	return nil
}
