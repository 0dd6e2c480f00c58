package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/shekel-labs/shekel-settlement/internal/observability/metrics"
	"github.com/shekel-labs/shekel-settlement/internal/tokenomics"
	"github.com/shekel-labs/shekel-settlement/internal/types"
	"github.com/shekel-labs/shekel-settlement/internal/utils/poller"
)

// ProtocolBalances is a point in time view of the accounts the engine controls.
type ProtocolBalances struct {
	Pool        uint64 `json:"pool"`
	Treasury    uint64 `json:"treasury"`
	AmountMoved uint64 `json:"amount_moved"`
}

// StartBalancePoller periodically exports pool, treasury and ledger values as
// gauges so an empty treasury can be alerted on.
func (s *Service) StartBalancePoller(ctx context.Context) {
	balancePoller := poller.NewPoller(
		s.cfg.Poller.BalancePollingInterval,
		metrics.InstrumentPoller("protocol_balances", s.recordProtocolBalances),
	)
	go balancePoller.Start(ctx)
}

func (s *Service) recordProtocolBalances(ctx context.Context) error {
	balances, err := s.ProtocolBalances(ctx)
	if err != nil {
		if types.HasErrorCode(err, types.NotInitialized) || types.HasErrorCode(err, types.AccountNotFound) {
			log.Ctx(ctx).Debug().Msg("network not initialized, skipping balance poll")
			return nil
		}
		return err
	}

	metrics.RecordAccountBalance("pool", balances.Pool)
	metrics.RecordAccountBalance("treasury", balances.Treasury)
	metrics.RecordLedger(balances.AmountMoved, tokenomics.RewardRate(balances.AmountMoved))

	if balances.Treasury == 0 {
		log.Ctx(ctx).Warn().Msg("treasury is empty, settlements pay no reward")
	}
	return nil
}

// ProtocolBalances reads the pool, the treasury and the ledger concurrently.
func (s *Service) ProtocolBalances(ctx context.Context) (*ProtocolBalances, *types.Error) {
	var balances ProtocolBalances

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		b, err := s.mover.Balance(ctx, s.authority.PoolAddress())
		if err != nil {
			return err
		}
		balances.Pool = b
		return nil
	})
	p.Go(func(ctx context.Context) error {
		b, err := s.mover.Balance(ctx, s.authority.TreasuryAddress())
		if err != nil {
			return err
		}
		balances.Treasury = b
		return nil
	})
	p.Go(func(ctx context.Context) error {
		stats, err := s.loadStats(ctx)
		if err != nil {
			return err
		}
		balances.AmountMoved = stats.AmountMoved
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, types.ToError(fmt.Errorf("failed to read protocol balances: %w", err))
	}
	return &balances, nil
}
