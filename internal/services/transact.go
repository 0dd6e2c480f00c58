package services

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/observability/metrics"
	"github.com/shekel-labs/shekel-settlement/internal/queue"
	"github.com/shekel-labs/shekel-settlement/internal/token"
	"github.com/shekel-labs/shekel-settlement/internal/tokenomics"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

const publishTimeout = 5 * time.Second

// TransactRequest is one payment. Owner is the already authenticated payer
// and must own Source.
type TransactRequest struct {
	Owner                    types.Address `json:"owner"`
	Source                   types.Address `json:"source"`
	SourceRewardAccount      types.Address `json:"source_reward_account"`
	Destination              types.Address `json:"destination"`
	DestinationRewardAccount types.Address `json:"destination_reward_account"`
	Amount                   uint64        `json:"amount"`
}

// Transact settles a payment: the merchant fee goes to the pool, the rest to
// the destination, and while the treasury holds funds both parties receive a
// reward from the curve. Either every transfer and ledger update commits or
// none does.
func (s *Service) Transact(ctx context.Context, req *TransactRequest) (*model.SettlementDocument, *types.Error) {
	receipt, err := s.transact(ctx, req)
	if err != nil {
		metrics.RecordSettlement(err.ErrorCode.String())
		log.Ctx(ctx).Debug().
			Err(err).
			Stringer("owner", req.Owner).
			Uint64("amount", req.Amount).
			Msg("settlement rejected")
		return nil, err
	}

	metrics.RecordSettlement("")
	metrics.RecordSettledAmounts(receipt.Amount, receipt.Fee, receipt.SenderReward, receipt.RecipientReward)
	metrics.RecordLedger(receipt.AmountMovedAfter, tokenomics.RewardRate(receipt.AmountMovedAfter))

	log.Ctx(ctx).Info().
		Str("settlement_id", receipt.ID).
		Stringer("owner", receipt.Owner).
		Uint64("amount", receipt.Amount).
		Uint64("fee", receipt.Fee).
		Uint64("sender_reward", receipt.SenderReward).
		Uint64("recipient_reward", receipt.RecipientReward).
		Msg("settlement committed")

	s.publishSettlement(ctx, receipt)
	return receipt, nil
}

func (s *Service) transact(ctx context.Context, req *TransactRequest) (*model.SettlementDocument, *types.Error) {
	if req.Amount == 0 {
		return nil, types.NewZeroAmountError()
	}

	receipt := &model.SettlementDocument{
		ID:                       s.newID(),
		Owner:                    req.Owner,
		Source:                   req.Source,
		Destination:              req.Destination,
		SourceRewardAccount:      req.SourceRewardAccount,
		DestinationRewardAccount: req.DestinationRewardAccount,
		Amount:                   req.Amount,
		CreatedAt:                s.now().Unix(),
	}

	err := s.runInTx(ctx, func(ctx context.Context) error {
		// the driver may run fn more than once
		receipt.Fee, receipt.NetAmount = 0, 0
		receipt.SenderReward, receipt.RecipientReward = 0, 0

		if err := s.settle(ctx, req, receipt); err != nil {
			return err
		}
		if err := s.db.SaveSettlement(ctx, receipt); err != nil {
			return types.NewInternalServiceError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// settle runs inside the unit of work and fills in receipt.
func (s *Service) settle(ctx context.Context, req *TransactRequest, receipt *model.SettlementDocument) *types.Error {
	cfg, err := s.loadNetworkConfig(ctx)
	if err != nil {
		return err
	}

	fee, err := tokenomics.MerchantFee(req.Amount, cfg.MerchantFeeBasisPoints)
	if err != nil {
		return err
	}
	receipt.Fee = fee
	receipt.NetAmount = req.Amount - fee

	if err := s.checkAccounts(ctx, req, cfg); err != nil {
		return err
	}

	payer := token.Direct(req.Owner)
	if err := s.mover.Move(ctx, req.Source, s.authority.PoolAddress(), payer, fee); err != nil {
		return err
	}
	if err := s.mover.Move(ctx, req.Source, req.Destination, payer, receipt.NetAmount); err != nil {
		return err
	}

	stats, err := s.loadStats(ctx)
	if err != nil {
		return err
	}
	if stats.AmountMoved > math.MaxUint64-req.Amount {
		return types.NewArithmeticOverflowError("amount moved")
	}
	stats.AmountMoved += req.Amount
	receipt.AmountMovedAfter = stats.AmountMoved

	if fee > 0 {
		if err := s.payReward(ctx, req, stats, receipt); err != nil {
			return err
		}
	}

	if err := s.db.UpdateStats(ctx, stats); err != nil {
		return types.NewInternalServiceError(err)
	}
	return nil
}

// payReward pays the curve reward for the volume in stats, capped at the
// treasury balance. An empty treasury pays nothing and is not an error.
func (s *Service) payReward(
	ctx context.Context, req *TransactRequest, stats *model.StatsDocument, receipt *model.SettlementDocument,
) *types.Error {
	treasury := s.authority.TreasuryAddress()
	treasuryBalance, err := s.mover.Balance(ctx, treasury)
	if err != nil {
		return err
	}
	if treasuryBalance == 0 {
		log.Ctx(ctx).Warn().Msg("treasury is empty, no reward paid")
		return nil
	}

	budget := tokenomics.ClampToTreasury(tokenomics.RewardRate(stats.AmountMoved), treasuryBalance)
	senderReward, recipientReward := tokenomics.SplitReward(budget)

	if err := s.mover.Move(ctx, treasury, req.SourceRewardAccount, s.authority, senderReward); err != nil {
		return err
	}
	if err := s.mover.Move(ctx, treasury, req.DestinationRewardAccount, s.authority, recipientReward); err != nil {
		return err
	}

	if stats.AmountRewardedSender > math.MaxUint64-senderReward {
		return types.NewArithmeticOverflowError("amount rewarded to senders")
	}
	if stats.AmountRewardedRecipient > math.MaxUint64-recipientReward {
		return types.NewArithmeticOverflowError("amount rewarded to recipients")
	}
	stats.AmountRewardedSender += senderReward
	stats.AmountRewardedRecipient += recipientReward

	receipt.SenderReward = senderReward
	receipt.RecipientReward = recipientReward
	return nil
}

// checkAccounts enforces which asset every referenced account holds and that
// the payer owns the source.
func (s *Service) checkAccounts(ctx context.Context, req *TransactRequest, cfg *model.NetworkConfig) *types.Error {
	source, err := s.mover.ExpectAsset(ctx, req.Source, cfg.StableAssetID)
	if err != nil {
		return err
	}
	if source.Owner != req.Owner {
		return types.NewAuthorizationError(req.Source, req.Owner)
	}

	expected := []struct {
		account types.Address
		asset   types.Address
	}{
		{req.Destination, cfg.StableAssetID},
		{s.authority.PoolAddress(), cfg.StableAssetID},
		{req.SourceRewardAccount, cfg.RewardAssetID},
		{req.DestinationRewardAccount, cfg.RewardAssetID},
		{s.authority.TreasuryAddress(), cfg.RewardAssetID},
	}
	for _, e := range expected {
		if _, err := s.mover.ExpectAsset(ctx, e.account, e.asset); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) loadStats(ctx context.Context) (*model.StatsDocument, *types.Error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewNotInitializedError()
		}
		return nil, types.NewInternalServiceError(err)
	}
	return stats, nil
}

// publishSettlement is best effort, the settlement is already committed. It
// outlives the request context so a client hanging up does not drop the
// event, but is bounded by publishTimeout.
func (s *Service) publishSettlement(ctx context.Context, receipt *model.SettlementDocument) {
	if s.eventConsumer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.eventConsumer.PushSettlementEvent(ctx, queue.NewSettlementEvent(receipt)); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("settlement_id", receipt.ID).
			Msg("failed to publish settlement event")
	}
}
