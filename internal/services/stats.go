package services

import (
	"context"
	"net/http"

	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/tokenomics"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

// StatsPublic is the ledger with the reward rate the next fee-bearing
// settlement would start from.
type StatsPublic struct {
	AmountMoved             uint64 `json:"amount_moved"`
	AmountRewardedSender    uint64 `json:"amount_rewarded_sender"`
	AmountRewardedRecipient uint64 `json:"amount_rewarded_recipient"`
	TotalRewarded           uint64 `json:"total_rewarded"`
	CurrentRewardRate       uint64 `json:"current_reward_rate"`
	LastUpdated             int64  `json:"last_updated"`
}

func (s *Service) GetStats(ctx context.Context) (*StatsPublic, *types.Error) {
	stats, err := s.loadStats(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsPublic{
		AmountMoved:             stats.AmountMoved,
		AmountRewardedSender:    stats.AmountRewardedSender,
		AmountRewardedRecipient: stats.AmountRewardedRecipient,
		TotalRewarded:           stats.TotalRewarded(),
		CurrentRewardRate:       tokenomics.RewardRate(stats.AmountMoved),
		LastUpdated:             stats.LastUpdated,
	}, nil
}

func (s *Service) GetSettlement(ctx context.Context, id string) (*model.SettlementDocument, *types.Error) {
	doc, err := s.db.GetSettlement(ctx, id)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, err.Error())
		}
		return nil, types.NewInternalServiceError(err)
	}
	return doc, nil
}
