package model

import "math"

const StatsCollection = "stats"

// StatsDocument holds the running totals of the engine. AmountMoved is the
// input of the reward curve.
type StatsDocument struct {
	ID                      string `bson:"_id" json:"-"`                                            // Always "stats_v4"
	AmountMoved             uint64 `bson:"amount_moved" json:"amount_moved"`                         // Cumulative settled stable-asset volume
	AmountRewardedSender    uint64 `bson:"amount_rewarded_sender" json:"amount_rewarded_sender"`       // Cumulative reward paid to payers
	AmountRewardedRecipient uint64 `bson:"amount_rewarded_recipient" json:"amount_rewarded_recipient"` // Cumulative reward paid to recipients
	LastUpdated             int64  `bson:"last_updated" json:"last_updated"`                           // Unix timestamp of last update
}

// TotalRewarded is everything the engine has paid out of the treasury. Each
// side is bounded by uint64 on its own, so the sum saturates instead of
// wrapping.
func (s *StatsDocument) TotalRewarded() uint64 {
	if s.AmountRewardedSender > math.MaxUint64-s.AmountRewardedRecipient {
		return math.MaxUint64
	}
	return s.AmountRewardedSender + s.AmountRewardedRecipient
}
