package model

import "github.com/shekel-labs/shekel-settlement/internal/types"

const SettlementCollection = "settlements"

// SettlementDocument is the receipt of one successful settlement.
type SettlementDocument struct {
	ID                       string        `bson:"_id" json:"id"`
	Owner                    types.Address `bson:"owner" json:"owner"`
	Source                   types.Address `bson:"source" json:"source"`
	Destination              types.Address `bson:"destination" json:"destination"`
	SourceRewardAccount      types.Address `bson:"source_reward_account" json:"source_reward_account"`
	DestinationRewardAccount types.Address `bson:"destination_reward_account" json:"destination_reward_account"`
	Amount                   uint64        `bson:"amount" json:"amount"`
	Fee                      uint64        `bson:"fee" json:"fee"`
	NetAmount                uint64        `bson:"net_amount" json:"net_amount"`
	SenderReward             uint64        `bson:"sender_reward" json:"sender_reward"`
	RecipientReward          uint64        `bson:"recipient_reward" json:"recipient_reward"`
	AmountMovedAfter         uint64        `bson:"amount_moved_after" json:"amount_moved_after"` // Ledger volume including this settlement
	CreatedAt                int64         `bson:"created_at" json:"created_at"`
}

func (s *SettlementDocument) Rewarded() bool {
	return s.SenderReward+s.RecipientReward > 0
}
