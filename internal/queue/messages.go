package queue

import (
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
)

const SettlementEventType = "SETTLEMENT_COMPLETED"

// SettlementEvent is published once a settlement has been committed.
type SettlementEvent struct {
	SchemaVersion            int    `json:"schema_version"`
	EventType                string `json:"event_type"`
	SettlementID             string `json:"settlement_id"`
	Owner                    string `json:"owner"`
	Source                   string `json:"source"`
	Destination              string `json:"destination"`
	SourceRewardAccount      string `json:"source_reward_account"`
	DestinationRewardAccount string `json:"destination_reward_account"`
	Amount                   uint64 `json:"amount"`
	Fee                      uint64 `json:"fee"`
	NetAmount                uint64 `json:"net_amount"`
	SenderReward             uint64 `json:"sender_reward"`
	RecipientReward          uint64 `json:"recipient_reward"`
	AmountMovedAfter         uint64 `json:"amount_moved_after"`
	CreatedAt                int64  `json:"created_at"`
}

func NewSettlementEvent(doc *model.SettlementDocument) *SettlementEvent {
	return &SettlementEvent{
		SchemaVersion:            1,
		EventType:                SettlementEventType,
		SettlementID:             doc.ID,
		Owner:                    doc.Owner.String(),
		Source:                   doc.Source.String(),
		Destination:              doc.Destination.String(),
		SourceRewardAccount:      doc.SourceRewardAccount.String(),
		DestinationRewardAccount: doc.DestinationRewardAccount.String(),
		Amount:                   doc.Amount,
		Fee:                      doc.Fee,
		NetAmount:                doc.NetAmount,
		SenderReward:             doc.SenderReward,
		RecipientReward:          doc.RecipientReward,
		AmountMovedAfter:         doc.AmountMovedAfter,
		CreatedAt:                doc.CreatedAt,
	}
}
