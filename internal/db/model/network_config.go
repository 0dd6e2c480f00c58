package model

import "github.com/shekel-labs/shekel-settlement/internal/types"

const NetworkConfigCollection = "network_config"

// NetworkConfig is the single configuration record of a deployment.
type NetworkConfig struct {
	StableAssetID                    types.Address `bson:"stable_asset_id" json:"stable_asset_id"`
	RewardAssetID                    types.Address `bson:"reward_asset_id" json:"reward_asset_id"`
	MerchantFeeBasisPoints           uint64        `bson:"merchant_fee_basis_points" json:"merchant_fee_basis_points"`
	PurchaseProtectionFeeBasisPoints uint64        `bson:"purchase_protection_fee_basis_points" json:"purchase_protection_fee_basis_points"` // reserved, not charged
}
