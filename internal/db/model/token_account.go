package model

import "github.com/shekel-labs/shekel-settlement/internal/types"

const TokenAccountCollection = "token_accounts"

type TokenAccount struct {
	Address types.Address `bson:"_id" json:"address"` // Primary key
	Owner   types.Address `bson:"owner" json:"owner"`
	AssetID types.Address `bson:"asset_id" json:"asset_id"`
	Balance uint64        `bson:"balance" json:"balance"`
}

func NewTokenAccount(address, owner, assetID types.Address, balance uint64) *TokenAccount {
	return &TokenAccount{
		Address: address,
		Owner:   owner,
		AssetID: assetID,
		Balance: balance,
	}
}
