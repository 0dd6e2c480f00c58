package model

import "github.com/shekel-labs/shekel-settlement/internal/types"

const AuthorityCollection = "authority"

// AuthorityDocument marks that the delegated signing authority was provisioned.
type AuthorityDocument struct {
	ID      string        `bson:"_id"` // Always "authority_v4"
	Address types.Address `bson:"address"`
	Bump    uint8         `bson:"bump"`
}
