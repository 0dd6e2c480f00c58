// Package authority derives the fixed protocol addresses of a deployment and
// holds the delegated signing capability the engine uses to move funds out of
// the accounts it controls.
package authority

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/shekel-labs/shekel-settlement/internal/types"
)

// Domain separation tags. Each one names exactly one record per deployment.
const (
	ConfigTag    = "config_v4"
	StatsTag     = "stats_v4"
	PoolTag      = "pool_v4"
	TreasuryTag  = "treasury_v4"
	AuthorityTag = "authority_v4"
)

// Tags lists every tag in provisioning order.
var Tags = []string{ConfigTag, StatsTag, AuthorityTag, PoolTag, TreasuryTag}

const derivationMarker = "ProgramDerivedAddress"

var ErrNoViableBump = errors.New("unable to find a viable derived address bump")

// CreateProgramAddress hashes tag, bump and program id into a candidate
// address. Candidates that are valid ed25519 points are rejected because a
// private key could exist for them.
func CreateProgramAddress(tag string, bump uint8, programID types.Address) (types.Address, error) {
	h := sha256.New()
	h.Write([]byte(tag))
	h.Write([]byte{bump})
	h.Write(programID.Bytes())
	h.Write([]byte(derivationMarker))
	digest := h.Sum(nil)

	if isOnCurve(digest) {
		return types.EmptyAddress, fmt.Errorf("derived address for tag %q bump %d is on the curve", tag, bump)
	}

	return types.AddressFromBytes(digest)
}

// FindProgramAddress returns the first off-curve address for tag, trying
// bumps from 255 down to 0.
func FindProgramAddress(tag string, programID types.Address) (types.Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		addr, err := CreateProgramAddress(tag, uint8(bump), programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
	}
	return types.EmptyAddress, 0, fmt.Errorf("%w for tag %q", ErrNoViableBump, tag)
}

// MustFindProgramAddress is FindProgramAddress for tags known to derive.
func MustFindProgramAddress(tag string, programID types.Address) types.Address {
	addr, _, err := FindProgramAddress(tag, programID)
	if err != nil {
		panic(err)
	}
	return addr
}

func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
