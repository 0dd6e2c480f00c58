package authority

import (
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

// Authority is the engine's delegated signing capability. It owns the pool and
// treasury accounts and signs transfers out of them without a counter-signature
// from anyone else. It is derived once per program id and then passed around.
type Authority struct {
	programID types.Address
	address   types.Address
	bump      uint8
	pool      types.Address
	treasury  types.Address
}

func New(programID types.Address) (*Authority, error) {
	addr, bump, err := FindProgramAddress(AuthorityTag, programID)
	if err != nil {
		return nil, err
	}
	pool, _, err := FindProgramAddress(PoolTag, programID)
	if err != nil {
		return nil, err
	}
	treasury, _, err := FindProgramAddress(TreasuryTag, programID)
	if err != nil {
		return nil, err
	}

	return &Authority{
		programID: programID,
		address:   addr,
		bump:      bump,
		pool:      pool,
		treasury:  treasury,
	}, nil
}

func (a *Authority) Address() types.Address {
	return a.address
}

func (a *Authority) Bump() uint8 {
	return a.bump
}

func (a *Authority) ProgramID() types.Address {
	return a.programID
}

// Signer makes the capability usable wherever a transfer authorization is expected.
func (a *Authority) Signer() types.Address {
	return a.address
}

// PoolAddress is the stable-asset account collecting merchant fees.
func (a *Authority) PoolAddress() types.Address {
	return a.pool
}

// TreasuryAddress is the reward-asset account funding rewards.
func (a *Authority) TreasuryAddress() types.Address {
	return a.treasury
}
