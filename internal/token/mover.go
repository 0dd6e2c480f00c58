// Package token moves balances between token accounts.
package token

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

// Authorization is whatever signs a transfer out of an account. The signer
// has to be the owner of the account being debited.
type Authorization interface {
	Signer() types.Address
}

// Direct is an authorization by the account holder itself.
type Direct types.Address

func (d Direct) Signer() types.Address {
	return types.Address(d)
}

type Mover struct {
	db db.DbInterface
}

func NewMover(db db.DbInterface) *Mover {
	return &Mover{db: db}
}

// Move debits amount from one account and credits it to another holding the
// same asset. Both writes must happen inside the caller's unit of work, Move
// does not open one. A zero amount or a transfer to the same account leaves
// balances untouched but still runs every check.
func (m *Mover) Move(ctx context.Context, from, to types.Address, auth Authorization, amount uint64) *types.Error {
	src, err := m.load(ctx, from)
	if err != nil {
		return err
	}
	dst, err := m.load(ctx, to)
	if err != nil {
		return err
	}

	if src.AssetID != dst.AssetID {
		return types.NewAssetMismatchError(dst.Address, src.AssetID, dst.AssetID)
	}
	if signer := auth.Signer(); signer != src.Owner {
		return types.NewAuthorizationError(src.Address, signer)
	}
	if src.Balance < amount {
		return types.NewInsufficientFundsError(src.Address, src.Balance, amount)
	}
	if amount == 0 || from == to {
		return nil
	}
	if dst.Balance > math.MaxUint64-amount {
		return types.NewArithmeticOverflowError("balance of " + dst.Address.String())
	}

	if err := m.db.UpdateTokenAccountBalance(ctx, from, src.Balance-amount); err != nil {
		return types.NewInternalServiceError(err)
	}
	if err := m.db.UpdateTokenAccountBalance(ctx, to, dst.Balance+amount); err != nil {
		return types.NewInternalServiceError(err)
	}

	log.Ctx(ctx).Debug().
		Stringer("from", from).
		Stringer("to", to).
		Uint64("amount", amount).
		Msg("moved tokens")
	return nil
}

// ExpectAsset loads the account and checks it holds asset.
func (m *Mover) ExpectAsset(ctx context.Context, account, asset types.Address) (*model.TokenAccount, *types.Error) {
	acc, err := m.load(ctx, account)
	if err != nil {
		return nil, err
	}
	if acc.AssetID != asset {
		return nil, types.NewAssetMismatchError(account, asset, acc.AssetID)
	}
	return acc, nil
}

// Balance returns the current balance of the account.
func (m *Mover) Balance(ctx context.Context, account types.Address) (uint64, *types.Error) {
	acc, err := m.load(ctx, account)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (m *Mover) load(ctx context.Context, address types.Address) (*model.TokenAccount, *types.Error) {
	acc, err := m.db.GetTokenAccount(ctx, address)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewAccountNotFoundError(address)
		}
		return nil, types.NewInternalServiceError(err)
	}
	return acc, nil
}
