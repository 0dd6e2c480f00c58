package services

import (
	"context"
	"math"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

// TransferPool moves collected fees out of the pool. Operator only.
func (s *Service) TransferPool(ctx context.Context, signer, destination types.Address, amount uint64) *types.Error {
	return s.transferOut(ctx, signer, s.authority.PoolAddress(), destination, amount,
		func(cfg *model.NetworkConfig) types.Address { return cfg.StableAssetID })
}

// TransferTreasury moves reward funds out of the treasury. Operator only.
func (s *Service) TransferTreasury(ctx context.Context, signer, destination types.Address, amount uint64) *types.Error {
	return s.transferOut(ctx, signer, s.authority.TreasuryAddress(), destination, amount,
		func(cfg *model.NetworkConfig) types.Address { return cfg.RewardAssetID })
}

func (s *Service) transferOut(
	ctx context.Context,
	signer, from, destination types.Address,
	amount uint64,
	asset func(cfg *model.NetworkConfig) types.Address,
) *types.Error {
	if err := s.requireOperator(signer); err != nil {
		return err
	}

	err := s.runInTx(ctx, func(ctx context.Context) error {
		cfg, err := s.loadNetworkConfig(ctx)
		if err != nil {
			return err
		}
		if _, err := s.mover.ExpectAsset(ctx, destination, asset(cfg)); err != nil {
			return err
		}
		if err := s.mover.Move(ctx, from, destination, s.authority, amount); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Stringer("from", from).
		Stringer("to", destination).
		Uint64("amount", amount).
		Msg("administrative transfer executed")
	return nil
}

// CreateTokenAccount provisions an account for a holder. Settlements never
// create accounts, this exists for the host and for local setups.
func (s *Service) CreateTokenAccount(ctx context.Context, account *model.TokenAccount) *types.Error {
	if err := s.db.SaveNewTokenAccount(ctx, account); err != nil {
		if db.IsDuplicateKeyError(err) {
			return types.NewErrorWithMsg(http.StatusConflict, types.BadRequest, err.Error())
		}
		return types.NewInternalServiceError(err)
	}
	return nil
}

func (s *Service) GetTokenAccount(ctx context.Context, address types.Address) (*model.TokenAccount, *types.Error) {
	account, err := s.db.GetTokenAccount(ctx, address)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewAccountNotFoundError(address)
		}
		return nil, types.NewInternalServiceError(err)
	}
	return account, nil
}

// ListTokenAccounts returns the accounts owned by owner, ordered by address.
func (s *Service) ListTokenAccounts(ctx context.Context, owner types.Address) ([]*model.TokenAccount, *types.Error) {
	accounts, err := s.db.GetTokenAccountsByOwner(ctx, owner)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	if accounts == nil {
		accounts = []*model.TokenAccount{}
	}
	return accounts, nil
}

// CreditTokenAccount adds amount to an existing account out of thin air. It
// backs the development faucet of the in-memory server and has no place in a
// deployment where balances come from the host ledger.
func (s *Service) CreditTokenAccount(ctx context.Context, address types.Address, amount uint64) (*model.TokenAccount, *types.Error) {
	if amount == 0 {
		return nil, types.NewZeroAmountError()
	}

	var credited *model.TokenAccount
	err := s.runInTx(ctx, func(ctx context.Context) error {
		account, err := s.GetTokenAccount(ctx, address)
		if err != nil {
			return err
		}
		if account.Balance > math.MaxUint64-amount {
			return types.NewArithmeticOverflowError("balance of " + address.String())
		}
		account.Balance += amount
		if err := s.db.UpdateTokenAccountBalance(ctx, address, account.Balance); err != nil {
			return types.NewInternalServiceError(err)
		}
		credited = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Warn().
		Stringer("account", address).
		Uint64("amount", amount).
		Msg("credited token account from the development faucet")
	return credited, nil
}
