package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/tokenomics"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

// NetworkParams is the full set of configuration fields. Every write replaces
// all four of them.
type NetworkParams struct {
	StableAssetID                    types.Address `json:"stable_asset_id"`
	RewardAssetID                    types.Address `json:"reward_asset_id"`
	MerchantFeeBasisPoints           uint64        `json:"merchant_fee_basis_points"`
	PurchaseProtectionFeeBasisPoints uint64        `json:"purchase_protection_fee_basis_points"`
}

func (p NetworkParams) toModel() *model.NetworkConfig {
	return &model.NetworkConfig{
		StableAssetID:                    p.StableAssetID,
		RewardAssetID:                    p.RewardAssetID,
		MerchantFeeBasisPoints:           p.MerchantFeeBasisPoints,
		PurchaseProtectionFeeBasisPoints: p.PurchaseProtectionFeeBasisPoints,
	}
}

// Initialize provisions the configuration, a zeroed ledger, the authority
// marker and the pool and treasury accounts, all in one unit of work.
func (s *Service) Initialize(ctx context.Context, signer types.Address, params NetworkParams) *types.Error {
	if err := s.requireOperator(signer); err != nil {
		return err
	}
	warnUncheckedBasisPoints(ctx, params)

	auth := s.authority
	err := s.runInTx(ctx, func(ctx context.Context) error {
		if err := s.db.SaveNewNetworkConfig(ctx, params.toModel()); err != nil {
			return alreadyInitialized(err)
		}
		if err := s.db.SaveNewStats(ctx, &model.StatsDocument{}); err != nil {
			return alreadyInitialized(err)
		}
		if err := s.db.SaveNewAuthority(ctx, &model.AuthorityDocument{
			Address: auth.Address(),
			Bump:    auth.Bump(),
		}); err != nil {
			return alreadyInitialized(err)
		}

		pool := model.NewTokenAccount(auth.PoolAddress(), auth.Address(), params.StableAssetID, 0)
		if err := s.db.SaveNewTokenAccount(ctx, pool); err != nil {
			return alreadyInitialized(err)
		}
		treasury := model.NewTokenAccount(auth.TreasuryAddress(), auth.Address(), params.RewardAssetID, 0)
		if err := s.db.SaveNewTokenAccount(ctx, treasury); err != nil {
			return alreadyInitialized(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Stringer("stable_asset", params.StableAssetID).
		Stringer("reward_asset", params.RewardAssetID).
		Uint64("merchant_fee_bps", params.MerchantFeeBasisPoints).
		Stringer("pool", auth.PoolAddress()).
		Stringer("treasury", auth.TreasuryAddress()).
		Msg("network initialized")
	return nil
}

// SetNetworkConfig overwrites the whole configuration of an initialized
// network. Basis points are not range checked.
func (s *Service) SetNetworkConfig(ctx context.Context, signer types.Address, params NetworkParams) *types.Error {
	if err := s.requireOperator(signer); err != nil {
		return err
	}
	warnUncheckedBasisPoints(ctx, params)

	err := s.runInTx(ctx, func(ctx context.Context) error {
		if _, err := s.loadNetworkConfig(ctx); err != nil {
			return err
		}
		if err := s.db.UpsertNetworkConfig(ctx, params.toModel()); err != nil {
			return types.NewInternalServiceError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Uint64("merchant_fee_bps", params.MerchantFeeBasisPoints).
		Uint64("purchase_protection_fee_bps", params.PurchaseProtectionFeeBasisPoints).
		Msg("network config updated")
	return nil
}

func (s *Service) GetNetworkConfig(ctx context.Context) (*model.NetworkConfig, *types.Error) {
	return s.loadNetworkConfig(ctx)
}

func (s *Service) loadNetworkConfig(ctx context.Context) (*model.NetworkConfig, *types.Error) {
	cfg, err := s.db.GetNetworkConfig(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewNotInitializedError()
		}
		return nil, types.NewInternalServiceError(err)
	}
	return cfg, nil
}

func alreadyInitialized(err error) error {
	if db.IsDuplicateKeyError(err) {
		return types.NewAlreadyInitializedError()
	}
	return types.NewInternalServiceError(err)
}

// A rate of 100% or more is accepted here and only fails later, at settlement time.
func warnUncheckedBasisPoints(ctx context.Context, params NetworkParams) {
	if params.MerchantFeeBasisPoints >= tokenomics.BasisPointsPrecision {
		log.Ctx(ctx).Warn().
			Uint64("merchant_fee_bps", params.MerchantFeeBasisPoints).
			Msg("merchant fee is not below 10000 basis points, settlements will fail with FEE_EXCEEDS_AMOUNT")
	}
}

// VerifyAuthority checks the authority marker written by Initialize against
// the authority derived from the configured program id. A store initialized
// under another program id would leave pool and treasury unreachable. An
// uninitialized store passes.
func (s *Service) VerifyAuthority(ctx context.Context) *types.Error {
	stored, err := s.db.GetAuthority(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			log.Ctx(ctx).Debug().Msg("no authority marker yet, network not initialized")
			return nil
		}
		return types.NewInternalServiceError(err)
	}

	if stored.Address != s.authority.Address() || stored.Bump != s.authority.Bump() {
		return types.NewErrorWithMsg(http.StatusConflict, types.AuthorityMismatch, fmt.Sprintf(
			"stored authority %s (bump %d) does not match %s (bump %d) derived from program id %s",
			stored.Address, stored.Bump, s.authority.Address(), s.authority.Bump(), s.authority.ProgramID(),
		))
	}
	return nil
}
