package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/testutil"
)

// testStore runs the behaviour every DbInterface implementation shares.
// newStore must return an empty store.
func testStore(t *testing.T, newStore func(t *testing.T) db.DbInterface) {
	t.Run("network config", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		_, err := store.GetNetworkConfig(ctx)
		require.True(t, db.IsNotFoundError(err))

		cfg := &model.NetworkConfig{
			StableAssetID:                    testutil.RandomAddress(t),
			RewardAssetID:                    testutil.RandomAddress(t),
			MerchantFeeBasisPoints:           100,
			PurchaseProtectionFeeBasisPoints: 50,
		}
		require.NoError(t, store.SaveNewNetworkConfig(ctx, cfg))

		err = store.SaveNewNetworkConfig(ctx, cfg)
		require.True(t, db.IsDuplicateKeyError(err))

		got, err := store.GetNetworkConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, cfg, got)

		updated := *cfg
		updated.MerchantFeeBasisPoints = 0
		require.NoError(t, store.UpsertNetworkConfig(ctx, &updated))

		got, err = store.GetNetworkConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, &updated, got)
	})

	t.Run("stats", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		_, err := store.GetStats(ctx)
		require.True(t, db.IsNotFoundError(err))

		err = store.UpdateStats(ctx, &model.StatsDocument{AmountMoved: 1})
		require.True(t, db.IsNotFoundError(err))

		require.NoError(t, store.SaveNewStats(ctx, &model.StatsDocument{}))
		err = store.SaveNewStats(ctx, &model.StatsDocument{})
		require.True(t, db.IsDuplicateKeyError(err))

		require.NoError(t, store.UpdateStats(ctx, &model.StatsDocument{
			AmountMoved:             10_000,
			AmountRewardedSender:    499_995,
			AmountRewardedRecipient: 499_996,
		}))

		stats, err := store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(10_000), stats.AmountMoved)
		assert.Equal(t, uint64(499_995), stats.AmountRewardedSender)
		assert.Equal(t, uint64(499_996), stats.AmountRewardedRecipient)
		assert.Equal(t, uint64(999_991), stats.TotalRewarded())
		assert.NotZero(t, stats.LastUpdated)
	})

	t.Run("authority", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		_, err := store.GetAuthority(ctx)
		require.True(t, db.IsNotFoundError(err))

		doc := &model.AuthorityDocument{Address: testutil.RandomAddress(t), Bump: 254}
		require.NoError(t, store.SaveNewAuthority(ctx, doc))
		require.True(t, db.IsDuplicateKeyError(store.SaveNewAuthority(ctx, doc)))

		got, err := store.GetAuthority(ctx)
		require.NoError(t, err)
		assert.Equal(t, doc.Address, got.Address)
		assert.Equal(t, uint8(254), got.Bump)
	})

	t.Run("token accounts", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		owner := testutil.RandomAddress(t)
		asset := testutil.RandomAddress(t)
		first := model.NewTokenAccount(testutil.RandomAddress(t), owner, asset, 500)
		second := model.NewTokenAccount(testutil.RandomAddress(t), owner, asset, 0)
		other := model.NewTokenAccount(testutil.RandomAddress(t), testutil.RandomAddress(t), asset, 7)

		for _, account := range []*model.TokenAccount{first, second, other} {
			require.NoError(t, store.SaveNewTokenAccount(ctx, account))
		}
		require.True(t, db.IsDuplicateKeyError(store.SaveNewTokenAccount(ctx, first)))

		got, err := store.GetTokenAccount(ctx, first.Address)
		require.NoError(t, err)
		assert.Equal(t, first, got)

		_, err = store.GetTokenAccount(ctx, testutil.RandomAddress(t))
		require.True(t, db.IsNotFoundError(err))

		require.NoError(t, store.UpdateTokenAccountBalance(ctx, first.Address, 42))
		got, err = store.GetTokenAccount(ctx, first.Address)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), got.Balance)

		err = store.UpdateTokenAccountBalance(ctx, testutil.RandomAddress(t), 1)
		require.True(t, db.IsNotFoundError(err))

		owned, err := store.GetTokenAccountsByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, owned, 2)
	})

	t.Run("settlements", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		doc := &model.SettlementDocument{
			ID:        "settlement-1",
			Owner:     testutil.RandomAddress(t),
			Amount:    10_000,
			Fee:       100,
			NetAmount: 9_900,
			CreatedAt: 1700000000,
		}
		require.NoError(t, store.SaveSettlement(ctx, doc))
		require.True(t, db.IsDuplicateKeyError(store.SaveSettlement(ctx, doc)))

		got, err := store.GetSettlement(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc, got)

		_, err = store.GetSettlement(ctx, "missing")
		require.True(t, db.IsNotFoundError(err))
	})

	t.Run("unit of work commits", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		account := model.NewTokenAccount(testutil.RandomAddress(t), testutil.RandomAddress(t), testutil.RandomAddress(t), 100)
		require.NoError(t, store.SaveNewTokenAccount(ctx, account))
		require.NoError(t, store.SaveNewStats(ctx, &model.StatsDocument{}))

		err := store.RunInTx(ctx, func(ctx context.Context) error {
			if err := store.UpdateTokenAccountBalance(ctx, account.Address, 60); err != nil {
				return err
			}
			// reads inside the unit see its own writes
			got, err := store.GetTokenAccount(ctx, account.Address)
			if err != nil {
				return err
			}
			return store.UpdateStats(ctx, &model.StatsDocument{AmountMoved: 100 - got.Balance})
		})
		require.NoError(t, err)

		got, err := store.GetTokenAccount(ctx, account.Address)
		require.NoError(t, err)
		assert.Equal(t, uint64(60), got.Balance)

		stats, err := store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(40), stats.AmountMoved)
	})

	t.Run("unit of work rolls back on error", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		account := model.NewTokenAccount(testutil.RandomAddress(t), testutil.RandomAddress(t), testutil.RandomAddress(t), 100)
		require.NoError(t, store.SaveNewTokenAccount(ctx, account))
		require.NoError(t, store.SaveNewStats(ctx, &model.StatsDocument{AmountMoved: 5}))

		errAbort := errors.New("abort")
		err := store.RunInTx(ctx, func(ctx context.Context) error {
			if err := store.UpdateTokenAccountBalance(ctx, account.Address, 0); err != nil {
				return err
			}
			if err := store.UpdateStats(ctx, &model.StatsDocument{AmountMoved: 105}); err != nil {
				return err
			}
			if err := store.SaveSettlement(ctx, &model.SettlementDocument{ID: "aborted"}); err != nil {
				return err
			}
			return errAbort
		})
		require.ErrorIs(t, err, errAbort)

		got, err := store.GetTokenAccount(ctx, account.Address)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), got.Balance)

		stats, err := store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), stats.AmountMoved)

		_, err = store.GetSettlement(ctx, "aborted")
		require.True(t, db.IsNotFoundError(err))
	})
}
