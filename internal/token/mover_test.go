package token_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/token"
	"github.com/shekel-labs/shekel-settlement/internal/types"
	"github.com/shekel-labs/shekel-settlement/testutil"
)

type fixture struct {
	db    *db.MemoryDatabase
	mover *token.Mover
	asset types.Address
}

func newFixture(t *testing.T) *fixture {
	store := db.NewMemoryDatabase()
	return &fixture{
		db:    store,
		mover: token.NewMover(store),
		asset: testutil.RandomAddress(t),
	}
}

func (f *fixture) account(t *testing.T, owner, asset types.Address, balance uint64) types.Address {
	t.Helper()

	address := testutil.RandomAddress(t)
	err := f.db.SaveNewTokenAccount(t.Context(), model.NewTokenAccount(address, owner, asset, balance))
	require.NoError(t, err)
	return address
}

func (f *fixture) balance(t *testing.T, address types.Address) uint64 {
	t.Helper()

	acc, err := f.db.GetTokenAccount(t.Context(), address)
	require.NoError(t, err)
	return acc.Balance
}

func TestMover_Move(t *testing.T) {
	t.Run("direct transfer", func(t *testing.T) {
		f := newFixture(t)
		owner := testutil.RandomAddress(t)
		from := f.account(t, owner, f.asset, 1_000)
		to := f.account(t, testutil.RandomAddress(t), f.asset, 5)

		err := f.mover.Move(t.Context(), from, to, token.Direct(owner), 400)
		require.Nil(t, err)

		assert.Equal(t, uint64(600), f.balance(t, from))
		assert.Equal(t, uint64(405), f.balance(t, to))
	})

	t.Run("entire balance", func(t *testing.T) {
		f := newFixture(t)
		owner := testutil.RandomAddress(t)
		from := f.account(t, owner, f.asset, 1_000)
		to := f.account(t, testutil.RandomAddress(t), f.asset, 0)

		require.Nil(t, f.mover.Move(t.Context(), from, to, token.Direct(owner), 1_000))
		assert.Zero(t, f.balance(t, from))
		assert.Equal(t, uint64(1_000), f.balance(t, to))
	})

	t.Run("zero amount runs checks and moves nothing", func(t *testing.T) {
		f := newFixture(t)
		owner := testutil.RandomAddress(t)
		from := f.account(t, owner, f.asset, 10)
		to := f.account(t, testutil.RandomAddress(t), f.asset, 10)

		require.Nil(t, f.mover.Move(t.Context(), from, to, token.Direct(owner), 0))
		assert.Equal(t, uint64(10), f.balance(t, from))
		assert.Equal(t, uint64(10), f.balance(t, to))

		err := f.mover.Move(t.Context(), from, to, token.Direct(testutil.RandomAddress(t)), 0)
		require.NotNil(t, err)
		assert.Equal(t, types.AuthorizationError, err.ErrorCode)
	})

	t.Run("self transfer keeps balance", func(t *testing.T) {
		f := newFixture(t)
		owner := testutil.RandomAddress(t)
		acc := f.account(t, owner, f.asset, 10)

		require.Nil(t, f.mover.Move(t.Context(), acc, acc, token.Direct(owner), 7))
		assert.Equal(t, uint64(10), f.balance(t, acc))
	})

	t.Run("missing account", func(t *testing.T) {
		f := newFixture(t)
		owner := testutil.RandomAddress(t)
		from := f.account(t, owner, f.asset, 10)

		err := f.mover.Move(t.Context(), from, testutil.RandomAddress(t), token.Direct(owner), 1)
		require.NotNil(t, err)
		assert.Equal(t, types.AccountNotFound, err.ErrorCode)

		err = f.mover.Move(t.Context(), testutil.RandomAddress(t), from, token.Direct(owner), 1)
		require.NotNil(t, err)
		assert.Equal(t, types.AccountNotFound, err.ErrorCode)
	})

	t.Run("asset mismatch", func(t *testing.T) {
		f := newFixture(t)
		owner := testutil.RandomAddress(t)
		from := f.account(t, owner, f.asset, 10)
		to := f.account(t, testutil.RandomAddress(t), testutil.RandomAddress(t), 0)

		err := f.mover.Move(t.Context(), from, to, token.Direct(owner), 1)
		require.NotNil(t, err)
		assert.Equal(t, types.AssetMismatch, err.ErrorCode)
		assert.Equal(t, uint64(10), f.balance(t, from))
	})

	t.Run("signer is not the owner", func(t *testing.T) {
		f := newFixture(t)
		from := f.account(t, testutil.RandomAddress(t), f.asset, 10)
		to := f.account(t, testutil.RandomAddress(t), f.asset, 0)

		err := f.mover.Move(t.Context(), from, to, token.Direct(testutil.RandomAddress(t)), 1)
		require.NotNil(t, err)
		assert.Equal(t, types.AuthorizationError, err.ErrorCode)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		f := newFixture(t)
		owner := testutil.RandomAddress(t)
		from := f.account(t, owner, f.asset, 10)
		to := f.account(t, testutil.RandomAddress(t), f.asset, 0)

		err := f.mover.Move(t.Context(), from, to, token.Direct(owner), 11)
		require.NotNil(t, err)
		assert.Equal(t, types.InsufficientFunds, err.ErrorCode)
		assert.Equal(t, uint64(10), f.balance(t, from))
		assert.Zero(t, f.balance(t, to))
	})

	t.Run("credit overflow", func(t *testing.T) {
		f := newFixture(t)
		owner := testutil.RandomAddress(t)
		from := f.account(t, owner, f.asset, 10)
		to := f.account(t, testutil.RandomAddress(t), f.asset, math.MaxUint64-5)

		err := f.mover.Move(t.Context(), from, to, token.Direct(owner), 6)
		require.NotNil(t, err)
		assert.Equal(t, types.ArithmeticOverflow, err.ErrorCode)
		assert.Equal(t, uint64(10), f.balance(t, from))
	})
}

func TestMover_ExpectAsset(t *testing.T) {
	f := newFixture(t)
	acc := f.account(t, testutil.RandomAddress(t), f.asset, 3)

	got, err := f.mover.ExpectAsset(t.Context(), acc, f.asset)
	require.Nil(t, err)
	assert.Equal(t, uint64(3), got.Balance)

	_, err = f.mover.ExpectAsset(t.Context(), acc, testutil.RandomAddress(t))
	require.NotNil(t, err)
	assert.Equal(t, types.AssetMismatch, err.ErrorCode)

	_, err = f.mover.ExpectAsset(t.Context(), testutil.RandomAddress(t), f.asset)
	require.NotNil(t, err)
	assert.Equal(t, types.AccountNotFound, err.ErrorCode)
}
