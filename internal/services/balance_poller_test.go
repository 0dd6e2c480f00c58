package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shekel-labs/shekel-settlement/internal/types"
)

func TestProtocolBalances(t *testing.T) {
	t.Run("not initialized", func(t *testing.T) {
		srv, _ := newService(t, nil)

		_, err := srv.ProtocolBalances(t.Context())
		require.NotNil(t, err)
		assert.Contains(t, []types.ErrorCode{types.NotInitialized, types.AccountNotFound}, err.ErrorCode)

		// the poller treats an uninitialized network as nothing to report
		assert.NoError(t, srv.recordProtocolBalances(t.Context()))
	})

	t.Run("reads pool, treasury and ledger", func(t *testing.T) {
		env := newTestEnv(t, 100, nil)
		env.fundTreasury(t, 5_000_000)

		_, err := env.srv.Transact(t.Context(), env.request(10_000))
		require.Nil(t, err)

		balances, err := env.srv.ProtocolBalances(t.Context())
		require.Nil(t, err)
		assert.Equal(t, uint64(100), balances.Pool)
		assert.Equal(t, uint64(5_000_000-999_991), balances.Treasury)
		assert.Equal(t, uint64(10_000), balances.AmountMoved)

		assert.NoError(t, env.srv.recordProtocolBalances(t.Context()))
	})
}

func TestGetStats(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	env.fundTreasury(t, 5_000_000)

	_, err := env.srv.Transact(t.Context(), env.request(10_000))
	require.Nil(t, err)

	stats, err := env.srv.GetStats(t.Context())
	require.Nil(t, err)
	assert.Equal(t, uint64(10_000), stats.AmountMoved)
	assert.Equal(t, uint64(999_991), stats.TotalRewarded)
	assert.Equal(t, uint64(999_991), stats.CurrentRewardRate)
}
