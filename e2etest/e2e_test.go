//go:build e2e

package e2etest

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/queue"
	"github.com/shekel-labs/shekel-settlement/internal/services"
	"github.com/shekel-labs/shekel-settlement/internal/types"
	"github.com/shekel-labs/shekel-settlement/pkg"
)

func TestQueueConsumer(t *testing.T) {
	tm := StartManager(t)
	defer tm.Stop(t)

	ev := queue.NewSettlementEvent(&model.SettlementDocument{
		ID:     "e2e-" + pkg.RandString(8),
		Amount: 1000,
		Fee:    10,
	})
	require.NoError(t, tm.QueueManager.PushSettlementEvent(t.Context(), ev))

	received := tm.NextSettlementEvent(t)
	assert.Equal(t, ev.SettlementID, received.SettlementID)
	assert.Equal(t, queue.SettlementEventType, received.EventType)
}

// TestSettlementEndToEnd initializes a deployment over http, settles a
// payment and checks the committed state and the published event.
func TestSettlementEndToEnd(t *testing.T) {
	tm := StartManager(t)
	defer tm.Stop(t)

	stable := types.MustParseAddress(mustRandomAddress(t))
	reward := types.MustParseAddress(mustRandomAddress(t))

	params := services.NetworkParams{
		StableAssetID:          stable,
		RewardAssetID:          reward,
		MerchantFeeBasisPoints: 250,
	}
	require.Equal(t, http.StatusCreated, tm.Do(t, http.MethodPost, "/v1/network", tm.Operator(), params, nil))

	// second initialization is rejected and changes nothing
	require.Equal(t, http.StatusConflict, tm.Do(t, http.MethodPost, "/v1/network", tm.Operator(), params, nil))

	require.NoError(t, tm.DbClient.UpdateTokenAccountBalance(t.Context(), tm.Authority.TreasuryAddress(), 10_000_000))

	payer := types.MustParseAddress(mustRandomAddress(t))
	merchant := types.MustParseAddress(mustRandomAddress(t))
	source := tm.CreateAccount(t, payer, stable, 1_000_000)
	sourceReward := tm.CreateAccount(t, payer, reward, 0)
	destination := tm.CreateAccount(t, merchant, stable, 0)
	destinationReward := tm.CreateAccount(t, merchant, reward, 0)

	var receipt model.SettlementDocument
	status := tm.Do(t, http.MethodPost, "/v1/transact", payer, map[string]any{
		"source":                     source,
		"source_reward_account":      sourceReward,
		"destination":                destination,
		"destination_reward_account": destinationReward,
		"amount":                     400_000,
	}, &receipt)
	require.Equal(t, http.StatusOK, status)

	// 2.5% of 400000, reward at volume 400000 is 999601
	assert.Equal(t, uint64(10_000), receipt.Fee)
	assert.Equal(t, uint64(390_000), receipt.NetAmount)
	assert.Equal(t, uint64(499_800), receipt.SenderReward)
	assert.Equal(t, uint64(499_801), receipt.RecipientReward)

	ev := tm.NextSettlementEvent(t)
	assert.Equal(t, receipt.ID, ev.SettlementID)
	assert.Equal(t, uint64(400_000), ev.AmountMovedAfter)

	require.Eventually(t, func() bool {
		acc, err := tm.DbClient.GetTokenAccount(t.Context(), destinationReward)
		return err == nil && acc.Balance == receipt.RecipientReward
	}, eventuallyWaitTimeOut, eventuallyPollTime)

	pool, err := tm.DbClient.GetTokenAccount(t.Context(), tm.Authority.PoolAddress())
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), pool.Balance)

	stored, err := tm.DbClient.GetSettlement(t.Context(), receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.Fee, stored.Fee)

	// an overdraft rolls back inside the mongo transaction
	status = tm.Do(t, http.MethodPost, "/v1/transact", payer, map[string]any{
		"source":                     source,
		"source_reward_account":      sourceReward,
		"destination":                destination,
		"destination_reward_account": destinationReward,
		"amount":                     700_000,
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	stats, svcErr := tm.Service.GetStats(t.Context())
	require.Nil(t, svcErr)
	assert.Equal(t, uint64(400_000), stats.AmountMoved)

	src, err := tm.DbClient.GetTokenAccount(t.Context(), source)
	require.NoError(t, err)
	assert.Equal(t, uint64(600_000), src.Balance)

	// pool payout by the operator
	payout := tm.CreateAccount(t, tm.Operator(), stable, 0)
	status = tm.Do(t, http.MethodPost, "/v1/admin/pool/transfer", tm.Operator(), map[string]any{
		"destination": payout,
		"amount":      10_000,
	}, nil)
	require.Equal(t, http.StatusOK, status)

	balances, svcErr := tm.Service.ProtocolBalances(t.Context())
	require.Nil(t, svcErr)
	assert.Zero(t, balances.Pool)
	assert.Equal(t, uint64(10_000_000-999_601), balances.Treasury)

	select {
	case <-tm.SettlementsCh:
		t.Fatal("failed settlement must not publish an event")
	case <-time.After(2 * time.Second):
	}
}

func mustRandomAddress(t *testing.T) string {
	a, err := pkg.RandomAddressString()
	require.NoError(t, err)
	return a
}
