package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shekel-labs/shekel-settlement/consumer"
	"github.com/shekel-labs/shekel-settlement/internal/authority"
	"github.com/shekel-labs/shekel-settlement/internal/config"
	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/types"
	"github.com/shekel-labs/shekel-settlement/testutil"
)

const (
	operatorKey = "8FXRKgS2nDJ1axRRTvdgkQudUsBZZ5gKnp4zF1kK6vMw"
	programKey  = "EcDwM6SLq81xpKS1ykf7UGjjyE84KJvjmAzWmLwy9tJx"

	startingBalance = 1_000_000
)

// testEnv is an initialized network with a payer and a merchant holding one
// account per asset.
type testEnv struct {
	srv      *Service
	db       *db.MemoryDatabase
	operator types.Address

	stable types.Address
	reward types.Address

	payer    types.Address
	merchant types.Address

	source            types.Address
	sourceReward      types.Address
	destination       types.Address
	destinationReward types.Address
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Operator: config.OperatorConfig{
			Address:   operatorKey,
			ProgramID: programKey,
		},
		Poller: config.PollerConfig{
			BalancePollingInterval: time.Minute,
		},
	}
	require.NoError(t, cfg.Operator.Validate())
	return cfg
}

// newService returns a service over an empty store.
func newService(t *testing.T, eventConsumer consumer.EventConsumer) (*Service, *db.MemoryDatabase) {
	t.Helper()

	cfg := testConfig(t)
	auth, err := authority.New(cfg.Operator.ProgramAddress())
	require.NoError(t, err)

	store := db.NewMemoryDatabase()
	srv := NewService(cfg, store, auth, eventConsumer)

	var seq int
	srv.newID = func() string {
		seq++
		return fmt.Sprintf("settlement-%d", seq)
	}
	srv.now = func() time.Time {
		return time.Unix(1_700_000_000, 0)
	}
	return srv, store
}

func newTestEnv(t *testing.T, merchantFeeBps uint64, eventConsumer consumer.EventConsumer) *testEnv {
	t.Helper()

	srv, store := newService(t, eventConsumer)
	env := &testEnv{
		srv:      srv,
		db:       store,
		operator: types.MustParseAddress(operatorKey),
		stable:   testutil.RandomAddress(t),
		reward:   testutil.RandomAddress(t),
		payer:    testutil.RandomAddress(t),
		merchant: testutil.RandomAddress(t),
	}

	err := srv.Initialize(t.Context(), env.operator, NetworkParams{
		StableAssetID:                    env.stable,
		RewardAssetID:                    env.reward,
		MerchantFeeBasisPoints:           merchantFeeBps,
		PurchaseProtectionFeeBasisPoints: 0,
	})
	require.Nil(t, err)

	env.source = env.account(t, env.payer, env.stable, startingBalance)
	env.sourceReward = env.account(t, env.payer, env.reward, 0)
	env.destination = env.account(t, env.merchant, env.stable, 0)
	env.destinationReward = env.account(t, env.merchant, env.reward, 0)
	return env
}

func (e *testEnv) account(t *testing.T, owner, asset types.Address, balance uint64) types.Address {
	t.Helper()

	address := testutil.RandomAddress(t)
	err := e.db.SaveNewTokenAccount(t.Context(), model.NewTokenAccount(address, owner, asset, balance))
	require.NoError(t, err)
	return address
}

func (e *testEnv) setBalance(t *testing.T, address types.Address, balance uint64) {
	t.Helper()
	require.NoError(t, e.db.UpdateTokenAccountBalance(t.Context(), address, balance))
}

func (e *testEnv) fundTreasury(t *testing.T, balance uint64) {
	t.Helper()
	e.setBalance(t, e.srv.Authority().TreasuryAddress(), balance)
}

func (e *testEnv) balance(t *testing.T, address types.Address) uint64 {
	t.Helper()

	acc, err := e.db.GetTokenAccount(t.Context(), address)
	require.NoError(t, err)
	return acc.Balance
}

func (e *testEnv) stats(t *testing.T) *model.StatsDocument {
	t.Helper()

	stats, err := e.db.GetStats(t.Context())
	require.NoError(t, err)
	return stats
}

func (e *testEnv) request(amount uint64) *TransactRequest {
	return &TransactRequest{
		Owner:                    e.payer,
		Source:                   e.source,
		SourceRewardAccount:      e.sourceReward,
		Destination:              e.destination,
		DestinationRewardAccount: e.destinationReward,
		Amount:                   amount,
	}
}

// snapshot captures every balance and counter a settlement can touch.
type snapshot struct {
	balances map[types.Address]uint64
	stats    model.StatsDocument
}

func (e *testEnv) snapshot(t *testing.T) snapshot {
	t.Helper()

	auth := e.srv.Authority()
	s := snapshot{balances: map[types.Address]uint64{}}
	for _, a := range []types.Address{
		e.source, e.sourceReward, e.destination, e.destinationReward,
		auth.PoolAddress(), auth.TreasuryAddress(),
	} {
		s.balances[a] = e.balance(t, a)
	}
	stats := e.stats(t)
	stats.LastUpdated = 0
	s.stats = *stats
	return s
}

func mustAuthority(t *testing.T) *authority.Authority {
	t.Helper()

	auth, err := authority.New(types.MustParseAddress(programKey))
	require.NoError(t, err)
	return auth
}
