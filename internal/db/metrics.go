package db

import (
	"context"
	"time"

	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/observability/metrics"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

// RunInTx records the latency of the whole unit of work. Calls made by fn are
// recorded individually as well.
func (d *DbWithMetrics) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.run("RunInTx", func() error {
		return d.db.RunInTx(ctx, fn)
	})
}

func (d *DbWithMetrics) SaveNewNetworkConfig(ctx context.Context, cfg *model.NetworkConfig) error {
	return d.run("SaveNewNetworkConfig", func() error {
		return d.db.SaveNewNetworkConfig(ctx, cfg)
	})
}

func (d *DbWithMetrics) UpsertNetworkConfig(ctx context.Context, cfg *model.NetworkConfig) error {
	return d.run("UpsertNetworkConfig", func() error {
		return d.db.UpsertNetworkConfig(ctx, cfg)
	})
}

func (d *DbWithMetrics) GetNetworkConfig(ctx context.Context) (result *model.NetworkConfig, err error) {
	//nolint:errcheck
	d.run("GetNetworkConfig", func() error {
		result, err = d.db.GetNetworkConfig(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveNewStats(ctx context.Context, stats *model.StatsDocument) error {
	return d.run("SaveNewStats", func() error {
		return d.db.SaveNewStats(ctx, stats)
	})
}

func (d *DbWithMetrics) UpdateStats(ctx context.Context, stats *model.StatsDocument) error {
	return d.run("UpdateStats", func() error {
		return d.db.UpdateStats(ctx, stats)
	})
}

func (d *DbWithMetrics) GetStats(ctx context.Context) (result *model.StatsDocument, err error) {
	//nolint:errcheck
	d.run("GetStats", func() error {
		result, err = d.db.GetStats(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveNewAuthority(ctx context.Context, doc *model.AuthorityDocument) error {
	return d.run("SaveNewAuthority", func() error {
		return d.db.SaveNewAuthority(ctx, doc)
	})
}

func (d *DbWithMetrics) GetAuthority(ctx context.Context) (result *model.AuthorityDocument, err error) {
	//nolint:errcheck
	d.run("GetAuthority", func() error {
		result, err = d.db.GetAuthority(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveNewTokenAccount(ctx context.Context, account *model.TokenAccount) error {
	return d.run("SaveNewTokenAccount", func() error {
		return d.db.SaveNewTokenAccount(ctx, account)
	})
}

func (d *DbWithMetrics) GetTokenAccount(ctx context.Context, address types.Address) (result *model.TokenAccount, err error) {
	//nolint:errcheck
	d.run("GetTokenAccount", func() error {
		result, err = d.db.GetTokenAccount(ctx, address)
		return err
	})
	return
}

func (d *DbWithMetrics) GetTokenAccountsByOwner(ctx context.Context, owner types.Address) (result []*model.TokenAccount, err error) {
	//nolint:errcheck
	d.run("GetTokenAccountsByOwner", func() error {
		result, err = d.db.GetTokenAccountsByOwner(ctx, owner)
		return err
	})
	return
}

func (d *DbWithMetrics) UpdateTokenAccountBalance(ctx context.Context, address types.Address, balance uint64) error {
	return d.run("UpdateTokenAccountBalance", func() error {
		return d.db.UpdateTokenAccountBalance(ctx, address, balance)
	})
}

func (d *DbWithMetrics) SaveSettlement(ctx context.Context, doc *model.SettlementDocument) error {
	return d.run("SaveSettlement", func() error {
		return d.db.SaveSettlement(ctx, doc)
	})
}

func (d *DbWithMetrics) GetSettlement(ctx context.Context, id string) (result *model.SettlementDocument, err error) {
	//nolint:errcheck
	d.run("GetSettlement", func() error {
		result, err = d.db.GetSettlement(ctx, id)
		return err
	})
	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
