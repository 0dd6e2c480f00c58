package db

import (
	"context"

	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

//go:generate mockery --name=DbInterface --output=../../tests/mocks --outpkg=mocks --filename=mock_db_client.go
type DbInterface interface {
	Ping(ctx context.Context) error
	// RunInTx runs fn as one atomic unit of work. Every read and write fn makes
	// through the ctx it receives either commits together or not at all.
	// Units of work do not nest.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error

	SaveNewNetworkConfig(ctx context.Context, cfg *model.NetworkConfig) error
	UpsertNetworkConfig(ctx context.Context, cfg *model.NetworkConfig) error
	GetNetworkConfig(ctx context.Context) (*model.NetworkConfig, error)

	SaveNewStats(ctx context.Context, stats *model.StatsDocument) error
	UpdateStats(ctx context.Context, stats *model.StatsDocument) error
	GetStats(ctx context.Context) (*model.StatsDocument, error)

	SaveNewAuthority(ctx context.Context, doc *model.AuthorityDocument) error
	GetAuthority(ctx context.Context) (*model.AuthorityDocument, error)

	SaveNewTokenAccount(ctx context.Context, account *model.TokenAccount) error
	GetTokenAccount(ctx context.Context, address types.Address) (*model.TokenAccount, error)
	GetTokenAccountsByOwner(ctx context.Context, owner types.Address) ([]*model.TokenAccount, error)
	UpdateTokenAccountBalance(ctx context.Context, address types.Address, balance uint64) error

	SaveSettlement(ctx context.Context, doc *model.SettlementDocument) error
	GetSettlement(ctx context.Context, id string) (*model.SettlementDocument, error)
}
