package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shekel-labs/shekel-settlement/internal/authority"
	"github.com/shekel-labs/shekel-settlement/internal/config"
	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/services"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

// openService connects to the configured store and returns a service that
// does not publish events. The returned func closes the db connection.
func openService(ctx context.Context) (*config.Config, *services.Service, func(), error) {
	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error while loading config file %s: %w", GetConfigPath(), err)
	}

	auth, err := authority.New(cfg.Operator.ProgramAddress())
	if err != nil {
		return nil, nil, nil, err
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error while creating db client: %w", err)
	}
	closeDb := func() {
		_ = dbClient.Close(context.WithoutCancel(ctx))
	}

	return cfg, services.NewService(cfg, dbClient, auth, nil), closeDb, nil
}

func addressFlag(cmd *cobra.Command, name string) (types.Address, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return types.Address{}, err
	}
	addr, err := types.ParseAddress(raw)
	if err != nil {
		return types.Address{}, fmt.Errorf("--%s: %w", name, err)
	}
	return addr, nil
}

// signerFlag falls back to the configured operator when --signer is empty.
func signerFlag(cmd *cobra.Command, fallback types.Address) (types.Address, error) {
	raw, err := cmd.Flags().GetString("signer")
	if err != nil {
		return types.Address{}, err
	}
	if raw == "" {
		return fallback, nil
	}
	return addressFlag(cmd, "signer")
}

// asError keeps a nil *types.Error from turning into a non-nil error.
func asError(err *types.Error) error {
	if err == nil {
		return nil
	}
	return err
}
