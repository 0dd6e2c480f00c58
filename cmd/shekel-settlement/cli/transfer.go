package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shekel-labs/shekel-settlement/internal/services"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

type transferOp func(s *services.Service, ctx context.Context, signer, destination types.Address, amount uint64) *types.Error

func TransferPoolCmd() *cobra.Command {
	return newTransferCmd("transfer-pool", "Moves settlement currency out of the pool", (*services.Service).TransferPool)
}

func TransferTreasuryCmd() *cobra.Command {
	return newTransferCmd("transfer-treasury", "Moves reward tokens out of the treasury", (*services.Service).TransferTreasury)
}

func newTransferCmd(use, short string, op transferOp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			destination, err := addressFlag(cmd, "destination")
			if err != nil {
				return err
			}
			amount, err := cmd.Flags().GetUint64("amount")
			if err != nil {
				return err
			}

			cfg, service, closeDb, err := openService(ctx)
			if err != nil {
				return err
			}
			defer closeDb()

			signer, err := signerFlag(cmd, cfg.Operator.OperatorAddress())
			if err != nil {
				return err
			}
			if err := asError(op(service, ctx, signer, destination, amount)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "moved %d to %s\n", amount, destination)
			return nil
		},
	}

	cmd.Flags().String("signer", "", "Signer of the operation (defaults to the configured operator)")
	cmd.Flags().String("destination", "", "Destination token account")
	cmd.Flags().Uint64("amount", 0, "Amount in base units")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}
