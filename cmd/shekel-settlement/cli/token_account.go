package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/pkg"
)

func CreateTokenAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-token-account",
		Short: "Provisions a token account (development and testing)",
		Args:  cobra.ExactArgs(0),
		RunE:  createTokenAccount,
	}

	cmd.Flags().String("address", "", "Account address, random when empty")
	cmd.Flags().String("owner", "", "Owner of the account")
	cmd.Flags().String("asset", "", "Asset held by the account")
	cmd.Flags().Uint64("balance", 0, "Opening balance")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("asset")

	return cmd
}

func createTokenAccount(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	raw, err := cmd.Flags().GetString("address")
	if err != nil {
		return err
	}
	if raw == "" {
		raw, err = pkg.RandomAddressString()
		if err != nil {
			return err
		}
		if err := cmd.Flags().Set("address", raw); err != nil {
			return err
		}
	}

	address, err := addressFlag(cmd, "address")
	if err != nil {
		return err
	}
	owner, err := addressFlag(cmd, "owner")
	if err != nil {
		return err
	}
	asset, err := addressFlag(cmd, "asset")
	if err != nil {
		return err
	}
	balance, err := cmd.Flags().GetUint64("balance")
	if err != nil {
		return err
	}

	_, service, closeDb, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closeDb()

	account := model.NewTokenAccount(address, owner, asset, balance)
	if err := asError(service.CreateTokenAccount(ctx, account)); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), address)
	return nil
}
