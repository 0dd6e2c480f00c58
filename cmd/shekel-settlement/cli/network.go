package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shekel-labs/shekel-settlement/internal/services"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

type networkOp func(*services.Service, context.Context, types.Address, services.NetworkParams) *types.Error

func InitNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-network",
		Short: "Creates the network config, ledger, pool and treasury",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNetworkCmd(cmd, (*services.Service).Initialize)
		},
	}
	addNetworkFlags(cmd)

	return cmd
}

func SetNetworkConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-network-config",
		Short: "Overwrites the network config of an initialized deployment",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNetworkCmd(cmd, (*services.Service).SetNetworkConfig)
		},
	}
	addNetworkFlags(cmd)

	return cmd
}

func runNetworkCmd(cmd *cobra.Command, op networkOp) error {
	ctx := cmd.Context()

	params, err := networkParams(cmd)
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
	if err := asError(op(service, ctx, signer, params)); err != nil {
		return err
	}

	auth := service.Authority()
	fmt.Fprintf(cmd.OutOrStdout(), "pool:     %s\ntreasury: %s\n", auth.PoolAddress(), auth.TreasuryAddress())
	return nil
}

func addNetworkFlags(cmd *cobra.Command) {
	cmd.Flags().String("signer", "", "Signer of the operation (defaults to the configured operator)")
	cmd.Flags().String("stable-asset", "", "Asset id of the settlement currency")
	cmd.Flags().String("reward-asset", "", "Asset id of the reward token")
	cmd.Flags().Uint64("merchant-fee-bps", 0, "Merchant fee in basis points")
	cmd.Flags().Uint64("purchase-protection-fee-bps", 0, "Purchase protection fee in basis points (stored only)")

	_ = cmd.MarkFlagRequired("stable-asset")
	_ = cmd.MarkFlagRequired("reward-asset")
}

func networkParams(cmd *cobra.Command) (services.NetworkParams, error) {
	var params services.NetworkParams

	stable, err := addressFlag(cmd, "stable-asset")
	if err != nil {
		return params, err
	}
	reward, err := addressFlag(cmd, "reward-asset")
	if err != nil {
		return params, err
	}
	merchantBps, err := cmd.Flags().GetUint64("merchant-fee-bps")
	if err != nil {
		return params, err
	}
	protectionBps, err := cmd.Flags().GetUint64("purchase-protection-fee-bps")
	if err != nil {
		return params, err
	}

	params.StableAssetID = stable
	params.RewardAssetID = reward
	params.MerchantFeeBasisPoints = merchantBps
	params.PurchaseProtectionFeeBasisPoints = protectionBps
	return params, nil
}
