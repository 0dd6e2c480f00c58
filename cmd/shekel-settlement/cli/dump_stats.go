package cli

import (
	"encoding/json"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/shekel-labs/shekel-settlement/internal/services"
)

func DumpStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-stats",
		Short: "Prints the ledger totals and protocol balances",
		Args:  cobra.ExactArgs(0),
		RunE:  dumpStats,
	}

	cmd.Flags().Bool("verbose", false, "Dump raw records including the network config")

	return cmd
}

type statsDump struct {
	Stats    *services.StatsPublic      `json:"stats"`
	Balances *services.ProtocolBalances `json:"balances"`
}

func dumpStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	_, service, closeDb, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closeDb()

	stats, svcErr := service.GetStats(ctx)
	if svcErr != nil {
		return svcErr
	}
	balances, svcErr := service.ProtocolBalances(ctx)
	if svcErr != nil {
		return svcErr
	}

	out := cmd.OutOrStdout()
	if verbose {
		networkConfig, svcErr := service.GetNetworkConfig(ctx)
		if svcErr != nil {
			return svcErr
		}
		spew.Fdump(out, networkConfig, stats, balances)
		return nil
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(statsDump{Stats: stats, Balances: balances}); err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	return nil
}
