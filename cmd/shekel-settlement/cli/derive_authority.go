package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shekel-labs/shekel-settlement/internal/authority"
	"github.com/shekel-labs/shekel-settlement/internal/config"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

func DeriveAuthorityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive-authority",
		Short: "Prints the protocol addresses derived from the program id",
		Args:  cobra.ExactArgs(0),
		RunE:  deriveAuthority,
	}

	cmd.Flags().String("program-id", "", "Program id, read from the config file when empty")

	return cmd
}

func deriveAuthority(cmd *cobra.Command, _ []string) error {
	programID, err := programIDFlag(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tADDRESS\tBUMP")
	for _, tag := range authority.Tags {
		address, bump, err := authority.FindProgramAddress(tag, programID)
		if err != nil {
			return fmt.Errorf("%s: %w", tag, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", tag, address, bump)
	}
	return w.Flush()
}

func programIDFlag(cmd *cobra.Command) (types.Address, error) {
	raw, err := cmd.Flags().GetString("program-id")
	if err != nil {
		return types.Address{}, err
	}
	if raw != "" {
		return addressFlag(cmd, "program-id")
	}

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return types.Address{}, fmt.Errorf("error while loading config file %s: %w", GetConfigPath(), err)
	}
	return cfg.Operator.ProgramAddress(), nil
}
