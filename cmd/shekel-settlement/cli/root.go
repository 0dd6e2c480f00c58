package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	defaultConfigFileName = "config.yml"
)

var cfgPath string

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shekel-settlement",
		Short:         "Settlement engine with a volume driven reward curve",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(InitNetworkCmd())
	rootCmd.AddCommand(SetNetworkConfigCmd())
	rootCmd.AddCommand(TransferPoolCmd())
	rootCmd.AddCommand(TransferTreasuryCmd())
	rootCmd.AddCommand(CreateTokenAccountCmd())
	rootCmd.AddCommand(DeriveAuthorityCmd())
	rootCmd.AddCommand(DumpStatsCmd())

	return rootCmd
}

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := getDefaultConfigFile(homePath, defaultConfigFileName)

	rootCmd := NewRootCmd()
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))

	return rootCmd.Execute()
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}
