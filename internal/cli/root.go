package cli

import (
	"os"

	"diamond-exchange/internal/config"
	"diamond-exchange/utils"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	EnvFiles   []string
}

// Load reads the configuration the flags point at
func (o *RootOptions) Load() (config.Config, error) {
	return config.Load(o.ConfigPath, o.EnvFiles...)
}

// NewRootCommand creates the root command for the exchange binary.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "diamond-exchange",
		Short: "Diamond marketplace service",
		Long:  "Inventory, requirements, auctions, bids and deals for a B2B diamond exchange.",
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", nil, "dotenv files to load (default .env)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		utils.Error("command failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
