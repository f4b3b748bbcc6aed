package cli

import (
	"fmt"

	"diamond-exchange/internal/config"
	"diamond-exchange/internal/sqlstore"
	"diamond-exchange/utils"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the SQL schema",
		Long: `Apply the marketplace schema to the configured SQL store.

Example:
  STORE_DRIVER=postgres DATABASE_URL=postgres://... diamond-exchange migrate
  diamond-exchange migrate --config exchange.yaml`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.Load()
			if err != nil {
				return err
			}

			var dialect sqlstore.Dialect
			switch cfg.Store.Driver {
			case config.DriverSQLite:
				dialect = sqlstore.SQLite
			case config.DriverPostgres:
				dialect = sqlstore.Postgres
			default:
				return fmt.Errorf("migrate: store driver %q has no schema", cfg.Store.Driver)
			}

			db, err := sqlstore.Open(cmd.Context(), dialect, cfg.Store.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}
			utils.Info("schema up to date", map[string]any{"driver": cfg.Store.Driver})
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}
