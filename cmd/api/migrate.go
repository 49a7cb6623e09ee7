package main

import (
	"fmt"

	"cat-registry/internal/adapters/storage"
	"cat-registry/internal/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the cats table in the configured database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Driver == config.DriverMemory {
				return fmt.Errorf("nothing to migrate for driver %q", cfg.Driver)
			}

			store, err := storage.Open(cmd.Context(), cfg.Driver, cfg.DSN, true)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", cfg.Driver)
			return nil
		},
	}
}
