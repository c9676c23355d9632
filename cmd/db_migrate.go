package cmd

import (
	"blue/store/db"
	"blue/store/registry"

	"github.com/spf13/cobra"
)

// command for migrating database
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "migrate database tables and seed the registry from config",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate database error:", err)
			return
		}

		store := registry.New(database)
		for _, params := range cfg.Registry.Markets {
			if err := store.SaveMarketParams(ctx, params); err != nil {
				cmd.PrintErrln("save market params error:", err)
				return
			}
		}

		for _, vault := range cfg.Registry.Vaults {
			if err := store.SaveVaultConfig(ctx, vault); err != nil {
				cmd.PrintErrln("save vault config error:", err)
				return
			}
		}

		for _, d := range cfg.Registry.PreLiquidations {
			if err := store.SavePreLiquidationParams(ctx, d.Lltv, d.Params); err != nil {
				cmd.PrintErrln("save pre-liquidation params error:", err)
				return
			}
		}

		cmd.Printf("registry seeded with %d markets, %d vaults, %d pre-liquidation defaults\n",
			len(cfg.Registry.Markets), len(cfg.Registry.Vaults), len(cfg.Registry.PreLiquidations))
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
