package cmd

import (
	"fmt"

	"blue/core"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

func marketIDArg(s string) core.MarketID {
	id, err := core.HexToHash(s)
	if err != nil {
		panic(fmt.Errorf("invalid market id %q: %w", s, err))
	}

	return id
}

func addressArg(s string) core.Address {
	address, err := core.HexToAddress(s)
	if err != nil {
		panic(fmt.Errorf("invalid address %q: %w", s, err))
	}

	return address
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("timestamp", 0, "unix timestamp to accrue to, default now")
	cmd.Flags().String("snapshot", "", "snapshot file, default is the config snapshot")
	rootCmd.AddCommand(cmd)
}

var marketCmd = &cobra.Command{
	Use:   "market <id>",
	Short: "show a market accrued to timestamp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		s := provideStack(snapshotPath)
		defer s.Close()

		view, err := s.markets.Market(cmd.Context(), marketIDArg(args[0]), timestampFlag(cmd))
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), view)
	},
}

var positionsCmd = &cobra.Command{
	Use:   "positions <market id>",
	Short: "list the positions of a market accrued to timestamp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		s := provideStack(snapshotPath)
		defer s.Close()

		views, err := s.markets.Positions(cmd.Context(), marketIDArg(args[0]), timestampFlag(cmd))
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), views)
	},
}

var positionCmd = &cobra.Command{
	Use:     "position <market id> <user>",
	Aliases: []string{"pos"},
	Short:   "show a position accrued to timestamp",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		s := provideStack(snapshotPath)
		defer s.Close()

		view, err := s.markets.Position(cmd.Context(), addressArg(args[1]), marketIDArg(args[0]), timestampFlag(cmd))
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), view)
	},
}

var preLiquidationCmd = &cobra.Command{
	Use:     "pre-liquidation <market id> <user>",
	Aliases: []string{"pl"},
	Short:   "show the pre-liquidation figures of a position",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		s := provideStack(snapshotPath)
		defer s.Close()

		view, err := s.markets.PreLiquidation(cmd.Context(), addressArg(args[1]), marketIDArg(args[0]), timestampFlag(cmd))
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), view)
	},
}

var marketIDCmd = &cobra.Command{
	Use:   "market-id",
	Short: "compute the id of market params",
	RunE: func(cmd *cobra.Command, args []string) error {
		flag := func(name string) string {
			v, _ := cmd.Flags().GetString(name)
			return v
		}

		lltv, err := uint256.FromDecimal(flag("lltv"))
		if err != nil {
			return fmt.Errorf("invalid lltv: %w", err)
		}

		params := &core.MarketParams{
			LoanToken:       addressArg(flag("loan-token")),
			CollateralToken: addressArg(flag("collateral-token")),
			Oracle:          addressArg(flag("oracle")),
			Irm:             addressArg(flag("irm")),
			Lltv:            lltv,
		}

		cmd.Println(params.ID().Hex())
		return nil
	},
}

func init() {
	addQueryFlags(marketCmd)
	addQueryFlags(positionsCmd)
	addQueryFlags(positionCmd)
	addQueryFlags(preLiquidationCmd)

	rootCmd.AddCommand(marketIDCmd)
	marketIDCmd.Flags().String("loan-token", "", "loan token address")
	marketIDCmd.Flags().String("collateral-token", "", "collateral token address")
	marketIDCmd.Flags().String("oracle", "", "oracle address")
	marketIDCmd.Flags().String("irm", "", "irm address")
	marketIDCmd.Flags().String("lltv", "", "lltv scaled by 1e18")
}
