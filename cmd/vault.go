package cmd

import (
	"github.com/spf13/cobra"
)

var vaultCmd = &cobra.Command{
	Use:   "vault <address>",
	Short: "show a queue vault accrued to timestamp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		s := provideStack(snapshotPath)
		defer s.Close()

		view, err := s.vaults.Vault(cmd.Context(), addressArg(args[0]), timestampFlag(cmd))
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), view)
	},
}

var vaultV2Cmd = &cobra.Command{
	Use:   "vault-v2 <address>",
	Short: "show an adapter vault accrued to timestamp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		s := provideStack(snapshotPath)
		defer s.Close()

		view, err := s.vaults.VaultV2(cmd.Context(), addressArg(args[0]), timestampFlag(cmd))
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), view)
	},
}

func init() {
	addQueryFlags(vaultCmd)
	addQueryFlags(vaultV2Cmd)
}
