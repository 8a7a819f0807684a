package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compareCmd = &cobra.Command{
	Use:   "compare <linkedin.csv> <github.csv>",
	Short: "Compare the average LinkedIn profile with the average GitHub commit profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		linkedin, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open linkedin csv: %w", err)
		}
		defer linkedin.Close()
		github, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("open github csv: %w", err)
		}
		defer github.Close()

		a, zl, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		defer zl.Sync()

		result, err := a.Service.CompareCSV(cmd.Context(), linkedin, github)
		if err != nil {
			return err
		}
		zl.Debug("comparison", zap.Any("result", result))
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
