package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"persona-insight/internal/domain"
	"persona-insight/internal/schemas"
)

var reportCmd = &cobra.Command{
	Use:   "report <traits.json>",
	Short: "Render a PDF report from a saved trait vector",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := sourceFlag(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")

		traits, err := readTraits(args[0])
		if err != nil {
			return err
		}

		a, zl, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		defer zl.Sync()

		path, err := a.Service.ExportReport(cmd.Context(), source, name, traits)
		if err != nil {
			return err
		}
		zl.Info("report saved", zap.String("path", path))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("source", "s", "linkedin", "data source: linkedin or github")
	reportCmd.Flags().StringP("name", "n", "", "name printed in the report title")
	reportCmd.MarkFlagRequired("name")
}

// readTraits valida el archivo contra el schema del vector antes de decodificarlo.
func readTraits(path string) (domain.TraitVector, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.TraitVector{}, fmt.Errorf("read traits: %w", err)
	}
	if err := schemas.ValidateTraits(raw); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			return domain.TraitVector{}, fmt.Errorf("invalid traits file: %w", verr)
		}
		return domain.TraitVector{}, err
	}
	var traits domain.TraitVector
	if err := json.Unmarshal(raw, &traits); err != nil {
		return domain.TraitVector{}, fmt.Errorf("decode traits: %w", err)
	}
	return traits, nil
}
