package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"persona-insight/internal/dataset"
	"persona-insight/internal/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Predict traits for a text or a CSV export",
}

var analyzeTextCmd = &cobra.Command{
	Use:   "text [text...]",
	Short: "Predict traits for a pasted text (reads stdin when no args)",
	RunE:  runAnalyzeText,
}

var analyzeFileCmd = &cobra.Command{
	Use:   "file <csv>",
	Short: "Predict traits for one person or every row of a CSV export",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyzeFile,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzeTextCmd, analyzeFileCmd)

	analyzeCmd.PersistentFlags().StringP("source", "s", "linkedin", "data source: linkedin or github")
	analyzeCmd.PersistentFlags().Bool("report", false, "export a PDF report for the result")

	analyzeTextCmd.Flags().String("name", "manual input", "name printed in the report title")
	analyzeFileCmd.Flags().StringP("name", "n", "", "name (linkedin) or username (github) to analyze")
	analyzeFileCmd.Flags().Bool("all", false, "analyze every row")
}

func sourceFlag(cmd *cobra.Command) (domain.Source, error) {
	raw, _ := cmd.Flags().GetString("source")
	return domain.ParseSource(raw)
}

func runAnalyzeText(cmd *cobra.Command, args []string) error {
	source, err := sourceFlag(cmd)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(raw)
	}

	a, zl, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	defer zl.Sync()

	traits, err := a.Service.AnalyzeText(cmd.Context(), source, text)
	if err != nil {
		return err
	}
	if err := printJSON(cmd.OutOrStdout(), traits); err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	return maybeReport(cmd, zl, a.Service.ExportReport, source, name, traits)
}

func runAnalyzeFile(cmd *cobra.Command, args []string) error {
	source, err := sourceFlag(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	all, _ := cmd.Flags().GetBool("all")
	if all && name != "" {
		return errors.New("--name and --all are mutually exclusive")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	records, err := dataset.Read(f, source)
	if err != nil {
		return err
	}

	a, zl, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	defer zl.Sync()

	if all {
		result := a.Service.AnalyzeAll(cmd.Context(), source, records)
		zl.Info("batch analyzed",
			zap.String("run_id", result.RunID),
			zap.Int("rows", len(result.Items)),
			zap.Int("failed", result.Failures()),
		)
		return printJSON(cmd.OutOrStdout(), result)
	}

	if name == "" {
		name, err = selectKey(records, source)
		if err != nil {
			return err
		}
	}

	res, err := a.Service.AnalyzeIndividual(cmd.Context(), source, records, name)
	if err != nil {
		return err
	}
	if err := printJSON(cmd.OutOrStdout(), res.Traits); err != nil {
		return err
	}
	return maybeReport(cmd, zl, a.Service.ExportReport, source, res.Record.DisplayName(), res.Traits)
}

// selectKey pide elegir una persona del CSV cuando no se paso --name ni --all.
func selectKey(records []domain.Record, source domain.Source) (string, error) {
	keys := dataset.Keys(records)
	if len(keys) == 0 {
		return "", domain.ErrRecordNotFound
	}
	label := "Select a name"
	if source == domain.SourceGitHub {
		label = "Select a username"
	}
	prompt := promptui.Select{
		Label: label,
		Items: keys,
		Size:  10,
	}
	_, key, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("select record: %w", err)
	}
	return key, nil
}

type exportFunc func(ctx context.Context, source domain.Source, name string, traits domain.TraitVector) (string, error)

func maybeReport(cmd *cobra.Command, zl *zap.Logger, export exportFunc, source domain.Source, name string, traits domain.TraitVector) error {
	want, _ := cmd.Flags().GetBool("report")
	if !want {
		return nil
	}
	path, err := export(cmd.Context(), source, name, traits)
	if err != nil {
		return err
	}
	zl.Info("report saved", zap.String("path", path))
	return nil
}
