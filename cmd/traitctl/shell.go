package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"persona-insight/internal/tui"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive shell: paste text, see trait bars, export the report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		source, err := sourceFlag(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")

		a, zl, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		defer zl.Sync()

		model := tui.New(cmd.Context(), a.Service, source, name)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().StringP("source", "s", "linkedin", "initial data source: linkedin or github")
	shellCmd.Flags().StringP("name", "n", "manual input", "name printed in the report title")
}
