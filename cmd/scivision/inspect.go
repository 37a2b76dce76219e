package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <location|path>",
	Short: "Fetch and validate a model manifest",
	Long: `Fetch the .scivision-config.yaml manifest for a model and print it.

A location such as owner/repo is expanded with the configured base URL.
Arguments starting with /, . or ~ are read as local manifest files.

Examples:
  scivision inspect alan-turing-institute/scivision-test-plugin
  scivision inspect ./.scivision-config.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := state.resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(m.Raw)
		if err != nil {
			return fmt.Errorf("encode manifest: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# import: %s, function: %s\n%s", m.Import, m.PredictionFn.Function(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
