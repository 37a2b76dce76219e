package main

import (
	"fmt"

	"github.com/ekisa-team/scivision/internal/model"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <location|path>",
	Short: "Check that a model's backing package is available",
	Long: `Resolve a model manifest and check that its backing package is registered.

When the package is missing the command prints the install command to run.
Nothing is installed automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		allow, _ := cmd.Flags().GetBool("allow-install")

		m, err := state.load(cmd.Context(), args[0], model.WithAllowInstall(allow))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s ready (id %s)\n", m, m.ID())
		return nil
	},
}

func init() {
	loadCmd.Flags().Bool("allow-install", false, "permit installing missing packages (not supported, advice only)")
	rootCmd.AddCommand(loadCmd)
}
