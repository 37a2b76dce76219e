package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List registered backing packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := state.registry.Names()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No backends registered.")
			return nil
		}

		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}
