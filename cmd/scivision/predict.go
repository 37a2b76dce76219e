package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict <location|path> [input...]",
	Short: "Run a model's prediction function",
	Long: `Load a model and call its prediction function with the given inputs.

Inputs are passed as strings unless --json is set, in which case each input
is decoded as a JSON value. The result is printed as JSON.

Examples:
  scivision predict owner/repo image.png
  scivision predict --json ./.scivision-config.yaml '{"url": "https://example.com/cat.png"}'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		inputs := make([]any, 0, len(args)-1)
		for _, raw := range args[1:] {
			if !asJSON {
				inputs = append(inputs, raw)
				continue
			}

			var v any
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return fmt.Errorf("decode input %q: %w", raw, err)
			}
			inputs = append(inputs, v)
		}

		m, err := state.load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		result, err := m.Predict(cmd.Context(), inputs...)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	predictCmd.Flags().Bool("json", false, "decode each input as JSON")
	rootCmd.AddCommand(predictCmd)
}
