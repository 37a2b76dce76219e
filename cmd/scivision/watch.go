package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ekisa-team/scivision/internal/manifest"
	"github.com/ekisa-team/scivision/internal/xfs"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Validate a local manifest every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		path := xfs.ExpandTilde(args[0])

		w, err := manifest.NewWatcher(ctx, state.resolver, path, func(m *manifest.Manifest, err error) {
			if err != nil {
				fmt.Fprintf(out, "invalid: %v\n", err)
				return
			}
			if _, err := state.loader().Wrap(m); err != nil {
				fmt.Fprintf(out, "valid manifest, not loadable: %v\n", err)
				return
			}
			fmt.Fprintf(out, "ok: %s.%s\n", m.Import, m.PredictionFn.Function())
		})
		if err != nil {
			return err
		}
		defer w.Close()

		fmt.Fprintf(out, "watching %s (import %s), press Ctrl+C to stop\n", path, w.Snapshot().Import)
		<-ctx.Done()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
