package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/app"
)

// runApp loads state, runs the TUI and saves state on exit.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer closeDeps(cmd, d)
	return app.Run(cmd.Context(), d)
}
