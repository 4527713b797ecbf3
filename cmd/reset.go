package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/bootstrap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete recorded progress, rewards and mistake history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		p := newPrompter(cmd.InOrStdin(), out)
		if !yes && !p.confirm("Delete all learner data?") {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		path, err := bootstrap.Reset(cfg.DB)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Removed", path)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
