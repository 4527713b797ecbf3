package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/skillmap"
	"github.com/abhisek/lumi/internal/subject"
)

var mapCmd = &cobra.Command{
	Use:   "map <subject>",
	Short: "Show the level map of a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subj, err := subject.Parse(args[0])
		if err != nil {
			return err
		}
		unlockAll, _ := cmd.Flags().GetBool("unlock-all")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		w, err := d.Walker(cmd.Context(), subj)
		if err != nil {
			return err
		}
		if unlockAll {
			w.UnlockAll()
		}

		out := cmd.OutOrStdout()
		m := w.Map()
		fmt.Fprintf(out, "%s · %s %s · %s\n", subj.Label(), m.Grade, m.Textbook, m.Chapter)
		fmt.Fprintln(out, strings.Repeat("─", 64))
		for _, n := range m.Nodes {
			fmt.Fprintf(out, "%-4s %-6s %-10s %-28s %s\n", n.ID, n.Type, n.Status, n.Title, nodeBadge(n))
		}
		p := w.Progress()
		fmt.Fprintln(out, strings.Repeat("─", 64))
		fmt.Fprintf(out, "%d/%d complete (%d%%)  ★ %d/%d\n", p.Completed, p.Total, p.Percent(), p.Stars, p.MaxStars)
		if cur, ok := w.Current(); ok {
			fmt.Fprintf(out, "Next up: %s %s\n", cur.ID, cur.Title)
		}
		return nil
	},
}

func nodeBadge(n skillmap.Node) string {
	switch {
	case n.Type == skillmap.NodeChest && n.RewardCoins > 0:
		return fmt.Sprintf("+%d coins", n.RewardCoins)
	case n.Type == skillmap.NodeChest:
		return ""
	case n.Status == skillmap.StatusCompleted:
		return strings.Repeat("★", n.Stars) + strings.Repeat("☆", skillmap.MaxStars-n.Stars)
	}
	return n.Duration
}

func init() {
	mapCmd.Flags().Bool("unlock-all", false, "Show every node unlocked (preview mode)")
}
