package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/rewards"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the class leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("period")
		period, err := rewards.ParsePeriod(raw)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		out := cmd.OutOrStdout()
		entries := rewards.BuildLeaderboard(period, d.Profile.Roster, d.Rand)
		fmt.Fprintln(out, period.DisplayName())
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, e := range entries {
			marker := " "
			if e.Me {
				marker = "▶"
			}
			trend := "–"
			if e.Trend == rewards.TrendUp {
				trend = "↑"
			}
			fmt.Fprintf(out, "%s %3d  %s %-12s %6d  %s\n", marker, e.Rank, e.Avatar, e.Name, e.XP, trend)
		}
		if me, ok := rewards.MyEntry(entries); ok {
			fmt.Fprintf(out, "\nYou are #%d with %d XP\n", me.Rank, me.XP)
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().StringP("period", "p", "weekly", "Window: daily, weekly or monthly")
}
