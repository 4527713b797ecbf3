package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/rewards"
	"github.com/abhisek/lumi/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level, streak, achievements and recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		out := cmd.OutOrStdout()
		w := d.Rewards.Wallet()
		st := d.Stats
		fmt.Fprintf(out, "%s  Lv.%d  %d/%d XP  🪙 %d\n", d.Profile.Name, w.Level, w.LevelXP, w.NextLevelXP(), w.Coins)
		fmt.Fprintf(out, "Today: %d/%d XP  %d min  🔥 %d day streak\n",
			st.XPToday, st.XPTarget, st.StudyMinutesToday, st.StreakDays)

		if len(d.Profile.Abilities) > 0 {
			fmt.Fprintln(out, "\nAbilities")
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, name := range slices.Sorted(maps.Keys(d.Profile.Abilities)) {
				score := min(max(d.Profile.Abilities[name], 0), 100)
				fmt.Fprintf(out, "%-12s %-20s %3d\n", name, strings.Repeat("█", score/5), score)
			}
		}

		ach := d.Profile.Achievements
		fmt.Fprintf(out, "\nAchievements %d/%d\n", rewards.UnlockedCount(ach), len(ach))
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, a := range ach {
			state := "locked"
			if a.Unlocked {
				state = orDash(a.UnlockedOn)
			}
			fmt.Fprintf(out, "%s %-16s %-12s %s\n", a.Icon, a.Title, state, a.Description)
		}

		repo := d.EventRepo()
		if repo == nil {
			return nil
		}
		events, err := repo.QuerySessionEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		fmt.Fprintln(out, "\nRecent sessions")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		if len(events) == 0 {
			fmt.Fprintln(out, "None yet.")
			return nil
		}
		for _, e := range events {
			fmt.Fprintf(out, "%-16s  %-10s  %-8s  %3d/%-3d  +%d XP\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"), e.Mode, orDash(e.Subject), e.Correct, e.Total, e.XPEarned)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent sessions to show")
}
