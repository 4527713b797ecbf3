package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show today's study plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("filter")
		filter, err := plan.ParseFilter(raw)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		p := d.Board.Plan()
		prog := d.Board.Progress()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s  (%d XP)\n", p.Title, p.TotalXP)
		if p.Description != "" {
			fmt.Fprintln(out, p.Description)
		}
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, t := range d.Board.Filter(filter) {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			fmt.Fprintf(out, "%s %-4s %-6s %3d min  %s\n", box, t.ID, t.Subject.Label(), t.DurationMinutes, t.Title)
		}
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "%d/%d done  %d/%d min  %d%%\n",
			prog.Done, prog.Total, prog.MinutesDone, prog.MinutesTotal, prog.Percent())
		fmt.Fprintf(out, "XP today: %d/%d  streak: %d days\n",
			d.Stats.XPToday, d.Stats.XPTarget, d.Stats.StreakDays)
		return nil
	},
}

var planToggleCmd = &cobra.Command{
	Use:   "toggle <task-id>",
	Short: "Mark a plan task done or not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		done, err := d.ToggleTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		t, _ := d.Board.Task(args[0])
		state := "not done"
		if done {
			state = "done"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", t.Title, state)
		return nil
	},
}

func init() {
	planCmd.Flags().String("filter", "", "Show pending, done or all tasks")
	planCmd.AddCommand(planToggleCmd)
}
