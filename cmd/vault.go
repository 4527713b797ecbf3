package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/vault"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Browse and work through the mistake vault",
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mistakes grouped by topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		rawSubj, _ := cmd.Flags().GetString("subject")
		rawStatus, _ := cmd.Flags().GetString("status")

		status, err := vault.ParseStatusFilter(rawStatus)
		if err != nil {
			return err
		}
		f := vault.Filter{Status: status}
		if rawSubj != "" && rawSubj != "all" {
			if f.Subject, err = subject.Parse(rawSubj); err != nil {
				return err
			}
		}

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		out := cmd.OutOrStdout()
		groups := d.Vault.Vault.Filter(f)
		if len(groups) == 0 {
			fmt.Fprintln(out, "No mistakes match.")
			return nil
		}
		for _, g := range groups {
			fmt.Fprintf(out, "\n%s (%d)\n", g.Topic, g.Count())
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, it := range g.Items {
				star := " "
				if it.Stats.Starred {
					star = "★"
				}
				fmt.Fprintf(out, "%s %-6s %-10s %-8s %-10s ×%d  %s\n",
					star, it.ID, it.Status, it.Subject.Label(), it.ErrorType.Label(), it.Stats.ErrorCount, it.Snippet)
			}
		}
		fmt.Fprintf(out, "\n%d pending\n", d.Vault.Vault.PendingCount())
		for _, st := range d.Vault.Vault.SubjectStats() {
			fmt.Fprintf(out, "  %-8s %d pending  %d%% solved\n", st.Subject.Label(), st.Pending, st.SolvedPercent)
		}
		return nil
	},
}

var vaultStarCmd = &cobra.Command{
	Use:   "star <id>",
	Short: "Star or unstar a mistake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		starred, err := d.Vault.ToggleStar(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s starred: %v\n", args[0], starred)
		return nil
	},
}

// newConfirmCmd builds the master and unmaster commands. Both go through
// the vault's confirmation step.
func newConfirmCmd(kind vault.ConfirmKind, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   string(kind) + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")

			d, err := openDeps(cmd, false)
			if err != nil {
				return err
			}
			defer closeDeps(cmd, d)

			conf, err := d.Vault.Vault.RequestToggle(args[0])
			if err != nil {
				return err
			}
			if conf.Kind != kind {
				return fmt.Errorf("%s is %s; nothing to %s", conf.ItemID, conf.From, kind)
			}
			it, _ := d.Vault.Vault.Find(conf.ItemID)
			question := fmt.Sprintf("Mark %q as mastered?", it.Snippet)
			if kind == vault.ConfirmUnmaster {
				question = fmt.Sprintf("Move %q back to reviewing?", it.Snippet)
			}
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if !yes && !p.confirm(question) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			t, err := d.Vault.Confirm(cmd.Context(), conf)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s → %s\n", t.ItemID, t.From, t.To)
			return nil
		},
	}
	c.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return c
}

var vaultConquerCmd = &cobra.Command{
	Use:   "conquer",
	Short: "Run today's daily conquer over pending mistakes",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		c := vault.NewConquest(d.Vault.Vault.Pending(), d.Rand)
		out := cmd.OutOrStdout()
		if !c.Start() {
			fmt.Fprintln(out, "Nothing to conquer today. 🎉")
			return nil
		}
		fmt.Fprintf(out, "Daily conquer: %d questions. Right answers move on by themselves.\n", c.Len())

		p := newPrompter(cmd.InOrStdin(), out)
		for done := false; !done; {
			q, src, err := c.Current()
			if err != nil {
				return err
			}
			printItem(out, c.Flow().Index()+1, c.Len(), q)
			for !c.Answered() {
				s, ok := p.line("Option (h for hint) > ")
				if !ok {
					return nil
				}
				if s == "h" {
					fmt.Fprintln(out, "Hint:", c.Hint())
					continue
				}
				choices, err := parseChoices(s, q.Options)
				if err != nil {
					fmt.Fprintln(out, err)
					continue
				}
				res := c.Answer(choices[0])
				if res.Correct {
					fmt.Fprintf(out, "✓ combo ×%d\n", c.Combo())
				} else {
					fmt.Fprintf(out, "✗ answer: %s\n  %s\n", src.CorrectAnswer, src.Analysis)
				}
			}
			done = c.Next()
		}

		claim, ok := d.ClaimConquest(cmd.Context(), c)
		if !ok {
			return nil
		}
		res := claim.Result
		fmt.Fprintf(out, "\n%d/%d correct  max combo %d  +%d XP\n", res.Correct, res.Total, res.MaxCombo, res.XPEarned)
		fmt.Fprintf(out, "%d mistakes mastered, %d still pending\n", len(claim.Transitions), d.Vault.Vault.PendingCount())
		if claim.LevelsUp > 0 {
			fmt.Fprintf(out, "Level up! Now Lv.%d\n", d.Rewards.Wallet().Level)
		}
		return nil
	},
}

func init() {
	vaultListCmd.Flags().String("subject", "", "Filter by subject: math, chinese, english or all")
	vaultListCmd.Flags().String("status", "", "Filter by status: pending, new, reviewing, mastered or all")

	vaultCmd.AddCommand(vaultListCmd)
	vaultCmd.AddCommand(vaultStarCmd)
	vaultCmd.AddCommand(newConfirmCmd(vault.ConfirmMaster, "Mark a mistake as mastered"))
	vaultCmd.AddCommand(newConfirmCmd(vault.ConfirmUnmaster, "Move a mastered mistake back to reviewing"))
	vaultCmd.AddCommand(vaultConquerCmd)
}
