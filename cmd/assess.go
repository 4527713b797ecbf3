package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/assessment"
	"github.com/abhisek/lumi/internal/quiz"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run the learning-profile assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		stages, err := d.Content.AssessmentStages(cmd.Context())
		if err != nil {
			return fmt.Errorf("load assessment: %w", err)
		}
		a, err := assessment.New(stages)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		p := newPrompter(cmd.InOrStdin(), out)
		fmt.Fprintln(out, "Lumi will run three short stages: cognition, academics and learning style.")
		a.Start()

		for !a.Finished() {
			if sum, ok := a.Summary(); ok {
				fmt.Fprintf(out, "\n★ %s\n  %s\n", sum.Title, sum.Description)
				if _, ok := p.line("Press Enter to continue "); !ok {
					return nil
				}
				a.Continue()
				continue
			}
			stage, _ := a.Stage()
			it, err := a.Current()
			if err != nil {
				return err
			}
			i, n := a.Step()
			printItem(out, i+1, n, withTag(it, stage.Label))

			for {
				s, ok := p.line("> ")
				if !ok {
					return nil
				}
				answer := s
				if len(it.Options) > 0 {
					choices, err := parseChoices(s, it.Options)
					if err != nil {
						fmt.Fprintln(out, err)
						continue
					}
					answer = choices[0]
				}
				if res, ok := a.Answer(answer); ok {
					if stage.Scored {
						fmt.Fprintln(out, mark(res.Correct))
					}
					if res.Feedback != "" {
						fmt.Fprintln(out, "Lumi:", res.Feedback)
					}
				}
				break
			}
			a.Next()
		}

		if res, ok := a.StageResult(assessment.PhaseAcademic); ok {
			d.RecordAssessment(cmd.Context(), res)
		}
		outcome, err := a.Result(cmd.Context(), d.Content)
		if err != nil {
			return err
		}
		printOutcome(out, outcome)
		return nil
	},
}

func withTag(it quiz.Item, label string) quiz.Item {
	if it.Tag == "" {
		it.Tag = label
	}
	return it
}

func printOutcome(w io.Writer, o assessment.Outcome) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("─", 48))
	fmt.Fprintln(w, "Learning profile:", strings.Join(o.PersonaTags, " · "))
	fmt.Fprintf(w, "Academic stage: %d/%d\n", o.Academic.Correct, o.Academic.Total)
	for _, dim := range o.Radar {
		fmt.Fprintf(w, "  %-6s %3d/%d  %s\n", dim.Subject, dim.Score, dim.FullMark, dim.Analysis)
	}
	if len(o.Preferences) > 0 {
		fmt.Fprintln(w, "Preferences:", strings.Join(o.Preferences, ", "))
	}
	fmt.Fprintf(w, "Plan trimmed by %d%%, saving %s\n", o.Efficiency.RemovedPercent, o.Efficiency.SavedTime)
}
