package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/subject"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <subject>",
	Short: "Take a quiz in math, chinese or english",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subj, err := subject.Parse(args[0])
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		items, err := d.Content.QuizBank(cmd.Context(), subj)
		if err != nil {
			return fmt.Errorf("load quiz: %w", err)
		}
		q := session.NewQuiz(items)
		if !q.Start() {
			return fmt.Errorf("no %s questions available", subj.Label())
		}

		out := cmd.OutOrStdout()
		p := newPrompter(cmd.InOrStdin(), out)
		fmt.Fprintf(out, "%s quiz: %d questions. Blank answers count as wrong.\n", subj.Label(), len(items))

		for submitted := false; !submitted; {
			it, err := q.Current()
			if err != nil {
				return err
			}
			printItem(out, q.Flow().Index()+1, q.Flow().Len(), it)
			if !readDraft(p, q, it) {
				return nil
			}
			submitted = q.Next()
		}

		res, _ := q.Result()
		fmt.Fprintf(out, "\n%s\n", strings.Repeat("─", 40))
		for i := range items {
			e, _ := q.Review(i)
			fmt.Fprintf(out, "%s %d. %s  (yours: %s, answer: %s)\n",
				mark(e.Correct), i+1, e.Item.Tag, orDash(e.Answer.String()), e.Item.Correct.String())
		}
		fmt.Fprintf(out, "Score: %d/%d (%.0f%%)\n", res.Correct, res.Total, res.Accuracy()*100)

		d.RecordQuiz(cmd.Context(), subj, res)
		return nil
	},
}

// readDraft fills the draft for it from one input line. It returns false
// at end of input.
func readDraft(p *prompter, q *session.Quiz, it quiz.Item) bool {
	for {
		label := "> "
		switch it.Kind {
		case quiz.MultiChoice:
			label = "Options (e.g. 1,3) > "
		case quiz.SingleChoice:
			label = "Option > "
		}
		s, ok := p.line(label)
		if !ok {
			return false
		}
		if s == "" {
			return true
		}
		if it.Kind == quiz.FreeText {
			q.Type(s)
			return true
		}
		choices, err := parseChoices(s, it.Options)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		if it.Kind == quiz.SingleChoice {
			q.Choose(choices[0])
			return true
		}
		for _, c := range choices {
			if !q.Draft(it.ID).Contains(c) {
				q.Toggle(c)
			}
		}
		return true
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
