package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Check the LLM provider and its recorded usage",
}

var llmTestCmd = &cobra.Command{
	Use:   "test [prompt]",
	Short: "Send one prompt to the configured provider",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		if d.LLM == nil {
			return errors.New("no LLM provider configured; set LUMI_LLM_PROVIDER or a provider API key")
		}
		prompt := "你好，Lumi！"
		if len(args) == 1 {
			prompt = args[0]
		}
		resp, err := d.LLM.Generate(cmd.Context(), llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
			MaxTokens: 256,
		})
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d in / %d out, %s)\n%s\n",
			resp.Model, resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.StopReason, resp.Text)
		return nil
	},
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		out := cmd.OutOrStdout()
		repo := d.EventRepo()
		if repo == nil {
			fmt.Fprintln(out, "No database; usage is not recorded.")
			return nil
		}
		usage, err := repo.LLMUsage(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-32s  %6s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Failed", "Input", "Output", "Cost")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		var total float64
		var unknown []string
		for _, u := range usage {
			cost := "?"
			if usd, ok := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); ok {
				total += usd
				cost = formatCost(usd)
			} else {
				unknown = append(unknown, u.Model)
			}
			fmt.Fprintf(out, "%-32s  %6d  %6d  %10d  %10d  %10s\n",
				truncate(u.Model, 32), u.Requests, u.Failures, u.InputTokens, u.OutputTokens, cost)
		}
		fmt.Fprintln(out, strings.Repeat("─", 84))
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-32s  %52s\n", label, formatCost(total))
		if len(unknown) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmTestCmd)
	llmCmd.AddCommand(llmUsageCmd)
}
