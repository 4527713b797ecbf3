package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/companion"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with Lumi in the terminal",
	Long:  "Chat with Lumi line by line. Type /1 to /4 for a quick chip, /new for a fresh chat and /quit to leave.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		history, err := d.Content.ChatHistory(cmd.Context())
		if err != nil {
			d.Log.Warn("load chat history failed", "error", err)
		}
		conv := companion.New(history, companion.Options{
			Provider: d.LLM,
			Log:      d.Log,
			Rand:     d.Rand,
			Timeout:  d.Config.LLM.Timeout,
		})

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Lumi:", conv.Greeting())
		for i, c := range conv.Chips() {
			fmt.Fprintf(out, "  /%d %s\n", i+1, c)
		}

		p := newPrompter(cmd.InOrStdin(), out)
		for {
			s, ok := p.line("you> ")
			if !ok || s == "/quit" {
				return nil
			}
			switch {
			case s == "":
				continue
			case s == "/new":
				conv.NewChat()
				fmt.Fprintln(out, "Lumi:", conv.Greeting())
				continue
			case strings.HasPrefix(s, "/"):
				n, err := strconv.Atoi(s[1:])
				chips := conv.Chips()
				if err != nil || n < 1 || n > len(chips) {
					fmt.Fprintln(out, "unknown command", s)
					continue
				}
				s = chips[n-1]
				fmt.Fprintln(out, "you>", s)
			}
			reply, err := conv.Send(cmd.Context(), s)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Lumi:", reply.Content)
		}
	},
}
