package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/rewards"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Spend coins in the reward store",
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List store items",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		out := cmd.OutOrStdout()
		w := d.Rewards.Wallet()
		fmt.Fprintf(out, "Lv.%d  🪙 %d\n", w.Level, w.Coins)
		for _, cat := range []rewards.Category{rewards.CategoryVirtual, rewards.CategoryTicket} {
			items := d.Rewards.Catalog().ByCategory(cat)
			if len(items) == 0 {
				continue
			}
			fmt.Fprintf(out, "\n%s\n", cat.DisplayName())
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, it := range items {
				fmt.Fprintf(out, "%-10s %s %-16s %5d  %s\n", it.ID, it.Icon, it.Name, it.Price, itemState(w, it))
			}
		}
		return nil
	},
}

func itemState(w rewards.Wallet, it rewards.Item) string {
	switch a := w.Availability(it); a {
	case rewards.Available:
		return ""
	case rewards.LevelLocked:
		return fmt.Sprintf("Lv.%d", it.MinLevel)
	default:
		return string(a)
	}
}

var storeBuyCmd = &cobra.Command{
	Use:   "buy <item-id>",
	Short: "Buy a store item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer closeDeps(cmd, d)

		it, err := d.Rewards.Buy(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bought %s %s. 🪙 %d left\n", it.Icon, it.Name, d.Rewards.Wallet().Coins)
		return nil
	},
}

func init() {
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeBuyCmd)
}
