// Package shop is the reward store.
package shop

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/rewards"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

var categories = []rewards.Category{rewards.CategoryVirtual, rewards.CategoryTicket}

// ShopScreen lists the catalog by category and buys items.
type ShopScreen struct {
	deps     *bootstrap.Deps
	category int
	cursor   int
	buying   *rewards.Item
	dialog   components.Dialog
	flash    string
	flashErr bool
}

var _ screen.Screen = (*ShopScreen)(nil)
var _ screen.KeyHintProvider = (*ShopScreen)(nil)
var _ screen.BackInterceptor = (*ShopScreen)(nil)

// New creates the store screen.
func New(d *bootstrap.Deps) *ShopScreen {
	return &ShopScreen{deps: d}
}

func (s *ShopScreen) Init() tea.Cmd { return nil }

func (s *ShopScreen) Title() string { return "Reward Store" }

// InterceptBack closes the purchase dialog instead of leaving.
func (s *ShopScreen) InterceptBack() bool { return s.buying != nil }

func (s *ShopScreen) KeyHints() []layout.KeyHint {
	if s.buying != nil {
		return []layout.KeyHint{{Key: "←→", Description: "Choose"}, {Key: "Enter", Description: "Confirm"}, {Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Category"},
		{Key: "↑↓", Description: "Browse"},
		{Key: "Enter", Description: "Buy"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ShopScreen) items() []rewards.Item {
	return s.deps.Rewards.Catalog().ByCategory(categories[s.category])
}

func (s *ShopScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.buying != nil {
		var res components.DialogResult
		s.dialog, res = s.dialog.Update(msg)
		switch res {
		case components.DialogConfirmed:
			s.buy(*s.buying)
			s.buying = nil
		case components.DialogCancelled:
			s.buying = nil
		}
		return s, nil
	}

	items := s.items()
	switch kmsg.String() {
	case "tab", "right", "l":
		s.category = (s.category + 1) % len(categories)
		s.cursor = 0
	case "shift+tab", "left", "h":
		s.category = (s.category + len(categories) - 1) % len(categories)
		s.cursor = 0
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, max(len(items)-1, 0))
	case "enter":
		if s.cursor >= len(items) {
			return s, nil
		}
		it := items[s.cursor]
		if err := s.deps.Rewards.Wallet().CanBuy(it); err != nil {
			s.flash, s.flashErr = err.Error(), true
			return s, nil
		}
		s.buying = &it
		s.dialog = components.NewDialog(fmt.Sprintf("Buy %s %s for 🪙 %d?", it.Icon, it.Name, it.Price), "Buy", "Cancel")
	}
	return s, nil
}

func (s *ShopScreen) buy(it rewards.Item) {
	if _, err := s.deps.Rewards.Buy(context.Background(), it.ID); err != nil {
		s.flash, s.flashErr = err.Error(), true
		return
	}
	s.flash = fmt.Sprintf("Bought %s %s! 🪙 %d left", it.Icon, it.Name, s.deps.Rewards.Wallet().Coins)
	s.flashErr = false
}

func (s *ShopScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	w := s.deps.Rewards.Wallet()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("🪙 %d", w.Coins)))
	b.WriteString(theme.Dim.Render(fmt.Sprintf("   Lv.%d", w.Level)))
	b.WriteString("\n\n")

	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = c.DisplayName()
	}
	b.WriteString(components.Tabs(labels, s.category))
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))
	b.WriteString("\n")

	if s.buying != nil {
		b.WriteString(s.dialog.View(cw))
		return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
	}

	items := s.items()
	for i, it := range items {
		b.WriteString(renderItem(w, it, i == s.cursor, cw))
		b.WriteString("\n")
	}
	if len(items) == 0 {
		b.WriteString(theme.Dim.Render("Nothing on the shelf yet."))
	}
	if s.flash != "" {
		style := theme.Correct
		if s.flashErr {
			style = theme.Incorrect
		}
		b.WriteString("\n" + style.Render(s.flash))
	}
	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}

func renderItem(w rewards.Wallet, it rewards.Item, selected bool, cw int) string {
	name := it.Name
	if it.Rare {
		name += " ✦"
	}
	nameStyle := theme.Unselected
	prefix := "  "
	if selected {
		nameStyle = theme.Selected
		prefix = theme.Selected.Render("▸ ")
	}

	var state string
	switch a := w.Availability(it); a {
	case rewards.Available:
		state = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(fmt.Sprintf("🪙 %d", it.Price))
	case rewards.Owned:
		state = theme.Correct.Render("owned")
	case rewards.LevelLocked:
		state = theme.Dim.Render(fmt.Sprintf("🔒 Lv.%d", it.MinLevel))
	default:
		state = theme.Incorrect.Render(fmt.Sprintf("🪙 %d", it.Price))
	}
	line := fmt.Sprintf("%s%s %s  %s", prefix, it.Icon, nameStyle.Render(name), state)
	if selected && it.Description != "" {
		line += "\n" + lipgloss.NewStyle().Width(cw-4).PaddingLeft(4).Foreground(theme.TextDim).Render(it.Description)
	}
	return line
}
