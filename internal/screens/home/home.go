package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/screens/assess"
	"github.com/abhisek/lumi/internal/screens/chat"
	"github.com/abhisek/lumi/internal/screens/conquer"
	"github.com/abhisek/lumi/internal/screens/history"
	"github.com/abhisek/lumi/internal/screens/leaderboard"
	quizscreen "github.com/abhisek/lumi/internal/screens/quiz"
	"github.com/abhisek/lumi/internal/screens/shop"
	"github.com/abhisek/lumi/internal/screens/skillmap"
	"github.com/abhisek/lumi/internal/screens/today"
	vaultscreen "github.com/abhisek/lumi/internal/screens/vault"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
)

const (
	itemPlan = iota
	itemMap
	itemQuiz
	itemVault
	itemConquer
	itemAssess
	itemStore
	itemLeaderboard
	itemChat
	itemHistory
	itemExit
)

// HomeScreen is the dashboard and main menu.
type HomeScreen struct {
	deps *bootstrap.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(d *bootstrap.Deps) *HomeScreen {
	h := &HomeScreen{deps: d}
	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd { return router.Push(s()) }
	}
	pick := func(title string, open func(subject.Subject) screen.Screen) func() tea.Cmd {
		return push(func() screen.Screen { return newPicker(title, open) })
	}

	items := make([]components.MenuItem, itemExit+1)
	items[itemPlan] = components.MenuItem{Label: "Today's Plan", Action: push(func() screen.Screen { return today.New(d) })}
	items[itemMap] = components.MenuItem{Label: "Skill Map", Action: pick("Skill Map", func(s subject.Subject) screen.Screen { return skillmap.New(d, s) })}
	items[itemQuiz] = components.MenuItem{Label: "Quiz", Action: pick("Quiz", func(s subject.Subject) screen.Screen { return quizscreen.New(d, s) })}
	items[itemVault] = components.MenuItem{Label: "Mistake Vault", Action: push(func() screen.Screen { return vaultscreen.New(d) })}
	items[itemConquer] = components.MenuItem{Label: "Daily Conquer", Hint: "+XP", Action: push(func() screen.Screen { return conquer.New(d) })}
	items[itemAssess] = components.MenuItem{Label: "Learning Profile", Action: push(func() screen.Screen { return assess.New(d) })}
	items[itemStore] = components.MenuItem{Label: "Coin Store", Action: push(func() screen.Screen { return shop.New(d) })}
	items[itemLeaderboard] = components.MenuItem{Label: "Leaderboard", Action: push(func() screen.Screen { return leaderboard.New(d) })}
	items[itemChat] = components.MenuItem{Label: "Chat with Lumi", Action: push(func() screen.Screen { return chat.New(d) })}
	items[itemHistory] = components.MenuItem{Label: "History", Action: push(func() screen.Screen { return history.New(d) })}
	items[itemExit] = components.MenuItem{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }}

	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

// refresh updates the badges from the current state.
func (h *HomeScreen) refresh() {
	prog := h.deps.Board.Progress()
	pending := h.deps.Vault.Vault.PendingCount()

	items := h.menu.Items
	items[itemPlan].Badge = ""
	if left := prog.Total - prog.Done; left > 0 {
		items[itemPlan].Badge = fmt.Sprint(left)
	}
	items[itemVault].Badge = ""
	if pending > 0 {
		items[itemVault].Badge = fmt.Sprint(pending)
	}
	items[itemConquer].Disabled = pending == 0
}

func (h *HomeScreen) Init() tea.Cmd { return nil }

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ResumedMsg); ok {
		h.refresh()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	prog := h.deps.Board.Progress()
	pending := h.deps.Vault.Vault.PendingCount()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		greeting := fmt.Sprintf("Hi %s! %s", h.deps.Profile.Name, h.deps.Board.Plan().Title)
		sections = append(sections, renderMascotBox(pickMascot(prog.Total > 0 && prog.Done == prog.Total, pending), greeting, cw))
	}
	sections = append(sections, renderStatsBar(h.deps.Stats, prog, pending, cw, compact))
	if h.deps.LLM == nil && !compact {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections, h.menu.View())

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
