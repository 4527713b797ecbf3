// Package vault is the mistake vault browser: filters, stars, mastery
// confirmation and variant practice.
package vault

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/screens/conquer"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
	"github.com/abhisek/lumi/internal/vault"
)

var statuses = []vault.StatusFilter{vault.ShowPending, vault.ShowNew, vault.ShowReviewing, vault.ShowMastered, vault.ShowAll}

var statusLabels = []string{"待攻克", "新错题", "复习中", "已掌握", "全部"}

// subjectTabs has the zero subject first for "all subjects".
var subjectTabs = append([]subject.Subject{""}, subject.All...)

// row is one line of the grouped listing.
type row struct {
	topic string // set on group headers
	item  vault.Item
}

// VaultScreen lists mistakes grouped by topic.
type VaultScreen struct {
	deps    *bootstrap.Deps
	subj    int
	status  int
	cursor  int
	rows    []row
	expand  bool
	confirm *vault.Confirmation
	dialog  components.Dialog
	flash   string
}

var _ screen.Screen = (*VaultScreen)(nil)
var _ screen.KeyHintProvider = (*VaultScreen)(nil)
var _ screen.BackInterceptor = (*VaultScreen)(nil)

// New creates the vault screen showing pending items of every subject.
func New(d *bootstrap.Deps) *VaultScreen {
	s := &VaultScreen{deps: d}
	s.reload()
	return s
}

func (s *VaultScreen) Init() tea.Cmd { return nil }

func (s *VaultScreen) Title() string { return "Mistake Vault" }

// InterceptBack closes an open confirmation instead of leaving.
func (s *VaultScreen) InterceptBack() bool { return s.confirm != nil }

func (s *VaultScreen) KeyHints() []layout.KeyHint {
	if s.confirm != nil {
		return []layout.KeyHint{{Key: "←→", Description: "Choose"}, {Key: "Enter", Description: "Confirm"}, {Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Subject"},
		{Key: "f", Description: "Status"},
		{Key: "s", Description: "Star"},
		{Key: "m", Description: "Master"},
		{Key: "v", Description: "Practice"},
		{Key: "c", Description: "Conquer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VaultScreen) filter() vault.Filter {
	return vault.Filter{Subject: subjectTabs[s.subj], Status: statuses[s.status]}
}

// reload rebuilds the rows and keeps the cursor on an item.
func (s *VaultScreen) reload() {
	s.rows = s.rows[:0]
	for _, g := range s.deps.Vault.Vault.Filter(s.filter()) {
		s.rows = append(s.rows, row{topic: g.Topic})
		for _, it := range g.Items {
			s.rows = append(s.rows, row{item: it})
		}
	}
	s.cursor = min(s.cursor, max(len(s.rows)-1, 0))
	if s.cursor < len(s.rows) && s.rows[s.cursor].topic != "" {
		s.move(1)
	}
}

// move steps the cursor over items, skipping group headers.
func (s *VaultScreen) move(dir int) {
	for i := s.cursor + dir; i >= 0 && i < len(s.rows); i += dir {
		if s.rows[i].topic == "" {
			s.cursor = i
			return
		}
	}
}

func (s *VaultScreen) selected() (vault.Item, bool) {
	if s.cursor >= len(s.rows) || s.rows[s.cursor].topic != "" {
		return vault.Item{}, false
	}
	return s.rows[s.cursor].item, true
}

func (s *VaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ResumedMsg); ok {
		s.reload()
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.confirm != nil {
		var res components.DialogResult
		s.dialog, res = s.dialog.Update(msg)
		switch res {
		case components.DialogConfirmed:
			t, err := s.deps.Vault.Confirm(context.Background(), *s.confirm)
			if err != nil {
				s.flash = err.Error()
			} else {
				s.flash = fmt.Sprintf("%s → %s", t.ItemID, t.To)
			}
			s.confirm = nil
			s.reload()
		case components.DialogCancelled:
			s.confirm = nil
		}
		return s, nil
	}

	s.flash = ""
	switch kmsg.String() {
	case "tab":
		s.subj = (s.subj + 1) % len(subjectTabs)
		s.cursor = 0
		s.reload()
	case "shift+tab":
		s.subj = (s.subj + len(subjectTabs) - 1) % len(subjectTabs)
		s.cursor = 0
		s.reload()
	case "f":
		s.status = (s.status + 1) % len(statuses)
		s.cursor = 0
		s.reload()
	case "up", "k":
		s.move(-1)
	case "down", "j":
		s.move(1)
	case "enter":
		s.expand = !s.expand
	case "s":
		if it, ok := s.selected(); ok {
			if _, err := s.deps.Vault.ToggleStar(context.Background(), it.ID); err != nil {
				s.flash = err.Error()
			}
			s.reload()
		}
	case "m":
		if it, ok := s.selected(); ok {
			s.openConfirm(it)
		}
	case "v":
		if it, ok := s.selected(); ok {
			return s, router.Push(NewPractice(s.deps, it))
		}
	case "c":
		if s.deps.Vault.Vault.PendingCount() > 0 {
			return s, router.Push(conquer.New(s.deps))
		}
		s.flash = "Nothing pending to conquer."
	}
	return s, nil
}

func (s *VaultScreen) openConfirm(it vault.Item) {
	conf, err := s.deps.Vault.Vault.RequestToggle(it.ID)
	if err != nil {
		s.flash = err.Error()
		return
	}
	q := "Mark this mistake as mastered?"
	yes := "Mastered"
	if conf.Kind == vault.ConfirmUnmaster {
		q = "Move this mistake back to reviewing?"
		yes = "Review again"
	}
	s.confirm = &conf
	s.dialog = components.NewDialog(q, yes, "Cancel")
}

func (s *VaultScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderStats(cw))
	b.WriteString("\n\n")

	labels := make([]string, len(subjectTabs))
	for i, subj := range subjectTabs {
		labels[i] = "全部"
		if subj != "" {
			labels[i] = subj.Label()
		}
	}
	b.WriteString(components.Tabs(labels, s.subj))
	b.WriteString("   ")
	b.WriteString(theme.Dim.Render("status: ") + theme.Selected.Render(statusLabels[s.status]))
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))
	b.WriteString("\n")

	if s.confirm != nil {
		if it, err := s.deps.Vault.Vault.Find(s.confirm.ItemID); err == nil {
			b.WriteString(theme.Body.Render(it.Snippet))
			b.WriteString("\n\n")
		}
		b.WriteString(s.dialog.View(cw))
		return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
	}

	if len(s.rows) == 0 {
		b.WriteString(theme.Dim.Render("No mistakes here. 🎉"))
	}
	for i, r := range s.rows {
		if r.topic != "" {
			b.WriteString(theme.Warn.Render("▍" + r.topic))
			b.WriteString("\n")
			continue
		}
		b.WriteString(s.renderItem(r.item, i == s.cursor, cw))
		b.WriteString("\n")
	}
	if s.flash != "" {
		b.WriteString("\n" + theme.Hint.Render(s.flash))
	}
	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}

func (s *VaultScreen) renderStats(cw int) string {
	v := s.deps.Vault.Vault
	parts := []string{theme.Warn.Render(fmt.Sprintf("%d pending", v.PendingCount()))}
	for _, st := range v.SubjectStats() {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.SubjectColor(st.Subject)).
			Render(fmt.Sprintf("%s %d · %d%%", st.Subject.Label(), st.Pending, st.SolvedPercent)))
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(parts, "   "))
}

func (s *VaultScreen) renderItem(it vault.Item, selected bool, cw int) string {
	star := "  "
	if it.Stats.Starred {
		star = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("★ ")
	}
	prefix := "  "
	text := theme.Unselected.Render(it.Snippet)
	if selected {
		prefix = theme.Selected.Render("▸ ")
		text = theme.Selected.Render(it.Snippet)
	}
	meta := theme.Dim.Render(fmt.Sprintf("%s · %s · ×%d", it.ErrorType.Label(), it.Status, it.Stats.ErrorCount))
	line := prefix + star + text + "  " + meta
	if !selected || !s.expand {
		return line
	}

	var d strings.Builder
	d.WriteString(it.Question)
	if it.WrongAnswer != "" {
		d.WriteString("\n" + theme.Incorrect.Render("Your answer: "+it.WrongAnswer))
	}
	d.WriteString("\n" + theme.Correct.Render("Correct: "+it.CorrectAnswer))
	if it.Analysis != "" {
		d.WriteString("\n" + theme.Dim.Render(it.Analysis))
	}
	if len(it.Tags) > 0 {
		d.WriteString("\n" + theme.Hint.Render("#"+strings.Join(it.Tags, " #")))
	}
	return line + "\n" + components.ArcadeCard(d.String(), cw)
}
