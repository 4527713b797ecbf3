// Package chat is the companion chat with Lumi.
package chat

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/companion"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

type historyLoadedMsg struct {
	history []companion.Message
	err     error
}

type replyMsg struct{ err error }

// ChatScreen shows the transcript, quick chips and an input line.
type ChatScreen struct {
	deps    *bootstrap.Deps
	conv    *companion.Conversation
	shown   []companion.Message // snapshot read by View while a reply is in flight
	input   components.TextInput
	sending bool
	spinner components.Spinner
	errMsg  string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.BackInterceptor = (*ChatScreen)(nil)

// New creates the chat screen.
func New(d *bootstrap.Deps) *ChatScreen {
	return &ChatScreen{
		deps:    d,
		input:   components.NewTextInput("Say something to Lumi...", 200),
		spinner: components.Spinner{Label: "Lumi is thinking..."},
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	load := func() tea.Msg {
		h, err := s.deps.Content.ChatHistory(context.Background())
		return historyLoadedMsg{history: h, err: err}
	}
	return tea.Batch(load, s.input.Init())
}

func (s *ChatScreen) Title() string { return "Chat with Lumi" }

// InterceptBack clears the input line before leaving.
func (s *ChatScreen) InterceptBack() bool { return s.input.Value() != "" }

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "F1-F4", Description: "Quick chips"},
		{Key: "Ctrl+N", Description: "New chat"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.err != nil {
			s.deps.Log.Warn("load chat history failed", "error", msg.err)
		}
		s.conv = companion.New(msg.history, companion.Options{
			Provider: s.deps.LLM,
			Log:      s.deps.Log,
			Rand:     s.deps.Rand,
			Timeout:  s.deps.Config.LLM.Timeout,
		})
		s.shown = s.conv.Messages()
		return s, nil
	case replyMsg:
		s.sending = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		}
		s.shown = s.conv.Messages()
		return s, nil
	case components.SpinnerTickMsg:
		if !s.sending {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.conv == nil {
		return s, nil
	}
	switch key := kmsg.String(); key {
	case "esc":
		s.input.Reset()
		return s, nil
	case "ctrl+n":
		if s.sending {
			return s, nil
		}
		s.conv.NewChat()
		s.shown = nil
		s.errMsg = ""
		return s, nil
	case "enter":
		text := strings.TrimSpace(s.input.Value())
		s.input.Reset()
		return s, s.send(text)
	case "f1", "f2", "f3", "f4":
		i := int(key[1] - '1')
		if chips := s.conv.Chips(); i < len(chips) {
			return s, s.send(chips[i])
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send posts text and waits for the reply off the UI loop. The user's
// bubble is shown right away from the snapshot.
func (s *ChatScreen) send(text string) tea.Cmd {
	if text == "" || s.sending {
		return nil
	}
	s.sending = true
	s.errMsg = ""
	s.shown = append(s.shown, companion.Message{Sender: companion.SenderUser, Kind: companion.KindText, Content: text})
	conv := s.conv
	reply := func() tea.Msg {
		_, err := conv.Send(context.Background(), text)
		return replyMsg{err: err}
	}
	return tea.Batch(reply, s.spinner.Tick())
}

func (s *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.conv == nil {
		return components.CabinetFrame(theme.Dim.Render("Connecting to Lumi..."), width, height)
	}

	var b strings.Builder
	mode := theme.Dim.Render("offline replies")
	if s.conv.Live() {
		mode = theme.Correct.Render("● live")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("Lumi ✦ ") + mode)
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(s.conv.Greeting()))
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))
	b.WriteString("\n")

	// Leave room for the header, chips and input.
	rows := max(height-14, 4)
	var bubbles []string
	for _, m := range s.shown {
		bubbles = append(bubbles, renderBubble(m, cw))
	}
	transcript := strings.Split(strings.Join(bubbles, "\n"), "\n")
	if len(transcript) > rows {
		transcript = transcript[len(transcript)-rows:]
	}
	b.WriteString(strings.Join(transcript, "\n"))
	b.WriteString("\n")
	if s.sending {
		b.WriteString(s.spinner.View())
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Render(s.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	chips := s.conv.Chips()
	parts := make([]string, len(chips))
	for i, c := range chips {
		parts[i] = theme.Dim.Render(fmt.Sprintf("F%d ", i+1)) + lipgloss.NewStyle().Foreground(theme.Secondary).Render(c)
	}
	b.WriteString(lipgloss.NewStyle().Width(cw).Render(strings.Join(parts, "  ")))
	b.WriteString("\n")
	b.WriteString(components.ArcadeCard(s.input.View(), cw))

	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}

func renderBubble(m companion.Message, cw int) string {
	bw := cw * 3 / 4
	body := m.Content
	if m.Card != nil {
		body += "\n" + theme.Warn.Render("📌 "+m.Card.Title) + theme.Dim.Render("  "+m.Card.Action)
	}
	if m.Sender == companion.SenderUser {
		bubble := lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeCyan).
			Padding(0, 1).
			Width(min(lipgloss.Width(body)+2, bw)).
			Render(body)
		return lipgloss.PlaceHorizontal(cw, lipgloss.Right, bubble)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		Width(bw).
		Render("🤖 " + body)
}
