// Package router keeps the TUI's screen stack. Screens navigate by
// returning the commands below; the app model feeds every message through
// Router.Update.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumi/internal/screen"
)

type (
	// PushScreenMsg opens Screen on top of the current one.
	PushScreenMsg struct{ Screen screen.Screen }

	// ReplaceScreenMsg swaps the current screen, as when a finished quiz
	// turns into its result page and Esc should skip the quiz.
	ReplaceScreenMsg struct{ Screen screen.Screen }

	// PopScreenMsg closes the current screen.
	PopScreenMsg struct{}

	// ResumedMsg tells the uncovered screen to refresh what the closed
	// one may have changed (coins, mistake status, map stars).
	ResumedMsg struct{}
)

func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Pop is itself a tea.Cmd.
func Pop() tea.Msg { return PopScreenMsg{} }

type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Depth() int { return len(r.stack) }

// Active returns the top of the stack.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen. The root screen is never popped.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) == 1 {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	return func() tea.Msg { return ResumedMsg{} }
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case PushScreenMsg:
		return r.Push(m.Screen)
	case ReplaceScreenMsg:
		return r.Replace(m.Screen)
	case PopScreenMsg:
		return r.Pop()
	}
	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
