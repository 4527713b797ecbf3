package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput for free-text answers and chat.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string { return t.Model.View() }

// Value returns the current input value.
func (t TextInput) Value() string { return t.Model.Value() }

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) { t.Model.SetValue(s) }

// Reset clears the input.
func (t *TextInput) Reset() { t.Model.Reset() }
