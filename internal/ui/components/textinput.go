package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NumberInput wraps bubbles/textinput for typing a whole number. Any key
// that is not a digit, a cursor key or backspace is dropped.
type NumberInput struct {
	Model textinput.Model
}

// NewNumberInput creates a focused input seeded with the current value.
func NewNumberInput(current, maxDigits int) NumberInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = maxDigits
	ti.SetValue(strconv.Itoa(current))
	ti.CursorEnd()
	ti.Focus()
	return NumberInput{Model: ti}
}

// Update handles messages.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if key := kmsg.String(); len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// View renders the input.
func (n NumberInput) View() string {
	return n.Model.View()
}

// Value returns the raw text.
func (n NumberInput) Value() string {
	return n.Model.Value()
}

// Number parses the text. An empty or unparsable input reports false.
func (n NumberInput) Number() (int, bool) {
	v, err := strconv.Atoi(n.Model.Value())
	return v, err == nil
}

// DigitsFor returns how many characters are needed to type any value in
// [lo, hi].
func DigitsFor(lo, hi int) int {
	return max(len(strconv.Itoa(lo)), len(strconv.Itoa(hi)))
}
