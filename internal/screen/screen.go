package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/siaga/internal/ui/layout"
)

// Screen is one full-window view managed by the router.
type Screen interface {
	// Init returns the command to run when the screen becomes active.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that set their own footer
// hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a status on the right
// of the header.
type StatusProvider interface {
	Status() string
}
