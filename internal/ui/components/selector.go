package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/siaga/internal/ui/theme"
)

// Selector renders a row of choices with the current one highlighted,
// e.g. "◂ SMP ▸" when focused. Stepping is done by the owner.
type Selector struct {
	Labels  []string
	Current int
	Focused bool
}

// View renders the selector. Focused selectors show every choice when
// they fit in width, and only the current one with arrows otherwise.
func (s Selector) View(width int) string {
	if len(s.Labels) == 0 {
		return ""
	}
	cur := min(max(s.Current, 0), len(s.Labels)-1)

	if !s.Focused {
		return theme.Value.Render(s.Labels[cur])
	}

	parts := make([]string, len(s.Labels))
	for i, l := range s.Labels {
		if i == cur {
			parts[i] = theme.SelectedValue.Render(l)
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(l)
		}
	}
	row := strings.Join(parts, " ")
	if lipgloss.Width(row) <= width {
		return row
	}

	arrow := lipgloss.NewStyle().Foreground(theme.TextDim)
	left, right := " ", " "
	if cur > 0 {
		left = "◂"
	}
	if cur < len(s.Labels)-1 {
		right = "▸"
	}
	return arrow.Render(left) + " " + theme.SelectedValue.Render(s.Labels[cur]) + " " + arrow.Render(right)
}
