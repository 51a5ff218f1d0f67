package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/siaga/internal/model"
	"github.com/abhisek/siaga/internal/ui/theme"
)

// RiskBar shows a probability as a filled bar with a marker at the
// decision threshold.
type RiskBar struct {
	Probability float64
	Threshold   float64
	Width       int
}

// NewRiskBar creates a new risk bar.
func NewRiskBar(probability, threshold float64, width int) RiskBar {
	return RiskBar{Probability: probability, Threshold: threshold, Width: width}
}

// View renders the bar followed by the percentage, e.g. "73.0%".
func (r RiskBar) View() string {
	pct := model.FormatPercent(r.Probability)
	barWidth := max(r.Width-len(pct)-2, 4)

	filled := min(max(int(float64(barWidth)*r.Probability+0.5), 0), barWidth)
	mark := min(max(int(float64(barWidth)*r.Threshold), 0), barWidth-1)

	var b strings.Builder
	for i := range barWidth {
		cell := " "
		if i == mark {
			cell = "│"
		}
		if i < filled {
			b.WriteString(theme.ProgressFilled.Render(cell))
		} else {
			b.WriteString(theme.ProgressEmpty.Render(cell))
		}
	}

	return b.String() + "  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(pct)
}
