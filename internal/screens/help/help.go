package help

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/siaga/internal/i18n"
	"github.com/abhisek/siaga/internal/screen"
	"github.com/abhisek/siaga/internal/ui/layout"
	"github.com/abhisek/siaga/internal/ui/theme"
)

// Info describes the loaded model for the help screen.
type Info struct {
	Model         string
	Features      int
	Threshold     float64
	AdviceEnabled bool
}

// HelpScreen lists the form's keys and what the model looks at.
type HelpScreen struct {
	p    *i18n.Printer
	info Info
}

var _ screen.Screen = (*HelpScreen)(nil)
var _ screen.KeyHintProvider = (*HelpScreen)(nil)

// New creates a new HelpScreen.
func New(p *i18n.Printer, info Info) *HelpScreen {
	return &HelpScreen{p: p, info: info}
}

func (h *HelpScreen) Init() tea.Cmd {
	return nil
}

func (h *HelpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return h, nil
}

func (h *HelpScreen) Title() string {
	return h.p.T("Help")
}

func (h *HelpScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: h.p.T("Back")},
		{Key: "Ctrl+C", Description: h.p.T("Quit")},
	}
}

func (h *HelpScreen) View(width, height int) string {
	keys := []layout.KeyHint{
		{Key: "↑ ↓  Tab", Description: h.p.T("Move between questions")},
		{Key: "← →", Description: h.p.T("Change the answer")},
		{Key: "0-9", Description: h.p.T("Type a number or pick an option by its code")},
		{Key: "Enter", Description: h.p.T("Confirm, or analyse on the button")},
		{Key: "Ctrl+S", Description: h.p.T("Analyse Risk")},
		{Key: "Ctrl+R", Description: h.p.T("Reset the form")},
	}

	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(12)
	lines := []string{theme.Title.Render(h.p.T("Keys")), ""}
	for _, k := range keys {
		lines = append(lines, keyStyle.Render(k.Key)+theme.Body.Render(k.Description))
	}

	lines = append(lines, "", theme.Title.Render(h.p.T("Information")), "",
		theme.Body.Render(h.p.T("This system flags early dropout risk based on:")),
		theme.Body.Render("• "+h.p.T("Academic: failed classes, study time.")),
		theme.Body.Render("• "+h.p.T("Social: family relationship, going out.")),
		theme.Body.Render("• "+h.p.T("Health: alcohol consumption, physical condition.")),
		"",
		theme.Hint.Render(h.p.T("Model: %s (%d features, threshold %s)",
			h.info.Model, h.info.Features, strconv.FormatFloat(h.info.Threshold, 'f', -1, 64))),
	)
	if h.info.AdviceEnabled {
		lines = append(lines, theme.Hint.Render(h.p.T("Tailored suggestions are generated by a language model.")))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Panel.Render(strings.Join(lines, "\n")))
}
