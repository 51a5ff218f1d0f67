package assess

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/siaga/internal/features"
	"github.com/abhisek/siaga/internal/ui/components"
	"github.com/abhisek/siaga/internal/ui/layout"
	"github.com/abhisek/siaga/internal/ui/theme"
)

func (s *AssessScreen) View(width, height int) string {
	if layout.IsWide(width) {
		formWidth := width * 3 / 5
		resultWidth := width - formWidth - 2
		lines, focus := s.formLines(formWidth - 2)
		lines, _ = layout.Window(lines, focus, height)
		left := lipgloss.NewStyle().Width(formWidth).Padding(0, 1).Render(strings.Join(lines, "\n"))
		right := lipgloss.NewStyle().Width(resultWidth).Render(s.resultPanel(resultWidth))
		return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	}

	results := s.resultPanel(width - 2)
	formHeight := max(height-lipgloss.Height(results)-1, 6)
	lines, focus := s.formLines(width - 2)
	lines, _ = layout.Window(lines, focus, formHeight)
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(lines, "\n") + "\n\n" + results)
}

// formLines renders the form and returns the index of the focused line.
func (s *AssessScreen) formLines(width int) ([]string, int) {
	lines := []string{
		theme.Title.Render(s.p.T("Student Profile")),
		theme.Hint.Render(s.p.T("Please fill in the following:")),
	}
	focus := 0

	var section features.Section
	for i, spec := range s.fields {
		if i == 0 || spec.Section != section {
			section = spec.Section
			lines = append(lines, "", theme.Section.Render(s.sectionTitle(section)))
		}

		focused := i == s.cursor
		label := theme.Unselected.Render("  " + spec.Label)
		if focused {
			label = theme.Selected.Render("▸ " + spec.Label)
			focus = len(lines)
		}
		lines = append(lines, label, "    "+s.valueView(spec, focused, width-4))
		if focused && spec.Help != "" {
			lines = append(lines, "    "+theme.Hint.Render(spec.Help))
		}
	}

	lines = append(lines, "")
	if s.onButton() {
		focus = len(lines)
	}
	lines = append(lines, components.NewButton(s.p.T("Analyse Risk"), s.onButton()).View())
	if s.notice != "" {
		lines = append(lines, "", theme.Notice.Render(s.notice))
	}
	return lines, focus
}

func (s *AssessScreen) valueView(spec features.FeatureSpec, focused bool, width int) string {
	v, _ := s.draft.Get(spec.Name)

	if focused && s.editing {
		return theme.SelectedValue.Render(s.input.View())
	}

	switch {
	case spec.HasOptions():
		labels := make([]string, len(spec.Options))
		current := 0
		for i, o := range spec.Options {
			labels[i] = o.Label
			if o.Value == v {
				current = i
			}
		}
		return components.Selector{Labels: labels, Current: current, Focused: focused}.View(width)

	case spec.Kind == features.KindScale:
		labels := make([]string, 0, spec.Max-spec.Min+1)
		for n := spec.Min; n <= spec.Max; n++ {
			labels = append(labels, strconv.Itoa(n))
		}
		return components.Selector{Labels: labels, Current: v - spec.Min, Focused: focused}.View(width)

	default:
		if !focused {
			return theme.Value.Render(strconv.Itoa(v))
		}
		dim := lipgloss.NewStyle().Foreground(theme.TextDim)
		return dim.Render("◂ ") + theme.SelectedValue.Render(strconv.Itoa(v)) + dim.Render(" ▸") +
			dim.Render(fmt.Sprintf("  (%d-%d)", spec.Min, spec.Max))
	}
}

func (s *AssessScreen) sectionTitle(sec features.Section) string {
	switch sec {
	case features.SectionStudent:
		return s.p.T("Student")
	case features.SectionParents:
		return s.p.T("Parents' Education")
	case features.SectionAcademics:
		return s.p.T("Academics")
	case features.SectionScales:
		return s.p.T("Social & Health Indicators (Scale 1-5)")
	default:
		return s.p.T("Other Questions")
	}
}

func (s *AssessScreen) resultPanel(width int) string {
	var blocks []string

	if s.changed {
		blocks = append(blocks, theme.Banner.Width(width).Render(
			s.p.T("Model file changed on disk. Restart to load the new version.")))
	}

	blocks = append(blocks, theme.Title.Render(s.p.T("Result")))

	if s.result == nil {
		blocks = append(blocks, theme.Hint.Width(width).Render(
			s.p.T("Fill in the student profile on the left to start the analysis.")))
	} else {
		blocks = append(blocks, s.verdictCard(width), s.adviceBlock(width))
	}

	blocks = append(blocks, s.infoPanel(width))
	return strings.Join(blocks, "\n\n")
}

func (s *AssessScreen) verdictCard(width int) string {
	res := s.result.Result

	card, headline, explanation := theme.SafeCard, s.p.T("STATUS: SAFE"),
		s.p.T("The student's profile shows positive signs of continuing their studies.")
	headColor := theme.Success
	if res.AtRisk() {
		card, headline = theme.RiskCard, s.p.T("WARNING: AT RISK OF DROPOUT")
		explanation = s.p.T("Based on the submitted profile, this student resembles students who dropped out.")
		headColor = theme.Error
	}

	inner := max(width-card.GetHorizontalFrameSize(), 10)
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(headColor).Render(headline),
		lipgloss.NewStyle().Foreground(theme.Text).Width(inner).Render(explanation),
		"",
		theme.Body.Render(s.p.T("Risk probability: %s", res.Percent())),
		components.NewRiskBar(res.Probability, res.Threshold, inner).View(),
	)
	return card.Width(width).Render(body)
}

func (s *AssessScreen) adviceBlock(width int) string {
	lines := []string{theme.Section.Render(s.p.T("Suggested Actions"))}
	if s.advice.Summary != "" {
		lines = append(lines, theme.Body.Width(width).Render(s.advice.Summary))
	}
	for _, a := range s.advice.Actions {
		lines = append(lines, theme.Body.Width(width).Render("• "+a))
	}
	if s.advising {
		lines = append(lines, theme.Hint.Render(s.p.T("Generating tailored suggestions...")))
	}
	return strings.Join(lines, "\n")
}

func (s *AssessScreen) infoPanel(width int) string {
	inner := max(width-theme.Panel.GetHorizontalFrameSize(), 10)
	text := lipgloss.NewStyle().Foreground(theme.TextDim).Width(inner)
	lines := []string{
		theme.Section.Render(s.p.T("Information")),
		text.Render(s.p.T("This system flags early dropout risk based on:")),
		text.Render("• " + s.p.T("Academic: failed classes, study time.")),
		text.Render("• " + s.p.T("Social: family relationship, going out.")),
		text.Render("• " + s.p.T("Health: alcohol consumption, physical condition.")),
		"",
		text.Render(s.p.T("Model: %s (%d features, threshold %s)",
			s.opts.Bundle.Name(), len(s.fields), strconv.FormatFloat(s.opts.Service.Threshold(), 'f', -1, 64))),
	}
	return theme.Panel.Width(width).Render(strings.Join(lines, "\n"))
}
