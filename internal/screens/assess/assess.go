package assess

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/siaga/internal/advisor"
	"github.com/abhisek/siaga/internal/assessment"
	"github.com/abhisek/siaga/internal/features"
	"github.com/abhisek/siaga/internal/form"
	"github.com/abhisek/siaga/internal/i18n"
	"github.com/abhisek/siaga/internal/model"
	"github.com/abhisek/siaga/internal/router"
	"github.com/abhisek/siaga/internal/screen"
	"github.com/abhisek/siaga/internal/screens/help"
	"github.com/abhisek/siaga/internal/ui/components"
	"github.com/abhisek/siaga/internal/ui/layout"
)

// Options configures the assessment screen.
type Options struct {
	Service *assessment.Service
	Bundle  *model.Bundle
	Lang    string

	// Changed fires when the artifact on disk changes. The loaded bundle
	// is kept; the screen only shows a banner.
	Changed <-chan struct{}

	Logger *zap.Logger
}

// AssessScreen is the student profile form with its result panel.
type AssessScreen struct {
	opts Options
	p    *i18n.Printer

	// fields are in display order: grouped by section, model order within
	// a section.
	fields []features.FeatureSpec
	draft  *form.Draft

	// cursor indexes fields; len(fields) is the submit button.
	cursor  int
	editing bool
	input   components.NumberInput
	notice  string

	result   *assessment.Assessment
	advice   advisor.Advice
	advising bool
	changed  bool
}

var _ screen.Screen = (*AssessScreen)(nil)
var _ screen.KeyHintProvider = (*AssessScreen)(nil)
var _ screen.StatusProvider = (*AssessScreen)(nil)

// New creates the assessment screen for the loaded model.
func New(opts Options) *AssessScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	resolver := opts.Service.Resolver(opts.Lang)
	fields := displayOrder(resolver.Fields())
	return &AssessScreen{
		opts:   opts,
		p:      i18n.New(resolver.Catalog().Language()),
		fields: fields,
		draft:  form.NewDraft(fields),
	}
}

// displayOrder groups fields by section, keeping model order inside each.
func displayOrder(fields []features.FeatureSpec) []features.FeatureSpec {
	out := make([]features.FeatureSpec, 0, len(fields))
	for _, sec := range features.AllSections() {
		for _, f := range fields {
			if f.Section == sec {
				out = append(out, f)
			}
		}
	}
	return out
}

func (s *AssessScreen) Init() tea.Cmd {
	return waitForChange(s.opts.Changed)
}

func (s *AssessScreen) Title() string {
	return s.p.T("Dropout Early Warning")
}

// Status names the loaded model.
func (s *AssessScreen) Status() string {
	return s.opts.Bundle.Name()
}

func (s *AssessScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "0-9", Description: s.p.T("Type a number")},
			{Key: "Enter", Description: s.p.T("Confirm")},
			{Key: "Esc", Description: s.p.T("Cancel")},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.p.T("Navigate")},
		{Key: "←→", Description: s.p.T("Change")},
		{Key: "Ctrl+S", Description: s.p.T("Analyse Risk")},
		{Key: "?", Description: s.p.T("Help")},
		{Key: "Ctrl+C", Description: s.p.T("Quit")},
	}
}

func (s *AssessScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case adviceMsg:
		if s.result != nil && msg.id == s.result.ID {
			s.advice = msg.advice
			s.advising = false
		}
		return s, nil

	case artifactChangedMsg:
		if !s.changed {
			s.opts.Logger.Info("model artifact changed on disk; keeping loaded bundle",
				zap.String("model", s.opts.Bundle.Name()))
		}
		s.changed = true
		return s, waitForChange(s.opts.Changed)

	case tea.KeyPressMsg:
		if s.editing {
			return s.handleEditKey(msg)
		}
		return s.handleKey(msg)
	}

	if s.editing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *AssessScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "up", "k", "shift+tab":
		s.move(-1)
	case "down", "j", "tab":
		s.move(1)
	case "left", "h":
		s.step(-1)
	case "right", "l":
		s.step(1)
	case "ctrl+s":
		return s, s.submit()
	case "ctrl+r":
		s.reset()
	case "?":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: help.New(s.p, s.helpInfo())}
		}
	case "enter":
		if s.onButton() {
			return s, s.submit()
		}
		if spec := s.fields[s.cursor]; !spec.HasOptions() {
			s.startEditing(spec, "")
			return s, nil
		}
		s.move(1)
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' && !s.onButton() {
			s.typeDigit(int(key[0] - '0'))
		}
	}
	return s, nil
}

func (s *AssessScreen) handleEditKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.commit()
		return s, nil
	case "esc":
		s.editing = false
		return s, nil
	case "up", "down", "tab", "shift+tab":
		s.commit()
		return s.handleKey(msg)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *AssessScreen) onButton() bool {
	return s.cursor == len(s.fields)
}

func (s *AssessScreen) move(delta int) {
	s.cursor = min(max(s.cursor+delta, 0), len(s.fields))
}

func (s *AssessScreen) step(delta int) {
	if s.onButton() {
		return
	}
	s.notice = ""
	s.draft.Step(s.fields[s.cursor].Name, delta)
}

// typeDigit picks the option with that code, or starts typing a number
// for range fields.
func (s *AssessScreen) typeDigit(d int) {
	spec := s.fields[s.cursor]
	if spec.HasOptions() {
		if spec.Accepts(d) {
			s.set(spec, d)
		}
		return
	}
	s.startEditing(spec, fmt.Sprint(d))
}

func (s *AssessScreen) startEditing(spec features.FeatureSpec, typed string) {
	current, _ := s.draft.Get(spec.Name)
	s.input = components.NewNumberInput(current, components.DigitsFor(spec.Min, spec.Max))
	if typed != "" {
		s.input.Model.SetValue(typed)
		s.input.Model.CursorEnd()
	}
	s.editing = true
	s.notice = ""
}

// commit stores the typed number. An empty input keeps the old value.
func (s *AssessScreen) commit() {
	s.editing = false
	if v, ok := s.input.Number(); ok {
		s.set(s.fields[s.cursor], v)
	}
}

func (s *AssessScreen) set(spec features.FeatureSpec, v int) {
	stored, clamped, err := s.draft.Set(spec.Name, v)
	if err != nil {
		// The draft is built from the same field list the cursor walks.
		panic(err)
	}
	s.notice = ""
	if clamped {
		s.notice = s.p.T("%s was clamped to %d", spec.Label, stored)
	}
}

func (s *AssessScreen) reset() {
	s.draft.Reset()
	s.editing = false
	s.notice = ""
	s.result = nil
	s.advising = false
	s.cursor = 0
}

// submit scores the draft and returns the command fetching tailored
// advice, if an LLM is configured.
func (s *AssessScreen) submit() tea.Cmd {
	svc := s.opts.Service
	a, err := svc.Run(context.Background(), s.draft.Values())
	if err != nil {
		// Every draft value is clamped on entry and the draft holds exactly
		// the model's features, so assembly cannot fail here.
		panic(err)
	}

	s.result = a
	s.advice = svc.StaticAdvice(a, s.opts.Lang)
	s.advising = false
	if !svc.Advisor().Enabled() {
		return nil
	}

	s.advising = true
	lang := s.opts.Lang
	return func() tea.Msg {
		return adviceMsg{id: a.ID, advice: svc.Advise(context.Background(), a, lang)}
	}
}

func (s *AssessScreen) helpInfo() help.Info {
	return help.Info{
		Model:         s.opts.Bundle.Name(),
		Features:      len(s.fields),
		Threshold:     s.opts.Service.Threshold(),
		AdviceEnabled: s.opts.Service.Advisor().Enabled(),
	}
}
