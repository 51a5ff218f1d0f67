package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/siaga/internal/advisor"
	"github.com/abhisek/siaga/internal/assessment"
	"github.com/abhisek/siaga/internal/config"
	"github.com/abhisek/siaga/internal/features"
	"github.com/abhisek/siaga/internal/i18n"
	"github.com/abhisek/siaga/internal/model"
	"github.com/abhisek/siaga/internal/router"
	"github.com/abhisek/siaga/internal/screen"
	"github.com/abhisek/siaga/internal/screens/assess"
	"github.com/abhisek/siaga/internal/screens/waiting"
	"github.com/abhisek/siaga/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Config   config.Config
	Catalogs *features.Set

	// Advisor may be nil; suggestions are then static.
	Advisor *advisor.Service

	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	p      *i18n.Printer
	width  int
	height int
}

// newAppModel picks the first screen: the form when the artifact loads,
// the waiting screen otherwise.
func newAppModel(ctx context.Context, opts Options) (AppModel, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	p := i18n.New(i18n.Match(opts.Config.Locale))
	path := opts.Config.Model.Path

	ready := func(b *model.Bundle) (screen.Screen, error) {
		return newAssessScreen(ctx, opts, b)
	}

	var initial screen.Screen
	b, err := model.Load(path)
	if err != nil {
		opts.Logger.Warn("model artifact unavailable", zap.String("path", path), zap.Error(err))
		initial = waiting.New(waiting.Options{
			Path:    path,
			Printer: p,
			Load:    model.Load,
			Watch: func(ctx context.Context, path string) (<-chan struct{}, error) {
				return model.Watch(ctx, path, opts.Logger)
			},
			Ready:  ready,
			Logger: opts.Logger,
		}, err)
	} else if initial, err = ready(b); err != nil {
		return AppModel{}, err
	}

	return AppModel{router: router.New(initial), p: p}, nil
}

// newAssessScreen wires the prediction stack for a loaded bundle and keeps
// watching the artifact so the form can tell when it goes stale.
func newAssessScreen(ctx context.Context, opts Options, b *model.Bundle) (screen.Screen, error) {
	adapter, err := model.NewAdapter(b, opts.Config.Model.Threshold)
	if err != nil {
		return nil, err
	}
	predictor, err := model.NewCachedPredictor(adapter, opts.Config.Server.CacheSize)
	if err != nil {
		return nil, err
	}
	svc := assessment.NewService(predictor, opts.Catalogs, opts.Advisor, opts.Logger)

	changed, err := model.Watch(ctx, opts.Config.Model.Path, opts.Logger)
	if err != nil {
		opts.Logger.Warn("cannot watch model artifact", zap.Error(err))
	}

	opts.Logger.Info("form ready",
		zap.String("model", b.Name()),
		zap.Int("features", len(b.Features)),
		zap.Float64("threshold", adapter.Threshold()),
	)
	return assess.New(assess.Options{
		Service: svc,
		Bundle:  b,
		Lang:    opts.Config.Locale,
		Changed: changed,
		Logger:  opts.Logger,
	}), nil
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the frame around the active screen.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.p, m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if hp, ok := active.(screen.KeyHintProvider); ok {
			hints = hp.KeyHints()
		}
	}
	if hints == nil {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: m.p.T("Quit")}}
		if m.router.Depth() > 1 {
			hints = append([]layout.KeyHint{{Key: "Esc", Description: m.p.T("Back")}}, hints...)
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program. It returns when the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	m, err := newAppModel(ctx, opts)
	if err != nil {
		return fmt.Errorf("start form: %w", err)
	}
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
