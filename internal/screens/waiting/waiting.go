package waiting

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/siaga/internal/i18n"
	"github.com/abhisek/siaga/internal/model"
	"github.com/abhisek/siaga/internal/router"
	"github.com/abhisek/siaga/internal/screen"
	"github.com/abhisek/siaga/internal/ui/layout"
	"github.com/abhisek/siaga/internal/ui/theme"
)

// Options configures the waiting screen.
type Options struct {
	Path    string
	Printer *i18n.Printer
	Load    func(path string) (*model.Bundle, error)
	Watch   func(ctx context.Context, path string) (<-chan struct{}, error)

	// Ready builds the screen shown once a bundle has loaded. An error is
	// treated like an unusable artifact.
	Ready func(b *model.Bundle) (screen.Screen, error)

	Logger *zap.Logger
}

// artifactChangedMsg is sent when the watcher sees the model file change.
type artifactChangedMsg struct{}

// WaitingScreen blocks the form until a usable model artifact exists.
type WaitingScreen struct {
	opts     Options
	cause    error
	watchErr error
	attempts int
	loaded   bool

	cancel context.CancelFunc
	events <-chan struct{}
}

var _ screen.Screen = (*WaitingScreen)(nil)

// New creates the waiting screen. cause is the error from the first load
// attempt.
func New(opts Options, cause error) *WaitingScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &WaitingScreen{opts: opts, cause: cause}
}

func (w *WaitingScreen) Title() string {
	return w.opts.Printer.T("Dropout Early Warning")
}

func (w *WaitingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: w.opts.Printer.T("Retry")},
		{Key: "Ctrl+C", Description: w.opts.Printer.T("Quit")},
	}
}

func (w *WaitingScreen) Init() tea.Cmd {
	if w.opts.Watch == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	events, err := w.opts.Watch(ctx, w.opts.Path)
	if err != nil {
		cancel()
		w.watchErr = err
		w.opts.Logger.Warn("cannot watch model artifact", zap.String("path", w.opts.Path), zap.Error(err))
		return nil
	}
	w.cancel = cancel
	w.events = events
	return waitForChange(events)
}

func (w *WaitingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case artifactChangedMsg:
		if cmd := w.tryLoad(); cmd != nil {
			return w, cmd
		}
		return w, waitForChange(w.events)

	case tea.KeyPressMsg:
		if msg.String() == "r" || msg.String() == "R" {
			return w, w.tryLoad()
		}
	}
	return w, nil
}

// tryLoad attempts to load the artifact. On success it stops the watcher
// and returns the command that swaps in the ready screen.
func (w *WaitingScreen) tryLoad() tea.Cmd {
	if w.loaded {
		return nil
	}
	w.attempts++
	b, err := w.opts.Load(w.opts.Path)
	var next screen.Screen
	if err == nil {
		next, err = w.opts.Ready(b)
	}
	if err != nil {
		w.cause = err
		w.opts.Logger.Info("model artifact still unusable",
			zap.String("path", w.opts.Path),
			zap.Int("attempt", w.attempts),
			zap.Error(err),
		)
		return nil
	}

	w.loaded = true
	if w.cancel != nil {
		w.cancel()
	}
	w.opts.Logger.Info("model artifact loaded", zap.String("path", w.opts.Path), zap.String("model", b.Name()))
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// waitForChange blocks on the watcher and reports one change. It yields
// nil once the watcher stops.
func waitForChange(events <-chan struct{}) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return artifactChangedMsg{}
	}
}

func (w *WaitingScreen) View(width, height int) string {
	p := w.opts.Printer

	var lines []string
	lines = append(lines, theme.Title.Render(p.T("Waiting for model file...")), "")

	if w.cause == nil || errors.Is(w.cause, model.ErrArtifactMissing) {
		lines = append(lines, theme.Notice.Render(p.T("Model artifact not found at %s", w.opts.Path)))
	} else {
		lines = append(lines, theme.Notice.Render(p.T("Model artifact at %s could not be loaded", w.opts.Path)))
		detail := w.cause
		var ae *model.ArtifactError
		if errors.As(w.cause, &ae) && ae.Err != nil {
			detail = ae.Err
		}
		lines = append(lines, theme.Hint.Render(detail.Error()))
	}
	lines = append(lines, "")

	if w.watchErr != nil {
		lines = append(lines, theme.Body.Render(p.T("Press R to check again.")))
	} else {
		lines = append(lines, theme.Body.Render(p.T("The form opens as soon as a valid model file appears.")))
	}
	lines = append(lines, theme.Hint.Render(p.T("Run `siaga demo-model` to install the demo model.")))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
