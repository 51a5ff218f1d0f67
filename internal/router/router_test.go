package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/siaga/internal/screen"
)

// fakeScreen records what the router did to it.
type fakeScreen struct {
	name    string
	inits   int
	updates []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates = append(s.updates, msg)
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.name }
func (s *fakeScreen) Title() string        { return s.name }

type pingMsg struct{}

func TestNavigation(t *testing.T) {
	waiting := &fakeScreen{name: "waiting"}
	assess := &fakeScreen{name: "assess"}
	help := &fakeScreen{name: "help"}

	r := New(waiting)

	r.Update(ReplaceScreenMsg{Screen: assess})
	if r.Depth() != 1 || r.Active() != assess {
		t.Fatalf("replace: depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if assess.inits != 1 {
		t.Errorf("replace should run Init once, ran %d", assess.inits)
	}

	r.Update(PushScreenMsg{Screen: help})
	if r.Depth() != 2 || r.Active() != help {
		t.Fatalf("push: depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if help.inits != 1 {
		t.Errorf("push should run Init once, ran %d", help.inits)
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active() != assess {
		t.Fatalf("pop: depth %d, active %q", r.Depth(), r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("pop at bottom should be a no-op, depth %d", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&fakeScreen{name: "first"})
	r.Push(&fakeScreen{name: "second"})
	r.Replace(&fakeScreen{name: "third"})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if got := r.View(80, 24); got != "third" {
		t.Errorf("expected 'third' to render, got %q", got)
	}
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	bottom := &fakeScreen{name: "bottom"}
	top := &fakeScreen{name: "top"}
	r := New(bottom)
	r.Push(top)

	r.Update(pingMsg{})

	if len(top.updates) != 1 {
		t.Errorf("active screen should get the message, got %d", len(top.updates))
	}
	if len(bottom.updates) != 0 {
		t.Errorf("covered screen should not get messages, got %d", len(bottom.updates))
	}
}

func TestEmptyRouter(t *testing.T) {
	r := &Router{}
	if r.Active() != nil || r.View(80, 24) != "" || r.Update(pingMsg{}) != nil {
		t.Error("empty router should be inert")
	}
	r.Replace(&fakeScreen{name: "only"})
	if r.Depth() != 1 {
		t.Errorf("replace on empty stack should push, depth %d", r.Depth())
	}
}
