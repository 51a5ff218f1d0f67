package assess

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/siaga/internal/advisor"
)

// adviceMsg carries tailored advice for the assessment with the given ID.
type adviceMsg struct {
	id     string
	advice advisor.Advice
}

// artifactChangedMsg is sent when the model file changes after loading.
type artifactChangedMsg struct{}

// waitForChange reports the next artifact change. It yields nil once the
// watcher stops.
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
