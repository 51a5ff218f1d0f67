package help

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/abhisek/siaga/internal/i18n"
)

func TestHelpView(t *testing.T) {
	h := New(i18n.New(language.English), Info{Model: "demo random forest", Features: 17, Threshold: 0.5})
	view := h.View(100, 40)
	for _, want := range []string{"Ctrl+S", "Reset the form", "Model: demo random forest (17 features, threshold 0.5)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "language model") {
		t.Error("advice line should only show when an LLM is configured")
	}
}

func TestHelpIndonesian(t *testing.T) {
	h := New(i18n.New(language.Indonesian), Info{Model: "m", Features: 3, Threshold: 0.4, AdviceEnabled: true})
	if got := h.Title(); got != "Bantuan" {
		t.Errorf("Title() = %q, want Bantuan", got)
	}
	view := h.View(100, 40)
	if !strings.Contains(view, "Model: m (3 fitur, ambang 0.4)") {
		t.Errorf("view missing localized model line:\n%s", view)
	}
	if !strings.Contains(view, "model bahasa") {
		t.Error("advice line missing")
	}
}
