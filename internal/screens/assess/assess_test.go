package assess

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/siaga/internal/advisor"
	"github.com/abhisek/siaga/internal/assessment"
	"github.com/abhisek/siaga/internal/features"
	"github.com/abhisek/siaga/internal/llm"
	"github.com/abhisek/siaga/internal/model"
	"github.com/abhisek/siaga/internal/router"
)

func newTestScreen(t *testing.T, lang string, provider llm.Provider, changed <-chan struct{}) *AssessScreen {
	t.Helper()
	bundle := model.DemoBundle()
	a, err := model.NewAdapter(bundle, 0)
	if err != nil {
		t.Fatal(err)
	}
	set, err := features.NewSet(nil)
	if err != nil {
		t.Fatal(err)
	}
	var adv *advisor.Service
	if provider != nil {
		adv = advisor.New(provider, advisor.DefaultConfig(), nil)
	}
	svc := assessment.NewService(a, set, adv, nil)
	return New(Options{Service: svc, Bundle: bundle, Lang: lang, Changed: changed})
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// focus moves the cursor onto the named field.
func focus(t *testing.T, s *AssessScreen, name string) {
	t.Helper()
	for i, f := range s.fields {
		if f.Name == name {
			s.cursor = i
			return
		}
	}
	t.Fatalf("field %s not on the form", name)
}

func value(s *AssessScreen, name string) int {
	v, _ := s.draft.Get(name)
	return v
}

func TestNew_GroupsFieldsBySection(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)

	if len(s.fields) != len(model.DemoBundle().Features) {
		t.Fatalf("expected one field per model feature, got %d", len(s.fields))
	}

	order := features.AllSections()
	last := 0
	for _, f := range s.fields {
		idx := slices.Index(order, f.Section)
		if idx < last {
			t.Fatalf("field %s (section %s) out of section order", f.Name, f.Section)
		}
		last = idx
	}
	if s.fields[0].Name != "Age" {
		t.Errorf("first field = %s, want Age", s.fields[0].Name)
	}
}

func TestNavigation(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)

	s.Update(specialKey(tea.KeyUp))
	if s.cursor != 0 {
		t.Fatalf("cursor should stop at the top, got %d", s.cursor)
	}
	s.Update(specialKey(tea.KeyDown))
	s.Update(keyPress('j'))
	if s.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", s.cursor)
	}
	for range len(s.fields) + 3 {
		s.Update(specialKey(tea.KeyTab))
	}
	if !s.onButton() {
		t.Fatal("cursor should stop on the submit button")
	}
}

func TestTypedValueIsClamped(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)
	focus(t, s, "Number_of_Failures")

	s.Update(keyPress('5'))
	if !s.editing {
		t.Fatal("typing a digit on a number field should start editing")
	}
	s.Update(specialKey(tea.KeyEnter))

	if got := value(s, "Number_of_Failures"); got != 4 {
		t.Fatalf("Number_of_Failures = %d, want 4", got)
	}
	if !strings.Contains(s.notice, "was clamped to 4") {
		t.Errorf("notice = %q", s.notice)
	}

	// A value inside the domain clears the notice.
	s.Update(keyPress('2'))
	s.Update(specialKey(tea.KeyEnter))
	if value(s, "Number_of_Failures") != 2 || s.notice != "" {
		t.Errorf("value = %d, notice = %q", value(s, "Number_of_Failures"), s.notice)
	}
}

func TestEditing_EscKeepsValue(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)
	focus(t, s, "Age")

	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyBackspace))
	s.Update(keyPress('9'))
	s.Update(specialKey(tea.KeyEscape))

	if s.editing {
		t.Fatal("esc should stop editing")
	}
	if got := value(s, "Age"); got != 17 {
		t.Errorf("Age = %d, want the default 17", got)
	}
}

func TestOptionFields(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)
	focus(t, s, "Travel_Time")

	s.Update(specialKey(tea.KeyRight))
	if got := value(s, "Travel_Time"); got != 3 {
		t.Fatalf("Travel_Time = %d, want 3", got)
	}
	s.Update(keyPress('1'))
	if got := value(s, "Travel_Time"); got != 1 {
		t.Fatalf("Travel_Time = %d, want 1", got)
	}
	s.Update(keyPress('9'))
	if got := value(s, "Travel_Time"); got != 1 {
		t.Fatalf("unknown code should be ignored, got %d", got)
	}
	if s.editing {
		t.Fatal("option fields are never typed into")
	}

	s.Update(specialKey(tea.KeyLeft))
	s.Update(specialKey(tea.KeyLeft))
	if got := value(s, "Travel_Time"); got != 1 {
		t.Fatalf("stepping should stop at the first option, got %d", got)
	}
}

func TestView_PlaceholderBeforeSubmit(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)
	view := s.View(120, 80)

	for _, want := range []string{"Student age", "Fill in the student profile", "Analyse Risk", "demo random forest"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Risk probability") {
		t.Error("no result should be shown before submitting")
	}
}

func TestSubmit_AtRisk(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)
	s.draft.Set("Number_of_Failures", 3)
	s.draft.Set("Age", 20)
	s.draft.Set("Weekend_Alcohol_Consumption", 5)

	if _, cmd := s.Update(ctrlKey('s')); cmd != nil {
		t.Fatal("no advice command without an LLM provider")
	}
	if s.result == nil || s.result.Result.Label != 1 {
		t.Fatalf("expected an at-risk result, got %+v", s.result)
	}

	view := s.View(120, 80)
	for _, want := range []string{"WARNING: AT RISK OF DROPOUT", "Risk probability: 73.3%", "Suggested Actions", "Schedule a counselling"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSubmit_ButtonAndSafeResult(t *testing.T) {
	s := newTestScreen(t, "id", nil, nil)
	s.cursor = len(s.fields)

	s.Update(specialKey(tea.KeyEnter))
	if s.result == nil || s.result.Result.AtRisk() {
		t.Fatalf("defaults should be safe, got %+v", s.result)
	}

	view := s.View(90, 80)
	for _, want := range []string{"STATUS: AMAN", "Tetap pantau kehadiran"} {
		if !strings.Contains(view, want) {
			t.Errorf("narrow Indonesian view missing %q", want)
		}
	}
}

func TestSubmit_TailoredAdvice(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary":"Keep in touch with the family.","actions":["Call the parents this week"]}`),
	})
	s := newTestScreen(t, "en", mock, nil)

	_, cmd := s.Update(ctrlKey('s'))
	if cmd == nil {
		t.Fatal("expected an advice command")
	}
	if !s.advising || s.advice.Source != advisor.SourceStatic {
		t.Fatal("static advice should show while tailored advice loads")
	}
	if !strings.Contains(s.View(120, 80), "Generating tailored suggestions...") {
		t.Error("view should show the loading line")
	}

	s.Update(cmd())
	if s.advising || s.advice.Source != advisor.SourceLLM {
		t.Fatalf("advice = %+v", s.advice)
	}
	if !strings.Contains(s.View(120, 80), "Call the parents this week") {
		t.Error("view should list the tailored action")
	}
}

func TestStaleAdviceIgnored(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)
	s.Update(ctrlKey('s'))
	first := s.advice

	s.Update(adviceMsg{id: "another-assessment", advice: advisor.Advice{Source: advisor.SourceLLM, Summary: "stale"}})
	if s.advice.Summary != first.Summary {
		t.Errorf("advice for another assessment replaced the current one: %+v", s.advice)
	}
}

func TestReset(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)
	s.draft.Set("Age", 21)
	s.Update(ctrlKey('s'))

	s.Update(ctrlKey('r'))
	if s.result != nil || value(s, "Age") != 17 || s.cursor != 0 {
		t.Errorf("reset left result=%v age=%d cursor=%d", s.result, value(s, "Age"), s.cursor)
	}
}

func TestHelpKeyPushesScreen(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)
	_, cmd := s.Update(keyPress('?'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != "Help" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}

func TestArtifactChangedBanner(t *testing.T) {
	changed := make(chan struct{}, 1)
	s := newTestScreen(t, "en", nil, changed)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init should wait for artifact changes")
	}
	changed <- struct{}{}
	_, next := s.Update(cmd())
	if next == nil {
		t.Error("the screen should keep watching")
	}
	if !strings.Contains(s.View(120, 80), "Model file changed on disk.") {
		t.Error("view should show the changed banner")
	}
}

func TestKeyHints(t *testing.T) {
	s := newTestScreen(t, "en", nil, nil)
	if got := s.KeyHints()[0].Description; got != "Navigate" {
		t.Errorf("first hint = %q", got)
	}
	focus(t, s, "Age")
	s.Update(specialKey(tea.KeyEnter))
	if got := s.KeyHints()[0].Description; got != "Type a number" {
		t.Errorf("editing hint = %q", got)
	}
}
