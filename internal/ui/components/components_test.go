package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestNumberInput_DigitsOnly(t *testing.T) {
	n := NewNumberInput(1, 2)
	for _, r := range "a7x" {
		n, _ = n.Update(keyPress(r))
	}
	if n.Value() != "17" {
		t.Fatalf("value = %q, want 17", n.Value())
	}
	v, ok := n.Number()
	if !ok || v != 17 {
		t.Fatalf("Number() = %d, %v", v, ok)
	}
}

func TestNumberInput_CharLimit(t *testing.T) {
	n := NewNumberInput(4, 1)
	n, _ = n.Update(keyPress('9'))
	if n.Value() != "4" {
		t.Fatalf("input should stop at its char limit, got %q", n.Value())
	}
}

func TestNumberInput_EmptyIsNotANumber(t *testing.T) {
	n := NewNumberInput(0, 2)
	n.Model.SetValue("")
	if _, ok := n.Number(); ok {
		t.Fatal("empty input should not parse")
	}
}

func TestDigitsFor(t *testing.T) {
	tests := []struct {
		lo, hi, want int
	}{
		{0, 4, 1},
		{15, 22, 2},
		{-5, 5, 2},
	}
	for _, tt := range tests {
		if got := DigitsFor(tt.lo, tt.hi); got != tt.want {
			t.Errorf("DigitsFor(%d, %d) = %d, want %d", tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRiskBar(t *testing.T) {
	view := NewRiskBar(0.73, 0.5, 40).View()
	if !strings.HasSuffix(strings.TrimSpace(stripANSI(view)), "73.0%") {
		t.Errorf("bar should end with the percentage, got %q", stripANSI(view))
	}
	if w := lipgloss.Width(view); w != 40 {
		t.Errorf("bar width = %d, want 40", w)
	}
}

func TestSelector(t *testing.T) {
	s := Selector{Labels: []string{"No", "Yes"}, Current: 1}
	if got := stripANSI(s.View(40)); got != "Yes" {
		t.Errorf("unfocused selector = %q, want only the current label", got)
	}

	s.Focused = true
	if got := stripANSI(s.View(40)); !strings.Contains(got, "No") || !strings.Contains(got, "Yes") {
		t.Errorf("focused selector should list all labels, got %q", got)
	}

	long := Selector{Labels: []string{"< 15 minutes", "15 - 30 minutes", "30 - 60 minutes", "> 1 hour"}, Current: 0, Focused: true}
	got := stripANSI(long.View(20))
	if !strings.Contains(got, "< 15 minutes") || !strings.Contains(got, "▸") || strings.Contains(got, "> 1 hour") {
		t.Errorf("narrow selector should show the current label with arrows, got %q", got)
	}
}

func TestButton(t *testing.T) {
	if got := stripANSI(NewButton("Submit", true).View()); !strings.Contains(got, "▸ Submit") {
		t.Errorf("active button = %q", got)
	}
	if got := stripANSI(NewButton("Submit", false).View()); strings.Contains(got, "▸") {
		t.Errorf("inactive button should have no marker, got %q", got)
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
