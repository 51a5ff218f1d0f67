package features

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestValidate_SeedCatalogPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed catalog validation failed: %v", err)
	}
}

func TestFieldsFor_OnePerNameInOrder(t *testing.T) {
	c := New(language.English)
	names := []string{"Number_of_Failures", "Mystery_Flag", "Age", "Address_U", "Health_Status"}

	fields := c.FieldsFor(names)
	if len(fields) != len(names) {
		t.Fatalf("expected %d fields, got %d", len(names), len(fields))
	}
	for i, f := range fields {
		if f.Name != names[i] {
			t.Errorf("field %d: got %q, want %q", i, f.Name, names[i])
		}
	}
}

func TestFieldsFor_EmptyList(t *testing.T) {
	c := New(language.English)
	if got := c.FieldsFor(nil); len(got) != 0 {
		t.Fatalf("expected no fields, got %d", len(got))
	}
}

func TestResolve_UnknownFallsBackToBinary(t *testing.T) {
	c := New(language.Indonesian)
	s := c.Resolve("Has_Part_Time_Job_yes")

	if !s.Fallback {
		t.Error("expected fallback spec")
	}
	if s.Kind != KindBinary {
		t.Errorf("kind = %v, want binary", s.Kind)
	}
	if s.Label != "Has Part Time Job yes" {
		t.Errorf("label = %q, want underscores replaced", s.Label)
	}
	if s.Describe(1) != "Ya" || s.Describe(0) != "Tidak" {
		t.Errorf("unexpected option labels: %q / %q", s.Describe(1), s.Describe(0))
	}
	if s.Default != 0 {
		t.Errorf("default = %d, want 0", s.Default)
	}
}

func TestResolve_KnownFeatures(t *testing.T) {
	c := New(language.English)

	tests := []struct {
		name     string
		kind     Kind
		min, max int
		def      int
	}{
		{"Age", KindBoundedInt, 15, 22, 17},
		{"Study_Time", KindBoundedInt, 1, 4, 2},
		{"Number_of_Failures", KindBoundedInt, 0, 4, 0},
		{"Mother_Education", KindCategorical, 0, 4, 0},
		{"Father_Education", KindCategorical, 0, 4, 0},
		{"Travel_Time", KindCategorical, 1, 4, 2},
		{"Address_U", KindBinary, 0, 1, 1},
		{"Going_Out", KindScale, 1, 5, 3},
		{"Wants_Higher_Education_yes", KindBinary, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := c.Lookup(tt.name)
			if !ok {
				t.Fatalf("%s not in catalog", tt.name)
			}
			if s.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", s.Kind, tt.kind)
			}
			if s.Min != tt.min || s.Max != tt.max {
				t.Errorf("range = %d-%d, want %d-%d", s.Min, s.Max, tt.min, tt.max)
			}
			if s.Default != tt.def {
				t.Errorf("default = %d, want %d", s.Default, tt.def)
			}
		})
	}
}

func TestEducationLabelOrdering(t *testing.T) {
	c := New(language.English)
	s, _ := c.Lookup("Mother_Education")
	want := []string{"None", "Primary school", "Lower secondary", "Upper secondary", "Higher education"}
	for v, label := range want {
		if got := s.Describe(v); got != label {
			t.Errorf("code %d: got %q, want %q", v, got, label)
		}
	}
}

func TestClampedFieldsDocumentUpperBound(t *testing.T) {
	c := New(language.English)
	for _, name := range []string{"Study_Time", "Number_of_Failures"} {
		s, _ := c.Lookup(name)
		if !strings.Contains(s.Help, "4") {
			t.Errorf("%s help should explain the 4+ cap, got %q", name, s.Help)
		}
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	c := New(language.English)
	s, _ := c.Lookup("Travel_Time")
	s.Options[0].Label = "changed"

	again, _ := c.Lookup("Travel_Time")
	if again.Options[0].Label == "changed" {
		t.Fatal("Lookup leaked the catalog's option slice")
	}
}

func dir(d Direction) *Direction { return &d }

func TestWithOverrides(t *testing.T) {
	c := New(language.English)

	got, err := c.WithOverrides(map[string]Override{
		"Going_Out":     {Direction: dir(DirectionHigherIsWorse)},
		"Health_Status": {Direction: dir(DirectionUnspecified)},
		"Study_Time":    {Help: "Weekly study hours, capped at 4"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g, _ := got.Lookup("Going_Out")
	if g.Direction != DirectionHigherIsWorse {
		t.Errorf("direction = %v, want higher_is_worse", g.Direction)
	}
	if g.Help != "1 = very good, 5 = very poor" {
		t.Errorf("help = %q", g.Help)
	}
	h, _ := got.Lookup("Health_Status")
	if h.Direction != DirectionUnspecified || h.Help != "1 = very low, 5 = very high" {
		t.Errorf("Health_Status = %v %q, want unspecified", h.Direction, h.Help)
	}
	st, _ := got.Lookup("Study_Time")
	if st.Help != "Weekly study hours, capped at 4" {
		t.Errorf("help = %q", st.Help)
	}

	// Original catalog is untouched.
	orig, _ := c.Lookup("Going_Out")
	if orig.Direction != DirectionUnspecified {
		t.Errorf("original direction changed to %v", orig.Direction)
	}
}

func TestWithOverrides_Errors(t *testing.T) {
	c := New(language.English)

	tests := []struct {
		name string
		ov   map[string]Override
		want string
	}{
		{"unknown feature", map[string]Override{"Nope": {Help: "x"}}, "unknown feature"},
		{"direction on non-scale", map[string]Override{"Age": {Direction: dir(DirectionHigherIsBetter)}}, "only applies to scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.WithOverrides(tt.ov)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateSpecs_DetectsProblems(t *testing.T) {
	tests := []struct {
		name  string
		specs []FeatureSpec
		want  string
	}{
		{
			"duplicate",
			[]FeatureSpec{
				{Name: "A", Kind: KindBoundedInt, Label: "a", Min: 0, Max: 1},
				{Name: "A", Kind: KindBoundedInt, Label: "a", Min: 0, Max: 1},
			},
			"duplicate",
		},
		{
			"default out of range",
			[]FeatureSpec{{Name: "A", Kind: KindBoundedInt, Label: "a", Min: 1, Max: 3, Default: 9}},
			"default 9",
		},
		{
			"binary without both codes",
			[]FeatureSpec{{Name: "B", Kind: KindBinary, Label: "b", Max: 1, Options: []Option{{Value: 1, Label: "Yes"}}}},
			"exactly 0 and 1",
		},
		{
			"scale range",
			[]FeatureSpec{{Name: "S", Kind: KindScale, Label: "s", Min: 0, Max: 10}},
			"span 1-5",
		},
		{
			"empty label",
			[]FeatureSpec{{Name: "E", Kind: KindBoundedInt, Min: 0, Max: 1}},
			"empty label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSpecs(tt.specs)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestSet_ForMatchesLanguage(t *testing.T) {
	s, err := NewSet(nil)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}

	en, _ := s.For("en-US").Lookup("Age")
	if en.Label != "Student age" {
		t.Errorf("english label = %q", en.Label)
	}
	id, _ := s.For("id").Lookup("Age")
	if id.Label != "Umur Siswa" {
		t.Errorf("indonesian label = %q", id.Label)
	}
	def, _ := s.For("").Lookup("Age")
	if def.Label != "Umur Siswa" {
		t.Errorf("default label = %q, want indonesian", def.Label)
	}
}
