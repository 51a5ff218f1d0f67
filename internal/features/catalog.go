package features

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/abhisek/siaga/internal/i18n"
)

// Override adjusts a catalog entry from configuration. A nil Direction
// keeps the catalog's own.
type Override struct {
	Direction *Direction
	Help      string
}

// Catalog is the static feature lookup for one UI language.
type Catalog struct {
	lang  language.Tag
	specs map[string]FeatureSpec
	order []string
}

// New builds the seed catalog in the given language.
func New(lang language.Tag) *Catalog {
	specs := make([]FeatureSpec, 0, len(seedEntries))
	for _, e := range seedEntries {
		specs = append(specs, e.spec(lang))
	}
	c, err := NewFromSpecs(lang, specs)
	if err != nil {
		// The seed is covered by TestValidate_SeedCatalogPasses.
		panic(err)
	}
	return c
}

// NewFromSpecs builds a catalog from explicit specs after validating them.
func NewFromSpecs(lang language.Tag, specs []FeatureSpec) (*Catalog, error) {
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}
	c := &Catalog{
		lang:  lang,
		specs: make(map[string]FeatureSpec, len(specs)),
		order: make([]string, 0, len(specs)),
	}
	for _, s := range specs {
		c.specs[s.Name] = s
		c.order = append(c.order, s.Name)
	}
	return c, nil
}

// Language returns the catalog's UI language.
func (c *Catalog) Language() language.Tag {
	return c.lang
}

// Names returns the known feature names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns the explicit spec for name.
func (c *Catalog) Lookup(name string) (FeatureSpec, bool) {
	s, ok := c.specs[name]
	if !ok {
		return FeatureSpec{}, false
	}
	s.Options = cloneOptions(s.Options)
	return s, true
}

// Resolve returns the spec for name, or the generic Yes/No spec labelled
// from the raw name when the catalog does not know it.
func (c *Catalog) Resolve(name string) FeatureSpec {
	if s, ok := c.Lookup(name); ok {
		return s
	}
	return c.fallback(name)
}

// FieldsFor resolves one spec per name, preserving the order of names.
func (c *Catalog) FieldsFor(names []string) []FeatureSpec {
	out := make([]FeatureSpec, len(names))
	for i, n := range names {
		out[i] = c.Resolve(n)
	}
	return out
}

// WithOverrides returns a copy of the catalog with scale directions and
// help strings replaced. Overriding an unknown feature is an error.
func (c *Catalog) WithOverrides(overrides map[string]Override) (*Catalog, error) {
	specs := make([]FeatureSpec, 0, len(c.order))
	for _, name := range c.order {
		specs = append(specs, c.specs[name])
	}

	var errs []string
	for name, ov := range overrides {
		idx := indexOf(c.order, name)
		if idx < 0 {
			errs = append(errs, fmt.Sprintf("override for unknown feature %q", name))
			continue
		}
		s := specs[idx]
		if ov.Direction != nil {
			if s.Kind != KindScale {
				errs = append(errs, fmt.Sprintf("feature %q: direction only applies to scale features", name))
				continue
			}
			s.Direction = *ov.Direction
			s.Help = localize(scaleHelp[s.Direction], c.lang)
		}
		if ov.Help != "" {
			s.Help = ov.Help
		}
		specs[idx] = s
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("feature overrides:\n  %s", strings.Join(errs, "\n  "))
	}
	return NewFromSpecs(c.lang, specs)
}

func (c *Catalog) fallback(name string) FeatureSpec {
	opts := make([]Option, len(yesNoOptions))
	for i, o := range yesNoOptions {
		opts[i] = Option{Value: o.value, Label: localize(o.label, c.lang)}
	}
	return FeatureSpec{
		Name:     name,
		Kind:     KindBinary,
		Label:    strings.ReplaceAll(name, "_", " "),
		Section:  SectionOther,
		Min:      0,
		Max:      1,
		Default:  0,
		Options:  opts,
		Fallback: true,
	}
}

func (e entry) spec(lang language.Tag) FeatureSpec {
	s := FeatureSpec{
		Name:      e.name,
		Kind:      e.kind,
		Label:     localize(e.label, lang),
		Help:      localize(e.help, lang),
		Section:   e.section,
		Min:       e.min,
		Max:       e.max,
		Default:   e.def,
		Direction: e.direction,
	}

	switch e.kind {
	case KindScale:
		s.Min, s.Max = 1, 5
		if s.Help == "" {
			s.Help = localize(scaleHelp[e.direction], lang)
		}
	case KindBinary, KindCategorical:
		s.Options = make([]Option, len(e.options))
		for i, o := range e.options {
			s.Options[i] = Option{Value: o.value, Label: localize(o.label, lang)}
		}
		s.Min, s.Max = optionBounds(s.Options)
	}
	return s
}

func localize(t text, lang language.Tag) string {
	if i18n.IsIndonesian(lang) {
		return t.id
	}
	return t.en
}

func optionBounds(opts []Option) (lo, hi int) {
	for i, o := range opts {
		if i == 0 || o.Value < lo {
			lo = o.Value
		}
		if i == 0 || o.Value > hi {
			hi = o.Value
		}
	}
	return lo, hi
}

func cloneOptions(opts []Option) []Option {
	if opts == nil {
		return nil
	}
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
