package features

import (
	"golang.org/x/text/language"

	"github.com/abhisek/siaga/internal/i18n"
)

// Set holds one catalog per supported UI language, all carrying the same
// overrides.
type Set struct {
	catalogs map[language.Tag]*Catalog
}

// NewSet builds catalogs for every supported language and applies overrides.
func NewSet(overrides map[string]Override) (*Set, error) {
	s := &Set{catalogs: make(map[language.Tag]*Catalog, len(i18n.Supported))}
	for _, tag := range i18n.Supported {
		c, err := New(tag).WithOverrides(overrides)
		if err != nil {
			return nil, err
		}
		s.catalogs[tag] = c
	}
	return s, nil
}

// For returns the catalog matching pref (a tag or Accept-Language value).
func (s *Set) For(pref string) *Catalog {
	return s.catalogs[i18n.Match(pref)]
}
