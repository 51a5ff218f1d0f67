package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the UI languages in preference order. The first entry is
// used when nothing else matches.
var Supported = []language.Tag{
	language.Indonesian,
	language.English,
}

var matcher = language.NewMatcher(Supported)

// Match picks the supported language closest to pref, which may be a bare
// tag ("en"), a regional tag ("id-ID") or an Accept-Language list.
func Match(pref string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// IsIndonesian reports whether tag belongs to the Indonesian base language.
func IsIndonesian(tag language.Tag) bool {
	base, _ := tag.Base()
	return base.String() == "id"
}

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range indonesian {
		if err := b.SetString(language.Indonesian, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}

// Printer renders UI strings for one language. Message keys are the English
// text, so an untranslated key prints as-is.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New creates a Printer for tag.
func New(tag language.Tag) *Printer {
	return &Printer{
		tag: tag,
		p:   message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// Tag returns the printer's language.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// T translates key and formats it with args.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
