package form

import (
	"github.com/abhisek/siaga/internal/features"
)

// Resolver drives a form from a model's declared feature list.
type Resolver struct {
	catalog *features.Catalog
	names   []string
	fields  []features.FeatureSpec
}

// NewResolver resolves one field per declared feature name.
func NewResolver(catalog *features.Catalog, names []string) *Resolver {
	n := make([]string, len(names))
	copy(n, names)
	return &Resolver{
		catalog: catalog,
		names:   n,
		fields:  catalog.FieldsFor(n),
	}
}

// Catalog returns the catalog the fields were resolved from.
func (r *Resolver) Catalog() *features.Catalog {
	return r.catalog
}

// Names returns the declared feature names in model order.
func (r *Resolver) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Fields returns the resolved field specs in model order.
func (r *Resolver) Fields() []features.FeatureSpec {
	out := make([]features.FeatureSpec, len(r.fields))
	copy(out, r.fields)
	return out
}

// NewDraft starts a fresh capture for one submission.
func (r *Resolver) NewDraft() *Draft {
	return NewDraft(r.Fields())
}

// Assemble orders raw to the declared feature list.
func (r *Resolver) Assemble(raw map[string]int) (InputRecord, error) {
	return Assemble(raw, r.names, r.catalog)
}
