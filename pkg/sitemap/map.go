package sitemap

import (
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/featuremap/pkg/errors"
)

// Map is a complete feature map: the registry, its layout and display
// metadata.
type Map struct {
	Title    string    `json:"title" toml:"title" yaml:"title"`
	Subtitle string    `json:"subtitle,omitempty" toml:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Root     string    `json:"root,omitempty" toml:"root,omitempty" yaml:"root,omitempty"`
	Features []Feature `json:"features" toml:"features" yaml:"features"`
	Layout   Layout    `json:"layout" toml:"layout" yaml:"layout"`
}

// Feature returns the feature with the given id.
func (m *Map) Feature(id string) (Feature, bool) {
	i := m.Index(id)
	if i < 0 {
		return Feature{}, false
	}
	return m.Features[i].Clone(), true
}

// Index returns the registry position of id, or -1.
func (m *Map) Index(id string) int {
	return slices.IndexFunc(m.Features, func(f Feature) bool { return f.ID == id })
}

// Position returns the position of the feature with the given id.
func (m *Map) Position(id string) (Position, bool) {
	p, ok := m.Layout.Positions[id]
	return p, ok
}

// Geometry returns the layout with defaults applied.
func (m *Map) Geometry() Layout {
	return m.Layout.WithDefaults()
}

// Filter returns the features of kind k in registry order.
func (m *Map) Filter(k Kind) []Feature {
	var out []Feature
	for _, f := range m.Features {
		if f.Kind == k {
			out = append(out, f.Clone())
		}
	}
	return out
}

// KindCounts counts features per kind.
func (m *Map) KindCounts() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, f := range m.Features {
		counts[f.Kind]++
	}
	return counts
}

// Validate checks the map for static-data mismatches. Every problem is
// collected; the returned error has code [errors.ErrCodeInvalidMap] and wraps
// an *errors.ValidationErrors listing them.
func (m *Map) Validate() error {
	var v errors.ValidationErrors

	if err := errors.ValidateText("title", m.Title); err != nil {
		v.Addf("%s", errors.UserMessage(err))
	}
	if len(m.Features) == 0 {
		v.Addf("map has no features")
	}

	l := m.Geometry()
	switch {
	case !finite(l.Width, l.Height):
		v.Addf("viewport must be finite, got %gx%g", l.Width, l.Height)
	case l.Width < 0 || l.Height < 0:
		v.Addf("viewport must be positive, got %gx%g", l.Width, l.Height)
	}
	switch {
	case !finite(l.Radius):
		v.Addf("node radius must be finite, got %g", l.Radius)
	case l.Radius < 0:
		v.Addf("node radius must be positive, got %g", l.Radius)
	}

	seen := make(map[string]bool, len(m.Features))
	for i, f := range m.Features {
		validateFeature(&v, i, f)
		if f.ID == "" {
			continue
		}
		if seen[f.ID] {
			v.Addf("duplicate feature id %q", f.ID)
		}
		seen[f.ID] = true
		if _, ok := l.Positions[f.ID]; !ok {
			v.Addf("feature %q has no position", f.ID)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(l.Positions)) {
		p := l.Positions[id]
		if !seen[id] {
			v.Addf("position for unknown feature %q", id)
		}
		if !finite(p.X, p.Y) {
			v.Addf("position of %q (%g,%g) is not a finite point", id, p.X, p.Y)
		} else if p.X < 0 || p.Y < 0 || p.X > l.Width || p.Y > l.Height {
			v.Addf("position of %q (%g,%g) is outside the %gx%g viewport", id, p.X, p.Y, l.Width, l.Height)
		}
	}

	type linkKey struct{ from, to string }
	links := make(map[linkKey]bool, len(l.Links))
	for _, ln := range l.Links {
		for _, end := range []string{ln.From, ln.To} {
			if !seen[end] {
				v.Addf("link %s -> %s: unknown feature %q", ln.From, ln.To, end)
			}
		}
		if ln.From == ln.To {
			v.Addf("link %s -> %s: a feature cannot link to itself", ln.From, ln.To)
		}
		k := linkKey{ln.From, ln.To}
		if links[k] {
			v.Addf("duplicate link %s -> %s", ln.From, ln.To)
		}
		links[k] = true
	}

	if m.Root != "" && !seen[m.Root] {
		v.Addf("root %q is not a feature", m.Root)
	}

	return v.Err(errors.ErrCodeInvalidMap, "invalid map %q", m.Title)
}

// finite reports whether every value is neither NaN nor infinite.
func finite(vals ...float64) bool {
	for _, f := range vals {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func validateFeature(v *errors.ValidationErrors, i int, f Feature) {
	if err := errors.ValidateFeatureID(f.ID); err != nil {
		v.Addf("feature #%d: %s", i, errors.UserMessage(err))
	}
	if err := errors.ValidateText("name", f.Name); err != nil {
		v.Addf("feature %q: %s", f.ID, errors.UserMessage(err))
	}
	if !f.Kind.Valid() {
		v.Addf("feature %q: unknown type %q", f.ID, f.Kind)
	}
	if f.Kind == KindInternal && (f.RecommendedTool != "" || len(f.Integrations) > 0) {
		v.Addf("feature %q: only external features have a recommended tool or integrations", f.ID)
	}
}
