package sitemap

import (
	"fmt"
	"slices"
	"strings"
)

// Kind says whether a feature is hosted on the primary site or delegates to a
// third-party tool.
type Kind string

const (
	KindInternal Kind = "internal"
	KindExternal Kind = "external"
)

// Kinds lists every valid kind in legend order.
var Kinds = []Kind{KindInternal, KindExternal}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindInternal || k == KindExternal
}

// Label returns the capitalized display form ("Internal", "External").
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown feature type %q (must be 'internal' or 'external')", s)
	}
	return k, nil
}

// Feature is a static descriptor of one site section or capability.
type Feature struct {
	ID          string `json:"id" toml:"id" yaml:"id"`
	Name        string `json:"name" toml:"name" yaml:"name"`
	Description string `json:"description" toml:"description" yaml:"description"`
	Details     string `json:"details" toml:"details" yaml:"details"`
	Kind        Kind   `json:"type" toml:"type" yaml:"type"`

	// RecommendedTool and Integrations only apply to external features.
	RecommendedTool string   `json:"recommended_tool,omitempty" toml:"recommended_tool,omitempty" yaml:"recommended_tool,omitempty"`
	Integrations    []string `json:"integrations,omitempty" toml:"integrations,omitempty" yaml:"integrations,omitempty"`
}

// IsExternal reports whether f delegates to a third-party tool.
func (f Feature) IsExternal() bool {
	return f.Kind == KindExternal
}

// IsZero reports whether f is the zero Feature.
func (f Feature) IsZero() bool {
	return f.ID == ""
}

// Clone returns a copy of f that shares no slices with it.
func (f Feature) Clone() Feature {
	f.Integrations = slices.Clone(f.Integrations)
	return f
}
