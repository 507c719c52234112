package sitemap

import "math"

// Default viewport and node geometry, matching the original hand-drawn map.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultRadius = 40
)

// Position is the center of a feature's node in viewport pixels.
type Position struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// Distance returns the euclidean distance between p and q.
func (p Position) Distance(q Position) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Link is a hand-authored connecting line between two features.
type Link struct {
	From string `json:"from" toml:"from" yaml:"from"`
	To   string `json:"to" toml:"to" yaml:"to"`
}

// Layout places features on the viewport.
// Positions are keyed by feature id, so the layout is independent of the
// order of the feature registry.
type Layout struct {
	Width     float64             `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height    float64             `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Radius    float64             `json:"radius,omitempty" toml:"radius,omitempty" yaml:"radius,omitempty"`
	Positions map[string]Position `json:"positions" toml:"positions" yaml:"positions"`
	Links     []Link              `json:"links" toml:"links" yaml:"links"`
}

// WithDefaults returns l with zero geometry replaced by the defaults.
func (l Layout) WithDefaults() Layout {
	if l.Width == 0 {
		l.Width = DefaultWidth
	}
	if l.Height == 0 {
		l.Height = DefaultHeight
	}
	if l.Radius == 0 {
		l.Radius = DefaultRadius
	}
	return l
}
