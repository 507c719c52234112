package graph

import (
	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

// Palette holds the colors of a rendered map.
type Palette struct {
	Internal string // fill of internal features
	External string // fill of external features
	Root     string // outline of the root feature
	Edge     string // connecting lines
	Label    string // node label text
}

// DefaultPalette returns the blue/red palette of the original map.
func DefaultPalette() Palette {
	return Palette{
		Internal: "#3498db",
		External: "#e74c3c",
		Root:     "#2c3e50",
		Edge:     "#3498db",
		Label:    "white",
	}
}

// namedColors are the color names a palette accepts besides hex values.
var namedColors = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
}

// Hex returns c as a hex color, resolving the names a palette accepts.
// Surfaces that only understand hex, such as terminals, style with it.
func Hex(c string) string {
	if h, ok := namedColors[c]; ok {
		return h
	}
	return c
}

// Fill returns the node fill for kind k.
func (p Palette) Fill(k sitemap.Kind) string {
	if k == sitemap.KindExternal {
		return p.External
	}
	return p.Internal
}

// Validate checks that every palette entry is a hex color. Label may also be
// "white" or "black".
func (p Palette) Validate() error {
	for _, c := range []string{p.Internal, p.External, p.Root, p.Edge} {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	if _, ok := namedColors[p.Label]; ok {
		return nil
	}
	return errors.ValidateColor(p.Label)
}

const (
	rootStrokeWidth = 3
	edgeStrokeWidth = 2
)

// Node is one drawn feature.
type Node struct {
	Feature     sitemap.Feature
	X, Y, R     float64
	Fill        string
	Stroke      string // empty for no outline
	StrokeWidth float64
	Label       string
	Annotation  string // "(Tool)" under the label of external features
}

// Contains reports whether (x, y) lies inside the node's circle.
func (n Node) Contains(x, y float64) bool {
	return sitemap.Position{X: n.X, Y: n.Y}.Distance(sitemap.Position{X: x, Y: y}) <= n.R
}

// Segment is one drawn link.
type Segment struct {
	FromID, ToID   string
	X1, Y1, X2, Y2 float64
}

// Scene is everything a surface needs to draw and hit-test a map.
type Scene struct {
	Map      *sitemap.Map
	Width    float64
	Height   float64
	Palette  Palette
	Nodes    []Node
	Segments []Segment
}

// Node returns the node of the feature with the given id.
func (s *Scene) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.Feature.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// HitTest returns the feature whose node contains (x, y). Nodes drawn later
// sit on top, so they win when circles overlap.
func (s *Scene) HitTest(x, y float64) (sitemap.Feature, bool) {
	for i := len(s.Nodes) - 1; i >= 0; i-- {
		if s.Nodes[i].Contains(x, y) {
			return s.Nodes[i].Feature.Clone(), true
		}
	}
	return sitemap.Feature{}, false
}

// Dispatch delivers a click at (x, y) to onClick when it hits a node and
// reports whether it did.
func (s *Scene) Dispatch(x, y float64, onClick func(sitemap.Feature)) bool {
	f, ok := s.HitTest(x, y)
	if ok && onClick != nil {
		onClick(f)
	}
	return ok
}

// Option configures [Build].
type Option func(*buildConfig)

type buildConfig struct {
	palette Palette
}

// WithPalette overrides the default colors.
func WithPalette(p Palette) Option {
	return func(c *buildConfig) { c.palette = p }
}

// Build lays out m. The map is validated first; a map that does not validate
// cannot be drawn.
func Build(m *sitemap.Map, opts ...Option) (*Scene, error) {
	cfg := buildConfig{palette: DefaultPalette()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.palette.Validate(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	l := m.Geometry()
	s := &Scene{
		Map:      m,
		Width:    l.Width,
		Height:   l.Height,
		Palette:  cfg.palette,
		Nodes:    make([]Node, 0, len(m.Features)),
		Segments: make([]Segment, 0, len(l.Links)),
	}

	for _, f := range m.Features {
		p := l.Positions[f.ID]
		n := Node{
			Feature: f.Clone(),
			X:       p.X, Y: p.Y, R: l.Radius,
			Fill:  cfg.palette.Fill(f.Kind),
			Label: f.Name,
		}
		if f.ID == m.Root {
			n.Stroke = cfg.palette.Root
			n.StrokeWidth = rootStrokeWidth
		}
		if f.IsExternal() && f.RecommendedTool != "" {
			n.Annotation = "(" + f.RecommendedTool + ")"
		}
		s.Nodes = append(s.Nodes, n)
	}

	for _, ln := range l.Links {
		s.Segments = append(s.Segments, segment(ln, l.Positions[ln.From], l.Positions[ln.To], l.Radius))
	}
	return s, nil
}

// segment anchors a link on the facing edges of its two circles: bottom to
// top when the target sits lower, top to bottom when it sits higher, and side
// to side within a row.
func segment(ln sitemap.Link, from, to sitemap.Position, r float64) Segment {
	s := Segment{FromID: ln.From, ToID: ln.To, X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y}
	switch {
	case to.Y > from.Y:
		s.Y1 += r
		s.Y2 -= r
	case to.Y < from.Y:
		s.Y1 -= r
		s.Y2 += r
	case to.X > from.X:
		s.X1 += r
		s.X2 -= r
	default:
		s.X1 -= r
		s.X2 += r
	}
	return s
}
