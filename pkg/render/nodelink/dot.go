package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/render"
	"github.com/matzehuels/featuremap/pkg/render/graph"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

// pointsPerInch converts layout pixels to Graphviz node sizes.
const pointsPerInch = 72

// Options configures DOT generation.
type Options struct {
	// Detailed adds the recommended tool of external features to their
	// label. When false, only the feature name is shown.
	Detailed bool

	// Palette overrides the node colors. The zero value uses
	// [graph.DefaultPalette].
	Palette *graph.Palette
}

// ToDOT converts a map to Graphviz DOT. Every node is pinned to its layout
// position, so the neato engine reproduces the hand-authored layout instead of
// computing its own. Graphviz puts the origin at the bottom left; y is
// flipped accordingly.
func ToDOT(m *sitemap.Map, opts Options) string {
	p := graph.DefaultPalette()
	if opts.Palette != nil {
		p = *opts.Palette
	}
	l := m.Geometry()
	size := strconv.FormatFloat(2*l.Radius/pointsPerInch, 'f', 3, 64)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", m.Title)
	buf.WriteString("  labelloc=t;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=%s, fontsize=10, fontname=\"sans-serif\", fontcolor=%q, penwidth=0];\n", size, p.Label)
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=2, arrowhead=none];\n", p.Edge)
	buf.WriteString("\n")

	for _, f := range m.Features {
		pos := l.Positions[f.ID]
		attrs := fmtAttrs(f, fmtLabel(f, opts.Detailed), p, f.ID == m.Root)
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", pos.X, l.Height-pos.Y))
		fmt.Fprintf(&buf, "  %q [%s];\n", f.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, ln := range l.Links {
		fmt.Fprintf(&buf, "  %q -> %q;\n", ln.From, ln.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(f sitemap.Feature, detailed bool) string {
	if !detailed || f.RecommendedTool == "" {
		return f.Name
	}
	return f.Name + "\n(" + f.RecommendedTool + ")"
}

func fmtAttrs(f sitemap.Feature, label string, p graph.Palette, root bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", p.Fill(f.Kind)),
		fmt.Sprintf("tooltip=%q", f.Description),
	}
	if root {
		attrs = append(attrs, fmt.Sprintf("color=%q", p.Root), "penwidth=3")
	}
	return attrs
}

// RenderSVG renders DOT to SVG in-process using Graphviz with the neato
// engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the
// origin and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT as PDF via [RenderSVG] and [render.ToPDF].
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT as PNG via [RenderSVG] and [render.ToPNG].
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
