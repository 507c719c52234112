package graph

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/google/uuid"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/panel"
)

// PanelSide is the viewport edge the detail panel is docked to.
type PanelSide string

const (
	PanelRight PanelSide = "right"
	PanelLeft  PanelSide = "left"
)

// ParsePanelSide parses "left" or "right"; empty means right.
func ParsePanelSide(s string) (PanelSide, error) {
	switch PanelSide(strings.ToLower(s)) {
	case "", PanelRight:
		return PanelRight, nil
	case PanelLeft:
		return PanelLeft, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid panel side: %s (must be 'left' or 'right')", s)
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	panel       panel.Options
	side        PanelSide
	docID       string
}

// WithInteractive embeds the detail panels, help overlay, info button and
// click handling.
func WithInteractive() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithIntegrations controls whether detail panels list integration
// possibilities. The default is true.
func WithIntegrations(show bool) SVGOption {
	return func(r *svgRenderer) { r.panel.ShowIntegrations = show }
}

// WithPanelSide docks the detail panel to the given edge.
func WithPanelSide(side PanelSide) SVGOption { return func(r *svgRenderer) { r.side = side } }

// WithDocumentID sets the id of the root element. Scripts scope themselves to
// it so several maps can share a page.
func WithDocumentID(id string) SVGOption { return func(r *svgRenderer) { r.docID = id } }

// DocumentID derives a stable element id from a map title.
func DocumentID(title string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("featuremap:"+title))
	return "fm-" + id.String()[:8]
}

func newSVGRenderer(s *Scene, opts ...SVGOption) svgRenderer {
	r := svgRenderer{panel: panel.DefaultOptions(), side: PanelRight}
	for _, opt := range opts {
		opt(&r)
	}
	if r.docID == "" {
		r.docID = DocumentID(s.Map.Title)
	}
	return r
}

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(s *Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(s, opts...)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	w, h := px(s.Width), px(s.Height)
	canvas.Start(w, h,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h),
		fmt.Sprintf(`id="%s"`, r.docID),
		`class="featuremap"`,
	)
	canvas.Title(s.Map.Title)

	renderLegend(canvas, s.Palette)
	renderSegments(canvas, s)
	renderNodes(canvas, s)

	if r.interactive {
		renderInfoButton(canvas, s)
		for _, n := range s.Nodes {
			renderDetailPanel(canvas, s, n, r.side, r.panel)
		}
		renderHelpOverlay(canvas, s)
		renderInteraction(&buf, r.docID, true)
	}

	canvas.End()
	return buf.Bytes()
}

const (
	legendX = 20
	legendY = 20
)

func renderLegend(canvas *svg.SVG, p Palette) {
	canvas.Translate(legendX, legendY)
	canvas.Circle(10, 10, 10, "fill:"+p.Internal)
	canvas.Text(25, 15, "Internal Feature", "font-size:12px;font-family:sans-serif")
	canvas.Circle(10, 40, 10, "fill:"+p.External)
	canvas.Text(25, 45, "External Feature (with recommended tool)", "font-size:12px;font-family:sans-serif")
	canvas.Gend()
}

func renderSegments(canvas *svg.SVG, s *Scene) {
	style := fmt.Sprintf("stroke:%s;stroke-width:%d", s.Palette.Edge, edgeStrokeWidth)
	for _, seg := range s.Segments {
		canvas.Line(px(seg.X1), px(seg.Y1), px(seg.X2), px(seg.Y2),
			`class="fm-edge"`,
			fmt.Sprintf(`data-from="%s"`, seg.FromID),
			fmt.Sprintf(`data-to="%s"`, seg.ToID),
			style,
		)
	}
}

func renderNodes(canvas *svg.SVG, s *Scene) {
	for _, n := range s.Nodes {
		x, y, r := px(n.X), px(n.Y), px(n.R)
		canvas.Group(`class="fm-node"`, fmt.Sprintf(`data-feature="%s"`, n.Feature.ID))
		canvas.Circle(x, y, r, nodeStyle(n))
		canvas.Text(x, y, n.Label,
			`text-anchor="middle"`,
			`dy=".3em"`,
			fmt.Sprintf(`textLength="%d"`, 2*r),
			`lengthAdjust="spacingAndGlyphs"`,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif", s.Palette.Label),
		)
		if n.Annotation != "" {
			canvas.Text(x, y+15, n.Annotation,
				`text-anchor="middle"`,
				`dy=".3em"`,
				fmt.Sprintf("fill:%s;font-size:10px;font-family:sans-serif", s.Palette.Label),
			)
		}
		canvas.Gend()
	}
}

func nodeStyle(n Node) string {
	if n.Stroke == "" {
		return fmt.Sprintf("fill:%s;stroke:none", n.Fill)
	}
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", n.Fill, n.Stroke, n.StrokeWidth)
}

func px(f float64) int {
	return int(math.Round(f))
}
