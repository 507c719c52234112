// Package render turns feature maps into documents.
//
// # Overview
//
// Rendering happens in two subpackages that share the conversion helpers
// here:
//
//   - [graph] draws the map as clickable circles with a detail panel and a
//     help overlay, as SVG or as a standalone HTML page
//   - [nodelink] exports the same nodes and links as Graphviz DOT with
//     pinned positions
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). The interactive parts of an SVG are dropped by the
// conversion, so convert a static rendering:
//
//	scene, err := graph.Build(m)
//	svg := graph.RenderSVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [graph]: github.com/matzehuels/featuremap/pkg/render/graph
// [nodelink]: github.com/matzehuels/featuremap/pkg/render/nodelink
package render
