// Package nodelink exports feature maps as Graphviz node-link diagrams.
//
// # Overview
//
// The graph renderer draws maps directly. This package hands the same nodes
// and links to Graphviz instead, for users who want to post-process the
// diagram with Graphviz tooling or embed it in documentation pipelines that
// already speak DOT.
//
// # Usage
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Nodes carry `pos="x,y!"` so the neato engine keeps the authored layout.
// Colors follow the graph renderer's palette: fill by feature type, the root
// outlined.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
