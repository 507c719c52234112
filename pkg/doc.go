// Package pkg provides the core libraries for featuremap visualizations.
//
// # Overview
//
// featuremap draws a website's features as circles joined by hand-authored
// links. Clicking a feature opens a detail panel; an info button toggles a
// help overlay that explains how to read the map. The pkg directory is
// organized into these areas:
//
//  1. [sitemap] - The feature registry and its id-keyed layout
//  2. [selection] - Which feature is selected and whether help is shown
//  3. [panel] - Detail panel and help overlay content
//  4. [render/graph] - Scene geometry, hit testing, SVG and HTML output
//  5. [io] - Map files in JSON, TOML and YAML
//
// # Architecture
//
// The typical data flow:
//
//	Map file (or the built-in map)
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [render/graph] package (scene: nodes, segments, hit testing)
//	         ↓
//	    SVG/HTML/DOT/PNG/PDF output, or the terminal explorer
//
// # Quick Start
//
// Render the built-in map as an interactive SVG:
//
//	import (
//	    "github.com/matzehuels/featuremap/pkg/render/graph"
//	    "github.com/matzehuels/featuremap/pkg/sitemap"
//	)
//
//	scene, err := graph.Build(sitemap.Default())
//	if err != nil {
//	    return err
//	}
//	svg := graph.RenderSVG(scene, graph.WithInteractive())
//
// Drive the selection from clicks:
//
//	ctrl := selection.New()
//	scene.Dispatch(x, y, ctrl.Select)
//	if f, ok := ctrl.Selected(); ok {
//	    fmt.Println(panel.Markdown(panel.Detail(f, panel.DefaultOptions())))
//	}
//
// # Supporting Packages
//
// [render/nodelink] - Graphviz DOT export with pinned positions.
//
// [render] - SVG to PDF/PNG conversion through rsvg-convert.
//
// [config] - Layered settings: defaults, featuremap.yaml, FEATUREMAP_* env.
//
// [watcher] - Debounced file watching for live re-rendering.
//
// [errors] - Structured error codes shared by every package.
//
// [sitemap]: https://pkg.go.dev/github.com/matzehuels/featuremap/pkg/sitemap
// [selection]: https://pkg.go.dev/github.com/matzehuels/featuremap/pkg/selection
// [panel]: https://pkg.go.dev/github.com/matzehuels/featuremap/pkg/panel
// [render/graph]: https://pkg.go.dev/github.com/matzehuels/featuremap/pkg/render/graph
// [io]: https://pkg.go.dev/github.com/matzehuels/featuremap/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/featuremap/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/featuremap/pkg/render
// [config]: https://pkg.go.dev/github.com/matzehuels/featuremap/pkg/config
// [watcher]: https://pkg.go.dev/github.com/matzehuels/featuremap/pkg/watcher
// [errors]: https://pkg.go.dev/github.com/matzehuels/featuremap/pkg/errors
package pkg
