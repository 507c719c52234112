// Package graph renders a feature map as clickable circular nodes joined by
// straight connecting lines.
//
// # Overview
//
// Rendering happens in two steps. [Build] turns a validated [sitemap.Map]
// into a [Scene]: one [Node] per feature (center, radius, kind-dependent
// fill, label and tool annotation) and one [Segment] per hand-authored link.
// The scene is a pure function of the map; building it twice yields the same
// scene. Surfaces then either draw it ([RenderSVG], [RenderHTML]) or query it
// ([Scene.HitTest], [Scene.Dispatch]) to turn pointer clicks into selections.
//
//	scene, err := graph.Build(sitemap.Default())
//	if err != nil {
//	    return err
//	}
//	svg := graph.RenderSVG(scene, graph.WithInteractive())
//
// # Interactivity
//
// With [WithInteractive] the SVG embeds a detail panel per feature, a help
// overlay, an info button and a small script. Clicking a node opens its
// panel; the close button clears the selection; the info button toggles the
// help overlay and is disabled while a panel is open. This is the policy of
// package selection, replayed in the browser.
//
// [RenderHTML] produces a standalone page around the same SVG where the
// panels are HTML rendered from markdown with goldmark.
//
// # Coordinates
//
// SVG output is written with github.com/ajstarks/svgo, which works in whole
// pixels; scene coordinates are rounded when drawn.
//
// [sitemap.Map]: github.com/matzehuels/featuremap/pkg/sitemap.Map
package graph
