// Package io reads and writes feature maps.
//
// # Formats
//
// A map file holds the title, the feature registry and the layout table. Three
// encodings are supported and share one schema:
//
//   - json (.json)
//   - toml (.toml)
//   - yaml (.yaml, .yml)
//
// A minimal JSON map:
//
//	{
//	  "title": "Example",
//	  "root": "home",
//	  "features": [
//	    {"id": "home", "name": "Home", "description": "Landing page",
//	     "details": "Entry point.", "type": "internal"}
//	  ],
//	  "layout": {
//	    "positions": {"home": {"x": 400, "y": 100}},
//	    "links": []
//	  }
//	}
//
// Layout width, height and radius are optional and default to 800, 600 and
// 40.
//
// # Import
//
// [Import] infers the format from the file extension; [Read] takes it
// explicitly. Both validate the decoded map and fail on the first file that
// does not resolve, so a broken layout never reaches a renderer.
//
// # Export
//
// [Export] and [Write] are the inverse. Exporting [sitemap.Default] gives a
// starting point for a custom map.
package io
