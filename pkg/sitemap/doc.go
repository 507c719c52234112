// Package sitemap defines the feature map that featuremap visualizes.
//
// A [Map] pairs a registry of [Feature] descriptors with an explicit
// [Layout]: a position per feature id and a list of hand-authored [Link]s
// between feature ids. Links are purely visual; they are not derived from
// any relationship between features.
//
// Maps are static configuration. They are either the built-in [Default] map
// or decoded from a file by package io, and they are checked once with
// [Map.Validate] before anything is rendered. A map that fails validation is a
// configuration error, never a runtime condition.
//
//	m := sitemap.Default()
//	if err := m.Validate(); err != nil {
//	    return err
//	}
//	home, _ := m.Feature("home")
//	fmt.Println(home.Name, home.Kind.Label()) // Home Page Internal
package sitemap
