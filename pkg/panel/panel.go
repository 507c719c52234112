// Package panel builds the content of the detail panel and the help overlay.
//
// Content is surface independent: the HTML renderer converts it to markup via
// [Markdown] and goldmark, the terminal explorer via [Markdown] and glamour.
// Closing either panel is the surface's job; it must call the selection
// controller (Clear for the detail panel, HideHelp for the overlay).
package panel

import (
	"strings"

	"github.com/matzehuels/featuremap/pkg/sitemap"
)

// Section is one block of panel content.
type Section struct {
	Heading string   // subheading, or the field label when Inline
	Inline  bool     // render as "Heading: Text" on one line
	Text    string   // paragraph text
	Items   []string // ordered list entries
}

// Content is a titled sequence of sections.
type Content struct {
	Title    string
	Sections []Section
}

// Section returns the first section with the given heading.
func (c Content) Section(heading string) (Section, bool) {
	for _, s := range c.Sections {
		if s.Heading == heading {
			return s, true
		}
	}
	return Section{}, false
}

// Options selects how much of a feature the detail panel shows.
type Options struct {
	// ShowIntegrations lists an external feature's integration
	// possibilities. The lean variant of the map leaves them out.
	ShowIntegrations bool
}

// DefaultOptions returns the full detail panel.
func DefaultOptions() Options {
	return Options{ShowIntegrations: true}
}

// Section headings of the detail panel.
const (
	HeadingType         = "Type"
	HeadingDetails      = "Details"
	HeadingTool         = "Recommended Tool"
	HeadingIntegrations = "Integration Possibilities"
)

// Detail returns the detail panel content of f: name, description, type
// label, details, and for external features the recommended tool and the
// integration possibilities in order.
func Detail(f sitemap.Feature, opts Options) Content {
	c := Content{
		Title: f.Name,
		Sections: []Section{
			{Text: f.Description},
			{Heading: HeadingType, Inline: true, Text: f.Kind.Label()},
			{Heading: HeadingDetails, Text: f.Details},
		},
	}
	if !f.IsExternal() {
		return c
	}
	if f.RecommendedTool != "" {
		c.Sections = append(c.Sections, Section{Heading: HeadingTool, Text: f.RecommendedTool})
	}
	if opts.ShowIntegrations && len(f.Integrations) > 0 {
		c.Sections = append(c.Sections, Section{
			Heading: HeadingIntegrations,
			Items:   append([]string(nil), f.Integrations...),
		})
	}
	return c
}

// HelpTitle is the heading of the help overlay.
const HelpTitle = "How to Use This Sitemap"

// Help returns the static help overlay content for m.
func Help(m *sitemap.Map) Content {
	name := "site"
	if m != nil && m.Title != "" {
		name = m.Title
	}
	return Content{
		Title: HelpTitle,
		Sections: []Section{
			{Text: "This interactive sitemap provides an overview of the " + possessive(name) + " features:"},
			{Items: []string{
				"Internal features are hosted directly on " + name + ".",
				"External features are provided by third-party tools or integrations, with their recommended tools displayed.",
				"Click on any node to view more details about that feature, including integration possibilities for external features.",
			}},
		},
	}
}

func possessive(s string) string {
	if strings.HasSuffix(s, "s") {
		return s + "'"
	}
	return s + "'s"
}
