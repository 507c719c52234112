package panel

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/featuremap/pkg/sitemap"
)

func mustFeature(t *testing.T, id string) sitemap.Feature {
	t.Helper()
	f, ok := sitemap.Default().Feature(id)
	if !ok {
		t.Fatalf("feature %q missing", id)
	}
	return f
}

func TestDetailInternal(t *testing.T) {
	home := mustFeature(t, "home")
	got := Detail(home, DefaultOptions())

	want := Content{
		Title: "Home Page",
		Sections: []Section{
			{Text: "Central landing page for the Decentralized AI Hub."},
			{Heading: HeadingType, Inline: true, Text: "Internal"},
			{Heading: HeadingDetails, Text: "Provides an overview of the hub and quick access to all main features."},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Detail(home) mismatch (-want +got):\n%s", diff)
	}
}

func TestDetailExternal(t *testing.T) {
	forum := mustFeature(t, "forum")
	got := Detail(forum, DefaultOptions())

	tool, ok := got.Section(HeadingTool)
	if !ok || tool.Text != "Discord" {
		t.Errorf("tool section = %+v/%v, want Discord", tool, ok)
	}
	integ, ok := got.Section(HeadingIntegrations)
	if !ok {
		t.Fatal("integrations section missing")
	}
	if diff := cmp.Diff(forum.Integrations, integ.Items); diff != "" {
		t.Errorf("integrations order mismatch (-want +got):\n%s", diff)
	}
	typ, _ := got.Section(HeadingType)
	if typ.Text != "External" {
		t.Errorf("type label = %q, want External", typ.Text)
	}
}

func TestDetailLean(t *testing.T) {
	got := Detail(mustFeature(t, "projects"), Options{})
	if _, ok := got.Section(HeadingIntegrations); ok {
		t.Error("lean panel lists integrations")
	}
	if _, ok := got.Section(HeadingTool); !ok {
		t.Error("lean panel dropped the recommended tool")
	}
}

func TestDetailShowsExternalFieldsOnlyForExternal(t *testing.T) {
	for _, f := range sitemap.Default().Features {
		c := Detail(f, DefaultOptions())
		_, hasTool := c.Section(HeadingTool)
		_, hasInteg := c.Section(HeadingIntegrations)
		if hasTool != f.IsExternal() || hasInteg != f.IsExternal() {
			t.Errorf("%s: tool=%v integrations=%v, external=%v", f.ID, hasTool, hasInteg, f.IsExternal())
		}
		if c.Title != f.Name {
			t.Errorf("%s: title %q, want %q", f.ID, c.Title, f.Name)
		}
	}
}

func TestDetailDoesNotAlias(t *testing.T) {
	f := mustFeature(t, "funding")
	c := Detail(f, DefaultOptions())
	s, _ := c.Section(HeadingIntegrations)
	s.Items[0] = "changed"
	if f.Integrations[0] == "changed" {
		t.Error("Detail() aliases the feature's integrations")
	}
}

func TestHelp(t *testing.T) {
	c := Help(sitemap.Default())
	if c.Title != HelpTitle {
		t.Errorf("Title = %q, want %q", c.Title, HelpTitle)
	}
	md := Markdown(c)
	for _, want := range []string{
		"Decentralized AI Hub's features",
		"- Internal features are hosted directly on Decentralized AI Hub.",
		"- External features are provided by third-party tools",
		"- Click on any node",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("help markdown missing %q\n%s", want, md)
		}
	}

	if got := Help(nil).Sections[0].Text; !strings.Contains(got, "site's features") {
		t.Errorf("Help(nil) intro = %q", got)
	}
	if got := Help(&sitemap.Map{Title: "Docs"}).Sections[0].Text; !strings.Contains(got, "Docs' features") {
		t.Errorf("possessive of Docs = %q", got)
	}
}

func TestHelpNamesNoColors(t *testing.T) {
	md := Markdown(Help(&sitemap.Map{Title: "Docs"}))
	for _, banned := range []string{"Blue", "Red", "the hub"} {
		if strings.Contains(md, banned) {
			t.Errorf("help markdown mentions %q\n%s", banned, md)
		}
	}
	if !strings.Contains(md, "hosted directly on Docs.") {
		t.Errorf("help markdown does not name the map\n%s", md)
	}
}
