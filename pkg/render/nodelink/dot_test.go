package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/featuremap/pkg/render/graph"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

func TestToDOT_Default(t *testing.T) {
	dot := ToDOT(sitemap.Default(), Options{})

	for _, want := range []string{
		"digraph G",
		"layout=neato;",
		`label="Decentralized AI Hub"`,
		`"home" [label="Home Page", fillcolor="#3498db"`,
		`"forum" [label="Community Forum", fillcolor="#e74c3c"`,
		`pos="400,500!"`,
		`pos="200,50!"`,
		`"home" -> "profiles";`,
		`"resources" -> "funding";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q", want)
		}
	}
	if got := strings.Count(dot, "->"); got != 10 {
		t.Errorf("edges = %d, want 10", got)
	}
}

func TestToDOT_RootOutline(t *testing.T) {
	dot := ToDOT(sitemap.Default(), Options{})
	for _, line := range strings.Split(dot, "\n") {
		outlined := strings.Contains(line, `color="#2c3e50"`)
		isHome := strings.HasPrefix(strings.TrimSpace(line), `"home" [`)
		if outlined != isHome {
			t.Errorf("root outline mismatch on line %q", line)
		}
	}
}

func TestToDOT_Palette(t *testing.T) {
	p := graph.DefaultPalette()
	p.External = "#ff8800"
	dot := ToDOT(sitemap.Default(), Options{Palette: &p})
	if !strings.Contains(dot, `"funding" [label="Funding Opportunities", fillcolor="#ff8800"`) {
		t.Error("custom palette not applied")
	}
}

func TestFmtLabel(t *testing.T) {
	forum, _ := sitemap.Default().Feature("forum")
	home, _ := sitemap.Default().Feature("home")

	tests := []struct {
		name     string
		f        sitemap.Feature
		detailed bool
		want     string
	}{
		{"simple", forum, false, "Community Forum"},
		{"detailed external", forum, true, "Community Forum\n(Discord)"},
		{"detailed internal", home, true, "Home Page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(tt.f, tt.detailed); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFmtAttrs(t *testing.T) {
	home, _ := sitemap.Default().Feature("home")
	p := graph.DefaultPalette()

	if got := fmtAttrs(home, "x", p, false); len(got) != 3 {
		t.Errorf("fmtAttrs() plain node should have 3 attrs, got %d: %v", len(got), got)
	}
	joined := strings.Join(fmtAttrs(home, "x", p, true), " ")
	if !strings.Contains(joined, "penwidth=3") {
		t.Error("fmtAttrs() root missing penwidth")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeViewBox([]byte(tt.svg)); string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sitemap.Default(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(out, "Home Page") {
		t.Error("RenderSVG() output missing node label")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
