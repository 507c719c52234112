package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/featuremap/pkg/config"
	"github.com/matzehuels/featuremap/pkg/errors"
	fmio "github.com/matzehuels/featuremap/pkg/io"
	"github.com/matzehuels/featuremap/pkg/render/graph"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"case and spaces", " HTML , Dot ", []string{"html", "dot"}},
		{"duplicates dropped", "svg,svg,json", []string{"svg", "json"}},
		{"empty entries skipped", "svg,,yaml", []string{"svg", "yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"all known", config.Formats, false},
		{"single", []string{"html"}, false},
		{"unknown", []string{"svg", "gif"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		multi  bool
		want   string
	}{
		{"stdout", "-", "site.yaml", "svg", false, "-"},
		{"explicit single", "out/map.html", "site.yaml", "html", false, "out/map.html"},
		{"explicit base for several", "out/map", "site.yaml", "png", true, "out/map.png"},
		{"known extension replaced", "out/map.svg", "site.yaml", "pdf", true, "out/map.pdf"},
		{"unknown extension kept", "out/map.v2", "", "svg", true, "out/map.v2.svg"},
		{"from input name", "", "maps/site.yaml", "svg", false, "site.svg"},
		{"built-in map", "", "", "html", false, "featuremap.html"},
		{"never overwrite input", "", "site.yaml", "yaml", false, "site.out.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.output, tt.input, tt.format, tt.multi)
			if got != tt.want {
				t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q", tt.output, tt.input, tt.format, tt.multi, got, tt.want)
			}
		})
	}
}

func defaultRenderOpts() *renderOpts {
	return &renderOpts{
		formats:      []string{config.FormatSVG},
		integrations: true,
		panelSide:    graph.PanelRight,
		palette:      graph.DefaultPalette(),
		scale:        2,
	}
}

func TestRenderMap(t *testing.T) {
	m := sitemap.Default()
	tests := []struct {
		format string
		static bool
		engine string
		want   []string
		reject []string
	}{
		{format: "svg", want: []string{"<svg", "fm-panel", "<script"}},
		{format: "svg", static: true, want: []string{"<svg", "fm-node"}, reject: []string{"fm-panel", "<script"}},
		{format: "svg", engine: config.EngineGraphviz, want: []string{"<svg", "Home Page"}, reject: []string{"fm-panel", "<script"}},
		{format: "dot", engine: config.EngineGraphviz, want: []string{"digraph G {"}},
		{format: "html", want: []string{"<!DOCTYPE html>", "fm-root"}, reject: []string{"<?xml"}},
		{format: "dot", want: []string{"digraph G {", `"home" -> "profiles";`}},
		{format: "json", want: []string{`"title": "Decentralized AI Hub"`}},
		{format: "toml", want: []string{"[[features]]"}},
		{format: "yaml", want: []string{"features:"}},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.engine, func(t *testing.T) {
			opts := defaultRenderOpts()
			opts.static = tt.static
			opts.engine = tt.engine
			data, err := renderMap(context.Background(), m, tt.format, opts)
			if err != nil {
				t.Fatalf("renderMap(%s) error: %v", tt.format, err)
			}
			out := string(data)
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("%s output missing %q", tt.format, s)
				}
			}
			for _, s := range tt.reject {
				if strings.Contains(out, s) {
					t.Errorf("%s output should not contain %q", tt.format, s)
				}
			}
		})
	}
}

func TestRenderMapRoundTrip(t *testing.T) {
	data, err := renderMap(context.Background(), sitemap.Default(), "yaml", defaultRenderOpts())
	if err != nil {
		t.Fatal(err)
	}
	m, err := fmio.Read(strings.NewReader(string(data)), fmio.FormatYAML)
	if err != nil {
		t.Fatalf("re-reading rendered yaml: %v", err)
	}
	if len(m.Features) != 11 {
		t.Errorf("features = %d, want 11", len(m.Features))
	}
}

func TestRenderMapUnknownFormat(t *testing.T) {
	_, err := renderMap(context.Background(), sitemap.Default(), "gif", defaultRenderOpts())
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestRenderCommandFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	c, _ := newTestCLI()
	base := filepath.Join(dir, "out", "site")
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := execute(c, "render", "-f", "svg,dot,json", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".svg", ".dot", ".json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", base+ext, err)
		}
	}
}

func TestRenderCommandInputName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := fmio.Export(sitemap.Default(), "site.toml"); err != nil {
		t.Fatal(err)
	}
	c, _ := newTestCLI()
	if err := execute(c, "render", "site.toml", "-f", "html"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat("site.html"); err != nil {
		t.Errorf("expected site.html: %v", err)
	}
}

func TestRenderCommandStdout(t *testing.T) {
	t.Chdir(t.TempDir())

	c, out := newTestCLI()
	if err := execute(c, "render", "-f", "dot", "-o", "-"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out.String(), "digraph G {") {
		t.Errorf("stdout = %.40q, want DOT", out.String())
	}
}

func TestRenderCommandGraphviz(t *testing.T) {
	t.Chdir(t.TempDir())

	c, out := newTestCLI()
	if err := execute(c, "render", "-f", "svg", "--engine", "graphviz", "-o", "-"); err != nil {
		t.Fatalf("render: %v", err)
	}
	svg := out.String()
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "Home Page") {
		t.Errorf("stdout = %.60q, want Graphviz SVG", svg)
	}
	if strings.Contains(svg, "fm-panel") {
		t.Error("graphviz output should not carry the interactive panel")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"several formats to stdout", []string{"render", "-f", "svg,dot", "-o", "-"}, errors.ErrCodeInvalidInput},
		{"unknown format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad panel side", []string{"render", "--panel-side", "top"}, errors.ErrCodeInvalidInput},
		{"unknown engine", []string{"render", "--engine", "cairo"}, errors.ErrCodeInvalidInput},
		{"watch without file", []string{"render", "--watch"}, errors.ErrCodeInvalidInput},
		{"missing map", []string{"render", "nope.yaml"}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())

			c, _ := newTestCLI()
			err := execute(c, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestRenderUsesConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := config.DefaultConfig()
	cfg.Format = config.FormatDOT
	cfg.Output = "-"
	if err := cfg.Save(config.DefaultFile); err != nil {
		t.Fatal(err)
	}

	c, out := newTestCLI()
	if err := execute(c, "render"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out.String(), "digraph G {") {
		t.Errorf("config format not applied, got %.40q", out.String())
	}

	// Flags win over the file.
	c, out = newTestCLI()
	if err := execute(c, "render", "-f", "json"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out.String(), "{") {
		t.Errorf("flag format not applied, got %.40q", out.String())
	}
}
