package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/config"
	"github.com/matzehuels/featuremap/pkg/errors"
	fmio "github.com/matzehuels/featuremap/pkg/io"
	"github.com/matzehuels/featuremap/pkg/render"
	"github.com/matzehuels/featuremap/pkg/render/graph"
	"github.com/matzehuels/featuremap/pkg/render/nodelink"
	"github.com/matzehuels/featuremap/pkg/sitemap"
	"github.com/matzehuels/featuremap/pkg/watcher"
)

// stdoutPath selects standard output as the render destination.
const stdoutPath = "-"

// renderOpts holds the resolved settings of one render run. Config supplies
// the defaults; flags set on the command line win.
type renderOpts struct {
	output       string   // output file, base path for several formats, or "-"
	formats      []string // svg, html, dot, png, pdf, json, toml, yaml
	engine       string   // scene or graphviz, for svg, png and pdf
	integrations bool     // list integration possibilities in detail panels
	panelSide    graph.PanelSide
	palette      graph.Palette
	scale        float64 // png scale factor
	static       bool    // svg without panels, help overlay and script
	detailed     bool    // recommended tool in DOT labels
	watch        bool    // re-render when the map file changes
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		opts       renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [map-file]",
		Short: "Render a feature map to SVG, HTML, DOT, PNG, PDF or a map file",
		Long: `Render a feature map.

Without a map file the configured map, or the built-in one, is rendered.
SVG and HTML output is interactive: clicking a feature opens its detail panel
and the info button toggles the help overlay. PNG and PDF are static and need
rsvg-convert (librsvg).

With --engine graphviz, svg, png and pdf are drawn as a static node-link
diagram by Graphviz instead, with the same pinned positions.`,
		Example: `  featuremap render
  featuremap render site.yaml -f html -o site.html
  featuremap render site.yaml -f svg,png --panel-side left
  featuremap render site.yaml --watch
  featuremap render site.yaml -f svg --engine graphviz`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolveRenderOpts(cmd, formatsStr, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), c.mapPath(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file, base path for several formats, or "-" for stdout`)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(config.Formats, ", ")+" (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "renderer for svg, png and pdf: "+strings.Join(config.Engines, ", "))
	cmd.Flags().BoolVar(&opts.integrations, "integrations", true, "list integration possibilities in detail panels")
	cmd.Flags().String("panel-side", "", "dock the detail panel to the left or right edge")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.static, "static", false, "render SVG without detail panels and help overlay")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include recommended tools in DOT labels")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render whenever the map file changes")

	return cmd
}

// resolveRenderOpts layers flags over the loaded config.
func (c *CLI) resolveRenderOpts(cmd *cobra.Command, formatsStr string, opts *renderOpts) error {
	flags := cmd.Flags()
	cfg := c.cfg

	if !flags.Changed("output") {
		opts.output = cfg.Output
	}
	if !flags.Changed("integrations") {
		opts.integrations = cfg.Integrations
	}
	if !flags.Changed("scale") {
		opts.scale = cfg.Scale
	}
	if !flags.Changed("engine") {
		opts.engine = cfg.Engine
	}
	if !slices.Contains(config.Engines, opts.engine) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %s (must be one of %s)", opts.engine, strings.Join(config.Engines, ", "))
	}
	if formatsStr == "" {
		formatsStr = cfg.Format
	}
	opts.formats = parseFormats(formatsStr)
	if err := validateFormats(opts.formats); err != nil {
		return err
	}

	side := cfg.PanelSide
	if flags.Changed("panel-side") {
		side, _ = flags.GetString("panel-side")
	}
	ps, err := graph.ParsePanelSide(side)
	if err != nil {
		return err
	}
	opts.panelSide = ps
	opts.palette = cfg.Palette.Resolve()

	if opts.output == stdoutPath && len(opts.formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(opts.formats))
	}
	return nil
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{config.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// validateFormats checks that all requested formats are known.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(config.Formats, f) {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(config.Formats, ", "))
		}
	}
	return nil
}

// outputPath derives the destination of one format. An explicit output is
// used as-is for a single format; with several formats its extension is
// replaced. Without an output the map file's name, or the app name for the
// built-in map, is the base.
func outputPath(output, input, format string, multi bool) string {
	if output == stdoutPath {
		return stdoutPath
	}
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = appName
		if input != "" {
			base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		}
	} else if ext := filepath.Ext(base); slices.Contains(config.Formats, strings.TrimPrefix(ext, ".")) {
		base = strings.TrimSuffix(base, ext)
	}
	path := base + "." + format
	if path == input {
		// Never overwrite the source when re-exporting in its own format.
		path = base + ".out." + format
	}
	return path
}

// runRender renders the map once, then keeps re-rendering on change when
// watching.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	ctx = withLogger(ctx, c.Logger)
	logger := loggerFromContext(ctx)

	if opts.watch && input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--watch needs a map file")
	}

	m, err := c.loadMap(input)
	if err != nil {
		return err
	}
	if err := c.renderAll(ctx, m, input, opts); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	w, err := watcher.New(input, watcher.WithOnError(func(err error) {
		logger.Warn("watch", "err", err)
	}))
	if err != nil {
		return err
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Error("watcher stopped", "err", err)
		}
	}()
	logger.Infof("Watching %s (ctrl+c to stop)", w.Path())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changed():
			m, err := c.loadMap(input)
			if err != nil {
				logger.Error("reload failed", "path", input, "err", errors.UserMessage(err))
				continue
			}
			if err := c.renderAll(ctx, m, input, opts); err != nil {
				logger.Error("render failed", "err", errors.UserMessage(err))
			}
		}
	}
}

// renderAll writes every requested format.
func (c *CLI) renderAll(ctx context.Context, m *sitemap.Map, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	multi := len(opts.formats) > 1

	for _, format := range opts.formats {
		prog := newProgress(logger)
		var spin *Spinner
		if format == config.FormatPNG || format == config.FormatPDF {
			spin = newSpinner(ctx, c.Err, "Converting to "+format+"...")
			spin.Start()
		}
		data, err := renderMap(ctx, m, format, opts)
		if spin != nil {
			spin.Stop()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		logger.Debugf("Generated %s: %d bytes", format, len(data))

		path := outputPath(opts.output, input, format, multi)
		if err := c.writeOutput(path, data); err != nil {
			return err
		}
		if path != stdoutPath {
			prog.donef("Rendered %s", path)
		}
	}
	return nil
}

// renderMap produces one format.
func renderMap(ctx context.Context, m *sitemap.Map, format string, opts *renderOpts) ([]byte, error) {
	switch format {
	case config.FormatDOT:
		return []byte(nodelink.ToDOT(m, nodelink.Options{Detailed: opts.detailed, Palette: &opts.palette})), nil
	case config.FormatJSON, config.FormatTOML, config.FormatYAML:
		var buf bytes.Buffer
		if err := fmio.Write(&buf, m, fmio.Format(format)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	if opts.engine == config.EngineGraphviz {
		if data, ok, err := renderGraphviz(ctx, m, format, opts); ok {
			return data, err
		}
	}

	scene, err := graph.Build(m, graph.WithPalette(opts.palette))
	if err != nil {
		return nil, err
	}
	svgOpts := []graph.SVGOption{
		graph.WithIntegrations(opts.integrations),
		graph.WithPanelSide(opts.panelSide),
	}

	switch format {
	case config.FormatSVG:
		if !opts.static {
			svgOpts = append(svgOpts, graph.WithInteractive())
		}
		return graph.RenderSVG(scene, svgOpts...), nil
	case config.FormatHTML:
		return graph.RenderHTML(scene, svgOpts...)
	case config.FormatPNG:
		return render.ToPNG(ctx, graph.RenderSVG(scene), opts.scale)
	case config.FormatPDF:
		return render.ToPDF(ctx, graph.RenderSVG(scene))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s", format)
}

// renderGraphviz draws svg, png and pdf through Graphviz. It reports false
// for formats only the scene renderer produces.
func renderGraphviz(ctx context.Context, m *sitemap.Map, format string, opts *renderOpts) ([]byte, bool, error) {
	if err := opts.palette.Validate(); err != nil {
		return nil, true, err
	}
	dot := nodelink.ToDOT(m, nodelink.Options{Detailed: opts.detailed, Palette: &opts.palette})
	var (
		data []byte
		err  error
	)
	switch format {
	case config.FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case config.FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, opts.scale)
	case config.FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	default:
		return nil, false, nil
	}
	return data, true, err
}

func (c *CLI) writeOutput(path string, data []byte) error {
	if path == stdoutPath {
		_, err := c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
