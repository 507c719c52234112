package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/render/graph"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		list bool
		kind string
	)

	cmd := &cobra.Command{
		Use:   "validate [map-file]",
		Short: "Check a map file and summarize it",
		Long: `Check a map file: every feature needs an id, a name and a valid type, every
feature needs a position inside the viewport, and every link must join two
known features. All problems are reported at once.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var only sitemap.Kind
			if kind != "" {
				k, err := sitemap.ParseKind(kind)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidInput, err, "--kind")
				}
				only, list = k, true
			}

			path := c.mapPath(args)
			m, err := c.loadMap(path)
			if err != nil {
				return c.reportProblems(path, err)
			}
			// Building the scene also checks the configured palette.
			if _, err := graph.Build(m, graph.WithPalette(c.cfg.Palette.Resolve())); err != nil {
				return c.reportProblems(path, err)
			}
			c.printSummary(path, m)
			c.printWarnings(m)
			if list {
				c.printFeatures(m, only)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list every feature")
	cmd.Flags().StringVar(&kind, "kind", "", "list only internal or external features (implies --list)")

	return cmd
}

// reportProblems prints each collected problem and returns a one-line error.
// Errors without a problem list are returned unchanged.
func (c *CLI) reportProblems(path string, err error) error {
	var problems *errors.ValidationErrors
	if !stderrors.As(err, &problems) {
		return err
	}
	c.printError("%s", errors.UserMessage(err))
	for _, p := range problems.Problems {
		c.printDetail("%s", p)
	}
	return errors.New(errors.GetCode(err), "%s: %d problem(s)", sourceName(path), problems.Len())
}

func (c *CLI) printSummary(path string, m *sitemap.Map) {
	c.printSuccess("%s is valid", sourceName(path))
	c.printKeyValue("Title", m.Title)
	if m.Subtitle != "" {
		c.printKeyValue("Subtitle", m.Subtitle)
	}
	if root, ok := m.Feature(m.Root); ok {
		c.printKeyValue("Root", fmt.Sprintf("%s (%s)", root.Name, root.ID))
	}
	l := m.Geometry()
	c.printKeyValue("Viewport", fmt.Sprintf("%gx%g, radius %g", l.Width, l.Height, l.Radius))
	counts := m.KindCounts()
	c.printStats(counts[sitemap.KindInternal], counts[sitemap.KindExternal], len(l.Links))
}

// printWarnings flags data that renders but reads poorly.
func (c *CLI) printWarnings(m *sitemap.Map) {
	if m.Root == "" {
		c.printWarning("no root feature: nothing is outlined")
	}
	for _, f := range m.Filter(sitemap.KindExternal) {
		if f.RecommendedTool == "" {
			c.printWarning("external feature %q has no recommended tool", f.ID)
		}
	}
}

// printFeatures lists the features of kind only, or all when only is empty.
func (c *CLI) printFeatures(m *sitemap.Map, only sitemap.Kind) {
	features := m.Features
	if only != "" {
		features = m.Filter(only)
	}
	c.printInfo("Features (%d)", len(features))
	for _, f := range features {
		p, _ := m.Position(f.ID)
		c.printDetail("%-12s %-24s %-8s (%g,%g)", f.ID, f.Name, f.Kind, p.X, p.Y)
	}
}

func sourceName(path string) string {
	if path == "" {
		return "built-in map"
	}
	return path
}
