package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/buildinfo"
	"github.com/matzehuels/featuremap/pkg/config"
	fmio "github.com/matzehuels/featuremap/pkg/io"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and default file names.
const appName = "featuremap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output. Logs and spinners go to Err.
	Out io.Writer
	Err io.Writer

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
		cfg:    config.DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "featuremap renders interactive maps of a website's features",
		Long: `featuremap draws a website's features as clickable circles joined by hand-authored links.
Clicking a feature opens a detail panel; the info button explains how to read the map.

Maps render to standalone SVG or HTML, or can be explored in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultFile, "config file")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "map", cfg.Map, "format", cfg.Format)
	return nil
}

// =============================================================================
// Map Loading
// =============================================================================

// mapPath returns the map file named on the command line, falling back to the
// configured one. Empty means the built-in map.
func (c *CLI) mapPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return c.cfg.Map
}

// loadMap reads and validates the map at path.
func (c *CLI) loadMap(path string) (*sitemap.Map, error) {
	m, err := fmio.Load(path)
	if err != nil {
		return nil, err
	}
	source := path
	if source == "" {
		source = "built-in"
	}
	c.Logger.Debug("map loaded", "source", source, "features", len(m.Features), "links", len(m.Layout.Links))
	return m, nil
}
