package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/config"
	"github.com/matzehuels/featuremap/pkg/errors"
	fmio "github.com/matzehuels/featuremap/pkg/io"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

// defaultMapFile is where init writes the starter map.
const defaultMapFile = "sitemap.yaml"

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	var (
		force      bool
		withConfig bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in map to a file to start from",
		Long: `Write the built-in feature map to a file. The format follows the extension:
.json, .toml, .yaml or .yml. Edit the file, then render it.`,
		Example: `  featuremap init
  featuremap init site.toml --with-config`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultMapFile
			if len(args) > 0 {
				path = args[0]
			}
			if err := c.writeStarter(path, force); err != nil {
				return err
			}
			if withConfig {
				if err := c.writeConfig(path, force); err != nil {
					return err
				}
			}
			c.printNextStep("Render it", "featuremap render "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	cmd.Flags().BoolVar(&withConfig, "with-config", false, "also write "+config.DefaultFile+" pointing at the new map")

	return cmd
}

func (c *CLI) writeStarter(path string, force bool) error {
	if err := refuseOverwrite(path, force); err != nil {
		return err
	}
	m := sitemap.Default()
	if err := fmio.Export(m, path); err != nil {
		return err
	}
	c.printSuccess("Wrote starter map")
	c.printFile(path)
	c.printInfo("%d features, edit it to describe your site", len(m.Features))
	return nil
}

func (c *CLI) writeConfig(mapPath string, force bool) error {
	path := c.configPath
	if path == "" {
		path = config.DefaultFile
	}
	if err := refuseOverwrite(path, force); err != nil {
		return err
	}
	cfg := *c.cfg
	cfg.Map = mapPath
	if err := cfg.Save(path); err != nil {
		return err
	}
	c.printSuccess("Wrote config")
	c.printFile(path)
	return nil
}

func refuseOverwrite(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
	}
	return nil
}
