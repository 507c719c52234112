// Package config loads featuremap settings.
//
// Settings come from three layers, later ones winning: built-in defaults,
// an optional YAML file (featuremap.yaml by default), then FEATUREMAP_*
// environment variables. Nested keys use a double underscore in the
// environment, so FEATUREMAP_PALETTE__EXTERNAL sets palette.external.
// Command-line flags are applied on top by the CLI.
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/render/graph"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "featuremap.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FEATUREMAP_"

// Output formats accepted by the render command.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Render engines for svg, png and pdf output.
const (
	// EngineScene draws the map with the built-in renderer, which supports
	// the interactive panels and help overlay.
	EngineScene = "scene"
	// EngineGraphviz draws a static node-link diagram through Graphviz.
	EngineGraphviz = "graphviz"
)

// Engines lists the render engines.
var Engines = []string{EngineScene, EngineGraphviz}

// Formats lists the render output formats.
var Formats = []string{FormatSVG, FormatHTML, FormatDOT, FormatPNG, FormatPDF, FormatJSON, FormatTOML, FormatYAML}

// Config holds every setting of the featuremap commands.
type Config struct {
	// Map is the path of a map file. Empty selects the built-in map.
	Map          string  `yaml:"map" koanf:"map"`
	Integrations bool    `yaml:"integrations" koanf:"integrations"`
	PanelSide    string  `yaml:"panel_side" koanf:"panel_side"`
	Format       string  `yaml:"format" koanf:"format"`
	Engine       string  `yaml:"engine" koanf:"engine"`
	Output       string  `yaml:"output" koanf:"output"`
	Scale        float64 `yaml:"scale" koanf:"scale"`
	Palette      Palette `yaml:"palette,omitempty" koanf:"palette"`
}

// Palette overrides individual renderer colors. Empty entries keep the
// default.
type Palette struct {
	Internal string `yaml:"internal,omitempty" koanf:"internal"`
	External string `yaml:"external,omitempty" koanf:"external"`
	Root     string `yaml:"root,omitempty" koanf:"root"`
	Edge     string `yaml:"edge,omitempty" koanf:"edge"`
	Label    string `yaml:"label,omitempty" koanf:"label"`
}

// Resolve applies the overrides to the default palette.
func (p Palette) Resolve() graph.Palette {
	out := graph.DefaultPalette()
	override(&out.Internal, p.Internal)
	override(&out.External, p.External)
	override(&out.Root, p.Root)
	override(&out.Edge, p.Edge)
	override(&out.Label, p.Label)
	return out
}

func override(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Integrations: true,
		PanelSide:    string(graph.PanelRight),
		Format:       FormatSVG,
		Engine:       EngineScene,
		Scale:        2.0,
	}
}

// Load reads configuration from the YAML file at path, when it exists, and
// overlays FEATUREMAP_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "access config %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load env overrides")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "unmarshal config")
	}
	return cfg, nil
}

// envKey maps FEATUREMAP_PANEL_SIDE to panel_side and
// FEATUREMAP_PALETTE__ROOT to palette.root.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write config to %s", path)
	}
	return nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var v errors.ValidationErrors
	if c.Map != "" {
		if err := errors.ValidatePath(c.Map); err != nil {
			v.Addf("map: %s", errors.UserMessage(err))
		}
	}
	if _, err := graph.ParsePanelSide(c.PanelSide); err != nil {
		v.Addf("panel_side: %q must be left or right", c.PanelSide)
	}
	if !slices.Contains(Formats, c.Format) {
		v.Addf("format: %q must be one of %s", c.Format, strings.Join(Formats, ", "))
	}
	if !slices.Contains(Engines, c.Engine) {
		v.Addf("engine: %q must be one of %s", c.Engine, strings.Join(Engines, ", "))
	}
	if c.Scale <= 0 {
		v.Addf("scale: must be positive, got %g", c.Scale)
	}
	if err := c.Palette.Resolve().Validate(); err != nil {
		v.Addf("palette: %s", errors.UserMessage(err))
	}
	return v.Err(errors.ErrCodeInvalidConfig, "invalid configuration")
}
