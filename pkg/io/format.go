package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/featuremap/pkg/errors"
)

// Format is a map file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatTOML, FormatYAML}

// ParseFormat parses a format name. "yml" is accepted for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported map format: %q (must be json, toml or yaml)", s)
}

// FormatOf infers the format from the extension of path.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer map format of %s: no file extension", path)
	}
	return ParseFormat(ext)
}

// Ext returns the canonical file extension of f.
func (f Format) Ext() string {
	return "." + string(f)
}
