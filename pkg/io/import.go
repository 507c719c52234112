package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

// Read decodes a map in the given format from r and validates it.
//
// Unknown fields are rejected in every format so that typos in hand-written
// maps surface as errors. Read does not close r.
func Read(r io.Reader, format Format) (*sitemap.Map, error) {
	var m sitemap.Map
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(&m)
		if err == nil {
			err = undecodedKeys(md)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&m)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported map format: %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s map", format)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// undecodedKeys reports TOML keys that match no map field.
func undecodedKeys(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown fields: %s", strings.Join(names, ", "))
}

// Import reads the map file at path. The format is inferred from the file
// extension.
func Import(path string) (*sitemap.Map, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "map file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

// Load returns the map at path, or [sitemap.Default] when path is empty.
func Load(path string) (*sitemap.Map, error) {
	if path == "" {
		return sitemap.Default(), nil
	}
	return Import(path)
}
