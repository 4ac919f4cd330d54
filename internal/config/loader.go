package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load resolves the configuration: defaults, then the file at path (if it
// exists), then STOREFRONT_* environment variables. The result is
// validated. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// File doesn't exist, not an error
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := Decode(cfg, path, data); err != nil {
				return nil, err
			}
		}
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays a TOML or YAML document onto cfg. The format is chosen
// by the extension of name. Unknown keys are rejected.
func Decode(cfg *Config, name string, data []byte) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			// Empty document
			err = nil
		}
	default:
		return fmt.Errorf("%s: %w %q", name, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return &ParseError{Path: name, Message: err.Error(), Err: err}
	}
	return nil
}
