package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"tschema/internal/driver"
	"tschema/internal/resolver"
)

// projectConfig holds CLI defaults from an optional tschema.toml found by
// walking parent directories from the input file. Explicit flags win over
// the file; the file wins over built-in defaults.
type projectConfig struct {
	Convert convertConfig `toml:"convert"`
}

type convertConfig struct {
	RootType             string  `toml:"root_type"`
	IncludeSchema        *bool   `toml:"include_schema"`
	SchemaVersion        string  `toml:"schema_version"`
	StrictObjects        *bool   `toml:"strict_objects"`
	AdditionalProperties *bool   `toml:"additional_properties"`
	IncludeJSDoc         *bool   `toml:"include_jsdoc"`
	FollowImports        *string `toml:"follow_imports"`
	BaseDir              string  `toml:"base_dir"`
}

func findProjectToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "tschema.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectConfig(startDir string) (projectConfig, bool, error) {
	path, ok, err := findProjectToml(startDir)
	if err != nil || !ok {
		return projectConfig{}, ok, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return projectConfig{}, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, true, nil
}

func applyProjectConfig(opts *driver.Options, cfg projectConfig) {
	c := cfg.Convert
	if c.RootType != "" {
		opts.RootType = c.RootType
	}
	if c.IncludeSchema != nil {
		opts.IncludeSchema = c.IncludeSchema
	}
	if c.SchemaVersion != "" {
		opts.SchemaVersion = c.SchemaVersion
	}
	if c.StrictObjects != nil {
		opts.StrictObjects = *c.StrictObjects
	}
	if c.AdditionalProperties != nil {
		opts.AdditionalProperties = c.AdditionalProperties
	}
	if c.IncludeJSDoc != nil {
		opts.IncludeJSDoc = c.IncludeJSDoc
	}
	if c.FollowImports != nil {
		if mode, err := resolver.ParseFollowMode(*c.FollowImports); err == nil {
			opts.FollowImports = mode
		}
	}
	if c.BaseDir != "" {
		opts.BaseDir = c.BaseDir
	}
}
