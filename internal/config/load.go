package config

import (
	"errors"
	"fmt"
	"os"

	"wikiqa/internal/spec"
)

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (spec.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := spec.ParseConfig(data)
	if err != nil {
		return spec.Config{}, err
	}
	Normalize(&cfg, BaseDirFromConfigPath(path))
	if err := Validate(&cfg); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}

// Resolve loads the config at path or, when path is empty, the config found
// upward from startDir. Without any config file the defaults are used with
// paths relative to startDir. The returned path is empty in that case.
func Resolve(path, startDir string) (spec.Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	found, err := FindConfigPath(startDir)
	if err == nil {
		cfg, err := Load(found)
		return cfg, found, err
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return spec.Config{}, "", err
	}
	baseDir := startDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return spec.Config{}, "", fmt.Errorf("get working directory: %w", err)
		}
		baseDir = wd
	}
	cfg := Default()
	Normalize(&cfg, baseDir)
	if err := Validate(&cfg); err != nil {
		return spec.Config{}, "", err
	}
	return cfg, "", nil
}
