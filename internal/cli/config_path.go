package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"wikiqa/internal/config"
	"wikiqa/internal/spec"
)

// resolveSpecPath normalizes a config path or finds it from CWD.
func resolveSpecPath(specPath string) (string, error) {
	if strings.TrimSpace(specPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(specPath)
	if err != nil {
		return "", fmt.Errorf("resolve spec path: %w", err)
	}
	return abs, nil
}

// overrides holds command-line values that replace config fields.
type overrides struct {
	url     string
	output  string
	workDir string
}

// loadConfig resolves the config (falling back to defaults when no file is
// found) and applies command-line overrides relative to the working directory.
func loadConfig(specPath string, o overrides) (spec.Config, error) {
	path := strings.TrimSpace(specPath)
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return spec.Config{}, fmt.Errorf("resolve spec path: %w", err)
		}
		path = abs
	}
	cfg, _, err := config.Resolve(path, "")
	if err != nil {
		return spec.Config{}, err
	}
	if o == (overrides{}) {
		return cfg, nil
	}
	if o.url != "" {
		cfg.Source.URL = strings.TrimSpace(o.url)
		cfg.Source.Release = ""
	}
	if o.output != "" {
		abs, err := filepath.Abs(o.output)
		if err != nil {
			return spec.Config{}, fmt.Errorf("resolve output path: %w", err)
		}
		cfg.Output.Path = abs
	}
	if o.workDir != "" {
		abs, err := filepath.Abs(o.workDir)
		if err != nil {
			return spec.Config{}, fmt.Errorf("resolve work dir: %w", err)
		}
		cfg.Workspace.Dir = abs
	}
	if err := config.Validate(&cfg); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}
