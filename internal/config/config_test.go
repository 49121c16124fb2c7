package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadResolvesAgainstProjectRoot verifies relative paths resolve against the directory holding .wikiqa.
func TestLoadResolvesAgainstProjectRoot(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `version: 1
source:
  release: v1.1
  fetcher: wget
workspace:
  dir: build
output:
  path: data/out.txt
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Workspace.Dir != filepath.Join(root, "build") {
		t.Fatalf("unexpected workspace dir %q", cfg.Workspace.Dir)
	}
	if cfg.Output.Path != filepath.Join(root, "data", "out.txt") {
		t.Fatalf("unexpected output path %q", cfg.Output.Path)
	}
	if cfg.Source.URL != Releases["v1.1"] || cfg.Source.Fetcher != FetcherWget {
		t.Fatalf("unexpected source %+v", cfg.Source)
	}
}

// TestLoadRejectsUnknownFields verifies strict parsing surfaces through Load.
func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1\nmirror: true\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

// TestFindConfigPathSearchesParents verifies upward discovery.
func TestFindConfigPathSearchesParents(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find config: %v", err)
	}
	if found != path {
		t.Fatalf("expected %q, got %q", path, found)
	}
	if BaseDirFromConfigPath(found) != root {
		t.Fatalf("unexpected base dir %q", BaseDirFromConfigPath(found))
	}
}

// TestFindConfigPathMissingConfigFile verifies a bare .wikiqa directory is reported.
func TestFindConfigPathMissingConfigFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := FindConfigPath(root)
	if err == nil || errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected missing config file error, got %v", err)
	}
}

// TestResolveFallsBackToDefaults verifies builds work without any config file.
func TestResolveFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, path, err := Resolve("", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != "" {
		t.Fatalf("expected no config path, got %q", path)
	}
	if cfg.Output.Path != filepath.Join(dir, DefaultOutputPath) {
		t.Fatalf("unexpected output path %q", cfg.Output.Path)
	}
}

// TestScaffoldWritesLoadableConfig verifies init output round-trips through Load.
func TestScaffoldWritesLoadableConfig(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg.Source.URL != Releases[DefaultRelease] {
		t.Fatalf("unexpected url %q", cfg.Source.URL)
	}
	if cfg.Workspace.Dir != root {
		t.Fatalf("unexpected workspace dir %q", cfg.Workspace.Dir)
	}

	err = Scaffold(path)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing file error, got %v", err)
	}
}
