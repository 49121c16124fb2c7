package config

import (
	"os"
	"path/filepath"
	"testing"

	"wikiqa/internal/spec"
)

// normalizedConfig returns a default config normalized against baseDir.
func normalizedConfig(baseDir string) spec.Config {
	cfg := Default()
	Normalize(&cfg, baseDir)
	return cfg
}

func writeConfig(t *testing.T, root, payload string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func intPtr(v int) *int {
	return &v
}
