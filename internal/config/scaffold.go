package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
source:
  # v1.1 or v1.2; an explicit url takes precedence.
  release: "v1.2"
  fetcher: "http"
  timeout_seconds: 0

workspace:
  dir: "."
  archive_name: "wikianswer.tar.gz"
  extractor: "native"

dataset:
  dir: "Question_Answer_Dataset"
  data_file: "question_answer_pairs.txt"
  subject_prefix: "S"
  encoding: "latin-1"
  header_lines: 1
  question_column: 1
  answer_column: 2

output:
  path: "wikianswer_dataset.txt"

# catalog:
#   path: ".wikiqa/catalog.duckdb"
`

// Scaffold writes a default config file to specPath.
func Scaffold(specPath string) error {
	if specPath == "" {
		return fmt.Errorf("spec path is required")
	}
	if info, err := os.Stat(specPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("spec path %q is a directory", specPath)
		}
		return fmt.Errorf("spec file already exists at %q", specPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat spec file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(specPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(specPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write spec file: %w", err)
	}
	return nil
}
