package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"wikiqa/internal/dataset"
	"wikiqa/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config.
func Validate(cfg *spec.Config) error {
	c := &issueCollector{}

	if cfg.Version == 0 {
		c.add("version", "is required")
	} else if cfg.Version != 1 {
		c.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	validateSource(c, cfg.Source)
	validateWorkspace(c, cfg.Workspace)
	validateDataset(c, cfg.Dataset)

	if strings.TrimSpace(cfg.Output.Path) == "" {
		c.add("output.path", "is required")
	} else if removedByCleanup(cfg, cfg.Output.Path) {
		c.add("output.path", "would be removed by workspace cleanup")
	}
	if cfg.Catalog.Path != "" && removedByCleanup(cfg, cfg.Catalog.Path) {
		c.add("catalog.path", "would be removed by workspace cleanup")
	}
	if cfg.Catalog.Path != "" && filepath.Clean(cfg.Catalog.Path) == filepath.Clean(cfg.Output.Path) {
		c.add("catalog.path", "must differ from output.path")
	}

	return c.result()
}

func validateSource(c *issueCollector, src spec.SourceConfig) {
	if src.Release != "" {
		if _, ok := Releases[src.Release]; !ok {
			c.add("source.release", fmt.Sprintf("unknown release %q", src.Release))
		}
	}
	if src.URL == "" {
		if src.Release == "" {
			c.add("source.url", "is required")
		}
	} else if parsed, err := url.Parse(src.URL); err != nil {
		c.add("source.url", fmt.Sprintf("invalid url: %v", err))
	} else if parsed.Scheme == "" || parsed.Host == "" {
		c.add("source.url", "must be an absolute url")
	} else if src.Fetcher == FetcherHTTP && parsed.Scheme != "http" && parsed.Scheme != "https" {
		c.add("source.url", fmt.Sprintf("scheme %q is not supported by the http fetcher", parsed.Scheme))
	}
	switch src.Fetcher {
	case FetcherHTTP, FetcherWget:
	default:
		c.add("source.fetcher", fmt.Sprintf("unsupported fetcher %q (want %s or %s)", src.Fetcher, FetcherHTTP, FetcherWget))
	}
	if src.TimeoutSeconds < 0 {
		c.add("source.timeout_seconds", "must be >= 0")
	}
}

func validateWorkspace(c *issueCollector, ws spec.WorkspaceConfig) {
	if strings.TrimSpace(ws.Dir) == "" {
		c.add("workspace.dir", "is required")
	}
	checkBaseName(c, "workspace.archive_name", ws.ArchiveName)
	switch ws.Extractor {
	case ExtractorNative, ExtractorTar:
	default:
		c.add("workspace.extractor", fmt.Sprintf("unsupported extractor %q (want %s or %s)", ws.Extractor, ExtractorNative, ExtractorTar))
	}
}

func validateDataset(c *issueCollector, ds spec.DatasetConfig) {
	checkBaseName(c, "dataset.dir", ds.Dir)
	checkBaseName(c, "dataset.data_file", ds.DataFile)
	if ds.SubjectPrefix == "" {
		c.add("dataset.subject_prefix", "is required")
	}
	if _, err := dataset.LookupEncoding(ds.Encoding); err != nil {
		c.add("dataset.encoding", err.Error())
	}
	checkNonNegative(c, "dataset.header_lines", ds.HeaderLines)
	checkNonNegative(c, "dataset.question_column", ds.QuestionColumn)
	checkNonNegative(c, "dataset.answer_column", ds.AnswerColumn)
}

func checkBaseName(c *issueCollector, field, name string) {
	switch {
	case strings.TrimSpace(name) == "":
		c.add(field, "is required")
	case name == "." || name == ".." || strings.ContainsAny(name, `/\`):
		c.add(field, "must be a plain file name")
	}
}

func checkNonNegative(c *issueCollector, field string, value *int) {
	if value == nil {
		c.add(field, "is required")
		return
	}
	if *value < 0 {
		c.add(field, "must be >= 0")
	}
}

// removedByCleanup reports whether path names an entry the workspace
// cleanup deletes, or anything nested under one.
func removedByCleanup(cfg *spec.Config, path string) bool {
	if cfg.Workspace.Dir == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(cfg.Workspace.Dir), filepath.Clean(path))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	if first == cfg.Workspace.ArchiveName {
		return true
	}
	return cfg.Dataset.Dir != "" && strings.HasPrefix(first, cfg.Dataset.Dir)
}
