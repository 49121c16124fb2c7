package config

import (
	"path/filepath"
	"strings"

	"wikiqa/internal/dataset"
	"wikiqa/internal/spec"
)

// Normalize fills defaults, maps the release to its URL, and resolves
// relative paths against baseDir.
func Normalize(cfg *spec.Config, baseDir string) {
	src := &cfg.Source
	src.Release = strings.TrimSpace(src.Release)
	src.URL = strings.TrimSpace(src.URL)
	if src.URL == "" {
		if src.Release == "" {
			src.Release = DefaultRelease
		}
		src.URL = Releases[src.Release]
	}
	src.Fetcher = defaultString(src.Fetcher, DefaultFetcher)

	ws := &cfg.Workspace
	ws.Dir = resolvePath(baseDir, defaultString(ws.Dir, "."))
	ws.ArchiveName = defaultString(ws.ArchiveName, DefaultArchiveName)
	ws.Extractor = defaultString(ws.Extractor, DefaultExtractor)

	ds := &cfg.Dataset
	ds.Dir = defaultString(ds.Dir, DefaultDatasetDir)
	ds.DataFile = defaultString(ds.DataFile, DefaultDataFile)
	ds.SubjectPrefix = defaultString(ds.SubjectPrefix, DefaultSubjectPrefix)
	ds.Encoding = defaultString(ds.Encoding, dataset.DefaultEncoding)
	ds.HeaderLines = defaultInt(ds.HeaderLines, DefaultHeaderLines)
	ds.QuestionColumn = defaultInt(ds.QuestionColumn, DefaultQuestionColumn)
	ds.AnswerColumn = defaultInt(ds.AnswerColumn, DefaultAnswerColumn)

	cfg.Output.Path = resolvePath(baseDir, defaultString(cfg.Output.Path, DefaultOutputPath))
	if strings.TrimSpace(cfg.Catalog.Path) != "" {
		cfg.Catalog.Path = resolvePath(baseDir, cfg.Catalog.Path)
	}
}

func defaultString(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func defaultInt(value *int, fallback int) *int {
	if value != nil {
		return value
	}
	v := fallback
	return &v
}

func resolvePath(baseDir, path string) string {
	path = strings.TrimSpace(path)
	if filepath.IsAbs(path) || baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
