package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"wikiqa/internal/archive"
	"wikiqa/internal/builder"
	"wikiqa/internal/catalog"
	"wikiqa/internal/command"
	"wikiqa/internal/config"
	"wikiqa/internal/dataset"
	"wikiqa/internal/fetch"
	"wikiqa/internal/spec"
)

// workspaceFor maps config onto the builder workspace.
func workspaceFor(cfg spec.Config) builder.Workspace {
	return builder.Workspace{
		Dir:         cfg.Workspace.Dir,
		ArchiveName: cfg.Workspace.ArchiveName,
		DatasetDir:  cfg.Dataset.Dir,
	}
}

// newBuilder wires a builder from a validated config. External commands
// write their output to commandOutput. The returned close func releases the
// catalog when one is configured.
func newBuilder(ctx context.Context, cfg spec.Config, commandOutput io.Writer, progress fetch.ProgressFunc) (*builder.Builder, func() error, error) {
	enc, err := dataset.LookupEncoding(cfg.Dataset.Encoding)
	if err != nil {
		return nil, nil, err
	}
	runner := command.ExecRunner{Output: commandOutput}

	var fetcher fetch.Fetcher
	switch cfg.Source.Fetcher {
	case config.FetcherWget:
		fetcher = fetch.CommandFetcher{Runner: runner}
	default:
		fetcher = fetch.HTTPFetcher{Progress: progress}
	}
	var extractor archive.Extractor
	switch cfg.Workspace.Extractor {
	case config.ExtractorTar:
		extractor = archive.CommandExtractor{Runner: runner}
	default:
		extractor = archive.TarGzExtractor{}
	}

	b := &builder.Builder{
		Workspace:     workspaceFor(cfg),
		SourceURL:     cfg.Source.URL,
		Fetcher:       fetcher,
		Extractor:     extractor,
		FetchTimeout:  time.Duration(cfg.Source.TimeoutSeconds) * time.Second,
		SubjectPrefix: cfg.Dataset.SubjectPrefix,
		Layout: dataset.Layout{
			DataFile:       cfg.Dataset.DataFile,
			HeaderLines:    *cfg.Dataset.HeaderLines,
			QuestionColumn: *cfg.Dataset.QuestionColumn,
			AnswerColumn:   *cfg.Dataset.AnswerColumn,
			Encoding:       enc,
		},
		OutputPath: cfg.Output.Path,
	}
	closeFn := func() error { return nil }
	if cfg.Catalog.Path != "" {
		cat, err := catalog.Open(ctx, cfg.Catalog.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog: %w", err)
		}
		b.Catalog = cat
		closeFn = cat.Close
	}
	return b, closeFn, nil
}
