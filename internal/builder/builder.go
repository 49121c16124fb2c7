// Package builder turns the published question/answer archive into a flat
// file of alternating question and answer lines.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wikiqa/internal/archive"
	"wikiqa/internal/catalog"
	"wikiqa/internal/dataset"
	"wikiqa/internal/fetch"
	"wikiqa/internal/logging"
	"wikiqa/internal/output"
)

// Recorder persists a finished build.
type Recorder interface {
	RecordBuild(ctx context.Context, build catalog.Build, pairs []dataset.Pair) error
}

// Result summarizes a successful build.
type Result struct {
	BuildID    uuid.UUID
	SourceURL  string
	OutputPath string
	Subjects   int
	Pairs      int
	Lines      int
	Duration   time.Duration
}

// Builder runs the fetch, extract, read and write pipeline once per Build call.
type Builder struct {
	Workspace     Workspace
	SourceURL     string
	Fetcher       fetch.Fetcher
	Extractor     archive.Extractor
	FetchTimeout  time.Duration
	SubjectPrefix string
	Layout        dataset.Layout
	OutputPath    string

	// Catalog is optional.
	Catalog  Recorder
	Observer Observer
	// Stdout receives the pair count report.
	Stdout io.Writer
	Now    func() time.Time
}

// Build runs every stage in order and stops at the first failure. The
// workspace is cleaned before starting and after success; on failure the
// intermediate artifacts are left in place for inspection. The output file
// is only written once every subject has been read.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	if err := b.check(); err != nil {
		return Result{}, err
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}
	observer := b.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	started := now()
	result := Result{
		BuildID:    uuid.New(),
		SourceURL:  b.SourceURL,
		OutputPath: b.OutputPath,
	}
	logger := logging.FromContext(ctx).With(zap.String("build_id", result.BuildID.String()))
	ctx = logging.WithLogger(ctx, logger)

	observer.OnBuildStart(result.BuildID, b.SourceURL)
	logger.Info("build started", zap.String("url", b.SourceURL), zap.String("workspace", b.Workspace.Dir))
	err := b.run(ctx, observer, &result, started)
	result.Duration = now().Sub(started)
	if err != nil {
		logger.Error("build failed", zap.Error(err))
	} else {
		logger.Info("build finished",
			zap.Int("subjects", result.Subjects),
			zap.Int("pairs", result.Pairs),
			zap.Duration("duration", result.Duration),
		)
	}
	observer.OnBuildEnd(result, err)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (b *Builder) run(ctx context.Context, observer Observer, result *Result, started time.Time) error {
	stage := func(s Stage, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return &StageError{Stage: s, Err: err}
		}
		observer.OnStageStart(s)
		logging.FromContext(ctx).Debug("stage started", zap.String("stage", string(s)))
		err := fn()
		if err != nil {
			err = &StageError{Stage: s, Err: err}
		}
		observer.OnStageEnd(s, err)
		return err
	}

	if err := stage(StagePrepare, b.Workspace.Cleanup); err != nil {
		return err
	}
	if err := stage(StageFetch, func() error { return b.fetch(ctx) }); err != nil {
		return err
	}
	if err := stage(StageExtract, func() error {
		return b.Extractor.Extract(ctx, b.Workspace.ArchivePath(), b.Workspace.Dir)
	}); err != nil {
		return err
	}
	if err := stage(StageRename, func() error {
		_, err := archive.NormalizeRoot(b.Workspace.Dir, b.Workspace.DatasetDir, b.Workspace.ArchiveName)
		return err
	}); err != nil {
		return err
	}
	var subjects []dataset.Subject
	if err := stage(StageDiscover, func() error {
		found, err := dataset.DiscoverSubjects(b.Workspace.DatasetPath(), b.SubjectPrefix)
		subjects = found
		return err
	}); err != nil {
		return err
	}
	var pairs []dataset.Pair
	if err := stage(StageRead, func() error {
		index := 0
		read, err := dataset.ReadPairs(ctx, subjects, b.Layout, func(subject dataset.Subject, subjectPairs []dataset.Pair) {
			index++
			observer.OnSubject(SubjectEvent{Index: index, Total: len(subjects), Name: subject.Name, Pairs: len(subjectPairs)})
		})
		pairs = read
		return err
	}); err != nil {
		return err
	}
	result.Subjects = len(subjects)
	result.Pairs = len(pairs)

	if _, err := fmt.Fprintf(b.stdout(), "Generated %d question answer pairs\n", len(pairs)); err != nil {
		return fmt.Errorf("report pair count: %w", err)
	}

	lines := dataset.Lines(pairs)
	if err := stage(StageWrite, func() error { return output.WriteLines(b.OutputPath, lines) }); err != nil {
		return err
	}
	result.Lines = len(lines)

	if b.Catalog != nil {
		build := catalog.Build{
			ID:         result.BuildID,
			SourceURL:  b.SourceURL,
			OutputPath: b.OutputPath,
			CreatedAt:  started.UTC(),
		}
		if err := stage(StageCatalog, func() error { return b.Catalog.RecordBuild(ctx, build, pairs) }); err != nil {
			return err
		}
	}

	return stage(StageCleanup, b.Workspace.Cleanup)
}

func (b *Builder) fetch(ctx context.Context) error {
	if err := os.MkdirAll(b.Workspace.Dir, 0o755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	if b.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.FetchTimeout)
		defer cancel()
	}
	return b.Fetcher.Fetch(ctx, b.SourceURL, b.Workspace.ArchivePath())
}

func (b *Builder) check() error {
	var missing []error
	if b.Fetcher == nil {
		missing = append(missing, errors.New("fetcher is required"))
	}
	if b.Extractor == nil {
		missing = append(missing, errors.New("extractor is required"))
	}
	if b.SourceURL == "" {
		missing = append(missing, errors.New("source url is required"))
	}
	if b.OutputPath == "" {
		missing = append(missing, errors.New("output path is required"))
	}
	return errors.Join(missing...)
}

func (b *Builder) stdout() io.Writer {
	if b.Stdout == nil {
		return io.Discard
	}
	return b.Stdout
}
