package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"wikiqa/internal/archive"
	"wikiqa/internal/catalog"
	"wikiqa/internal/command"
	"wikiqa/internal/dataset"
	"wikiqa/internal/testutil"
)

const testTimeout = 5 * time.Second

// archiveFetcher writes a prepared tarball instead of downloading.
type archiveFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *archiveFetcher) Fetch(_ context.Context, _ string, dest string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, f.data, 0o644)
}

// recordingObserver captures events in order.
type recordingObserver struct {
	events   []string
	subjects []SubjectEvent
	result   Result
	err      error
}

func (o *recordingObserver) OnBuildStart(_ uuid.UUID, url string) {
	o.events = append(o.events, "start "+url)
}

func (o *recordingObserver) OnStageStart(stage Stage) {
	o.events = append(o.events, "begin "+string(stage))
}

func (o *recordingObserver) OnStageEnd(stage Stage, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	o.events = append(o.events, "end "+string(stage)+" "+status)
}

func (o *recordingObserver) OnSubject(event SubjectEvent) {
	o.subjects = append(o.subjects, event)
}

func (o *recordingObserver) OnBuildEnd(result Result, err error) {
	o.result = result
	o.err = err
	o.events = append(o.events, "end build")
}

func rows(prefix string, n int) [][]string {
	out := make([][]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, testutil.Row("Title", fmt.Sprintf("%s question %d?", prefix, i), fmt.Sprintf("%s answer %d", prefix, i)))
	}
	return out
}

func newTestBuilder(t *testing.T, files map[string][]byte) (*Builder, *archiveFetcher, *bytes.Buffer) {
	t.Helper()
	enc, err := dataset.LookupEncoding(dataset.DefaultEncoding)
	if err != nil {
		t.Fatalf("lookup encoding: %v", err)
	}
	work := t.TempDir()
	fetcher := &archiveFetcher{data: testutil.TarGz(t, files)}
	stdout := &bytes.Buffer{}
	return &Builder{
		Workspace: Workspace{
			Dir:         work,
			ArchiveName: "wikianswer.tar.gz",
			DatasetDir:  "Question_Answer_Dataset",
		},
		SourceURL:     "http://example.invalid/Question_Answer_Dataset_v1.2.tar.gz",
		Fetcher:       fetcher,
		Extractor:     archive.TarGzExtractor{},
		SubjectPrefix: "S",
		Layout: dataset.Layout{
			DataFile:       testutil.DataFileName,
			HeaderLines:    1,
			QuestionColumn: 1,
			AnswerColumn:   2,
			Encoding:       enc,
		},
		OutputPath: filepath.Join(work, "wikianswer_dataset.txt"),
		Stdout:     stdout,
	}, fetcher, stdout
}

func assertWorkspaceClean(t *testing.T, ws Workspace) {
	t.Helper()
	entries, err := os.ReadDir(ws.Dir)
	if err != nil {
		t.Fatalf("read workspace: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() == ws.ArchiveName || strings.HasPrefix(entry.Name(), ws.DatasetDir) {
			t.Fatalf("expected %s to be cleaned up", entry.Name())
		}
	}
}

// TestBuildTwoSubjectsWritesTwelveLines verifies the end-to-end pipeline output.
func TestBuildTwoSubjectsWritesTwelveLines(t *testing.T) {
	files := testutil.DatasetFiles("Question_Answer_Dataset_v1.2", []testutil.Subject{
		{Name: "S09", Rows: rows("s09", 3)},
		{Name: "S08", Rows: rows("s08", 3)},
	})
	files["Question_Answer_Dataset_v1.2/README.v1.2"] = []byte("readme")
	b, _, stdout := newTestBuilder(t, files)
	observer := &recordingObserver{}
	b.Observer = observer

	result, err := b.Build(testutil.Context(t, testTimeout))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	lines := testutil.ReadLines(t, b.OutputPath)
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d: %q", len(lines), lines)
	}
	for i, prefix := range []string{"s08", "s08", "s08", "s09", "s09", "s09"} {
		n := i%3 + 1
		if lines[2*i] != fmt.Sprintf("%s question %d?", prefix, n) {
			t.Fatalf("line %d: unexpected question %q", 2*i, lines[2*i])
		}
		if lines[2*i+1] != fmt.Sprintf("%s answer %d", prefix, n) {
			t.Fatalf("line %d: unexpected answer %q", 2*i+1, lines[2*i+1])
		}
	}
	if got := stdout.String(); got != "Generated 6 question answer pairs\n" {
		t.Fatalf("unexpected report %q", got)
	}
	if result.Subjects != 2 || result.Pairs != 6 || result.Lines != 12 || result.BuildID == uuid.Nil {
		t.Fatalf("unexpected result %+v", result)
	}
	assertWorkspaceClean(t, b.Workspace)

	if len(observer.subjects) != 2 || observer.subjects[0].Name != "S08" || observer.subjects[1].Total != 2 {
		t.Fatalf("unexpected subject events %+v", observer.subjects)
	}
	wantEvents := []string{
		"start " + b.SourceURL,
		"begin prepare", "end prepare ok",
		"begin fetch", "end fetch ok",
		"begin extract", "end extract ok",
		"begin rename", "end rename ok",
		"begin discover", "end discover ok",
		"begin read", "end read ok",
		"begin write", "end write ok",
		"begin cleanup", "end cleanup ok",
		"end build",
	}
	if strings.Join(observer.events, "|") != strings.Join(wantEvents, "|") {
		t.Fatalf("unexpected events:\n%s", strings.Join(observer.events, "\n"))
	}
}

// TestBuildNoSubjectsLeavesOutputUntouched verifies the run stops before writing.
func TestBuildNoSubjectsLeavesOutputUntouched(t *testing.T) {
	files := map[string][]byte{
		"Question_Answer_Dataset_v1.2/":          nil,
		"Question_Answer_Dataset_v1.2/README":    []byte("readme"),
		"Question_Answer_Dataset_v1.2/data/set1/": nil,
	}
	b, _, stdout := newTestBuilder(t, files)
	if err := os.WriteFile(b.OutputPath, []byte("previous\n"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}

	_, err := b.Build(testutil.Context(t, testTimeout))
	if !errors.Is(err, dataset.ErrNoSubjects) {
		t.Fatalf("expected ErrNoSubjects, got %v", err)
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageDiscover {
		t.Fatalf("expected discover stage error, got %v", err)
	}
	data, readErr := os.ReadFile(b.OutputPath)
	if readErr != nil || string(data) != "previous\n" {
		t.Fatalf("expected output to be untouched, got %q (%v)", string(data), readErr)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no report, got %q", stdout.String())
	}
}

// TestBuildMissingDataFileWritesNothing verifies a structural mismatch aborts before output.
func TestBuildMissingDataFileWritesNothing(t *testing.T) {
	files := testutil.DatasetFiles("Question_Answer_Dataset_v1.2", []testutil.Subject{
		{Name: "S08", Rows: rows("s08", 2)},
		{Name: "S09", NoDataFile: true},
	})
	b, _, _ := newTestBuilder(t, files)

	_, err := b.Build(testutil.Context(t, testTimeout))
	var missing *dataset.MissingDataFileError
	if !errors.As(err, &missing) || missing.Subject != "S09" {
		t.Fatalf("expected MissingDataFileError for S09, got %v", err)
	}
	if _, statErr := os.Stat(b.OutputPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output file, got %v", statErr)
	}
}

// TestBuildPropagatesFetchExitError verifies external command failures surface typed.
func TestBuildPropagatesFetchExitError(t *testing.T) {
	b, fetcher, _ := newTestBuilder(t, nil)
	fetcher.err = &command.ExitError{Command: "wget -O x y", Code: 8, Output: "404 Not Found"}

	_, err := b.Build(testutil.Context(t, testTimeout))
	var exitErr *command.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 8 {
		t.Fatalf("expected ExitError, got %v", err)
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageFetch {
		t.Fatalf("expected fetch stage error, got %v", err)
	}
}

// TestBuildClearsStaleArtifacts verifies leftovers from a failed run do not break the next one.
func TestBuildClearsStaleArtifacts(t *testing.T) {
	files := testutil.DatasetFiles("Question_Answer_Dataset_v1.2", []testutil.Subject{
		{Name: "S08", Rows: rows("s08", 1)},
	})
	b, _, _ := newTestBuilder(t, files)
	testutil.WriteTree(t, b.Workspace.Dir, map[string][]byte{
		"Question_Answer_Dataset_v1.1/S01/": nil,
		"Question_Answer_Dataset/S02/":      nil,
		"wikianswer.tar.gz":                 []byte("stale"),
	})

	if _, err := b.Build(testutil.Context(t, testTimeout)); err != nil {
		t.Fatalf("build: %v", err)
	}
	if lines := testutil.ReadLines(t, b.OutputPath); len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	assertWorkspaceClean(t, b.Workspace)
}

// TestBuildRecordsCatalog verifies the catalog receives one build and every pair.
func TestBuildRecordsCatalog(t *testing.T) {
	ctx := testutil.Context(t, testTimeout)
	files := testutil.DatasetFiles("Question_Answer_Dataset_v1.2", []testutil.Subject{
		{Name: "S08", Rows: rows("s08", 2)},
		{Name: "S10", Rows: rows("s10", 1)},
	})
	b, _, _ := newTestBuilder(t, files)
	cat, err := catalog.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })
	b.Catalog = cat

	result, err := b.Build(ctx)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	builds, err := cat.Builds(ctx)
	if err != nil {
		t.Fatalf("list builds: %v", err)
	}
	if len(builds) != 1 || builds[0].ID != result.BuildID || builds[0].PairCount != 3 {
		t.Fatalf("unexpected builds %+v", builds)
	}
	pairs, err := cat.Pairs(ctx, result.BuildID)
	if err != nil {
		t.Fatalf("list pairs: %v", err)
	}
	if len(pairs) != 3 || pairs[2].Subject != "S10" || pairs[2].Question != "s10 question 1?" {
		t.Fatalf("unexpected pairs %+v", pairs)
	}
}

// TestBuildCancelled verifies a cancelled context stops the pipeline.
func TestBuildCancelled(t *testing.T) {
	b, fetcher, _ := newTestBuilder(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("expected no fetch after cancellation")
	}
}

// TestBuildRequiresCollaborators verifies missing wiring is reported before any stage runs.
func TestBuildRequiresCollaborators(t *testing.T) {
	_, err := (&Builder{}).Build(context.Background())
	if err == nil || !strings.Contains(err.Error(), "fetcher is required") {
		t.Fatalf("expected wiring error, got %v", err)
	}
}
