package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wikiqa/internal/builder"
	"wikiqa/internal/testutil"
	"wikiqa/internal/ui/live"
)

// TestBuildCommandWritesDataset verifies the build command end to end in plain mode.
func TestBuildCommandWritesDataset(t *testing.T) {
	server := datasetServer(t)
	root := t.TempDir()
	specPath := writeProjectConfig(t, root, server.URL+archivePath)

	var out, errOut bytes.Buffer
	code := Run([]string{"build", "--spec", specPath, "--ui", "plain", "--log-level", "error"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	if !strings.Contains(out.String(), "Generated 6 question answer pairs\n") {
		t.Fatalf("expected pair count report, got %q", out.String())
	}
	outputPath := filepath.Join(root, "out", "wikianswer_dataset.txt")
	lines := testutil.ReadLines(t, outputPath)
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	if lines[0] != "Was Lincoln a lawyer?" || lines[1] != "yes" || lines[11] != "no" {
		t.Fatalf("unexpected lines %q", lines)
	}
	entries, err := os.ReadDir(filepath.Join(root, "work"))
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty work dir, found %d entries", len(entries))
	}
}

// TestBuildCommandDefaultsWithoutConfig verifies defaults apply in the working directory.
func TestBuildCommandDefaultsWithoutConfig(t *testing.T) {
	server := datasetServer(t)
	dir := t.TempDir()
	t.Chdir(dir)

	var out, errOut bytes.Buffer
	code := Run([]string{"build", "--url", server.URL + archivePath, "--ui", "plain", "--log-format", "json"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	if lines := testutil.ReadLines(t, filepath.Join(dir, "wikianswer_dataset.txt")); len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	if !strings.Contains(errOut.String(), `"msg":"build finished"`) {
		t.Fatalf("expected json build log, got %q", errOut.String())
	}
}

// TestBuildCommandReportsHTTPFailure verifies a 404 fails the build with exit 1.
func TestBuildCommandReportsHTTPFailure(t *testing.T) {
	server := datasetServer(t)
	root := t.TempDir()
	specPath := writeProjectConfig(t, root, server.URL+"/missing.tar.gz")

	var out, errOut bytes.Buffer
	code := Run([]string{"build", "--spec", specPath, "--ui", "plain", "--log-level", "error"}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "Build failed: fetch:") || !strings.Contains(errOut.String(), "404") {
		t.Fatalf("expected fetch failure, got %q", errOut.String())
	}
	if _, err := os.Stat(filepath.Join(root, "out", "wikianswer_dataset.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, got %v", err)
	}
}

// TestBuildCommandRejectsInvalidFlags verifies usage errors exit with 2.
func TestBuildCommandRejectsInvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"build", "--ui", "fancy"},
		{"build", "--log-format", "xml", "--ui", "plain"},
		{"build", "--bogus"},
	} {
		var out, errOut bytes.Buffer
		if code := Run(args, &out, &errOut); code != ExitUsage {
			t.Fatalf("%v: expected exit %d, got %d", args, ExitUsage, code)
		}
	}
}

// fakeLive records observer calls in place of the Bubble Tea UI.
type fakeLive struct {
	builder.NopObserver
	stages   []builder.Stage
	progress int
	ended    bool
	endErr   error

	// interruptAt triggers the UI interrupt hook when the stage starts.
	interruptAt builder.Stage
	interrupt   func()
}

func (f *fakeLive) OnStageStart(stage builder.Stage) {
	f.stages = append(f.stages, stage)
	if stage == f.interruptAt && f.interrupt != nil {
		f.interrupt()
	}
}
func (f *fakeLive) OnBuildEnd(_ builder.Result, err error)  { f.ended, f.endErr = true, err }
func (f *fakeLive) OnDownloadProgress(written, total int64) { f.progress++ }
func (f *fakeLive) Wait()                                   {}

// TestBuildCommandLiveMode verifies live mode drives the observer and defers the report.
func TestBuildCommandLiveMode(t *testing.T) {
	server := datasetServer(t)
	root := t.TempDir()
	specPath := writeProjectConfig(t, root, server.URL+archivePath)

	originalTerminal, originalStart := isTerminal, startLive
	t.Cleanup(func() { isTerminal, startLive = originalTerminal, originalStart })
	isTerminal = func(io.Writer) bool { return true }
	ui := &fakeLive{}
	startLive = func(io.Writer, live.Options) liveUI { return ui }

	var out, errOut bytes.Buffer
	code := Run([]string{"build", "--spec", specPath, "--ui", "live"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	if !ui.ended || ui.progress == 0 || len(ui.stages) != 8 {
		t.Fatalf("unexpected observer calls: %+v", ui)
	}
	if !strings.HasPrefix(out.String(), "Generated 6 question answer pairs\n") {
		t.Fatalf("expected report after UI exit, got %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected quiet logs in live mode, got %q", errOut.String())
	}
}

// TestBuildCommandLiveInterruptCancelsBuild verifies the live view's interrupt
// hook cancels the running build.
func TestBuildCommandLiveInterruptCancelsBuild(t *testing.T) {
	server := datasetServer(t)
	root := t.TempDir()
	specPath := writeProjectConfig(t, root, server.URL+archivePath)

	originalTerminal, originalStart := isTerminal, startLive
	t.Cleanup(func() { isTerminal, startLive = originalTerminal, originalStart })
	isTerminal = func(io.Writer) bool { return true }
	ui := &fakeLive{interruptAt: builder.StageExtract}
	startLive = func(_ io.Writer, opts live.Options) liveUI {
		ui.interrupt = opts.OnInterrupt
		return ui
	}

	var out, errOut bytes.Buffer
	code := Run([]string{"build", "--spec", specPath, "--ui", "live"}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !errors.Is(ui.endErr, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", ui.endErr)
	}
	if _, err := os.Stat(filepath.Join(root, "out", "wikianswer_dataset.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected no output after interrupt, got %v", err)
	}
}

// TestBuildCommandRejectsOutputInsideCleanupEntry verifies an output nested
// under a dataset-prefixed workspace entry is refused before the build runs.
func TestBuildCommandRejectsOutputInsideCleanupEntry(t *testing.T) {
	server := datasetServer(t)
	root := t.TempDir()
	specPath := writeProjectConfig(t, root, server.URL+archivePath)
	output := filepath.Join(root, "work", "Question_Answer_Dataset_out", "qa.txt")

	var out, errOut bytes.Buffer
	code := Run([]string{"build", "--spec", specPath, "--ui", "plain", "--output", output}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitError, code, errOut.String())
	}
	if !strings.Contains(errOut.String(), "output.path") {
		t.Fatalf("expected output.path issue, got %q", errOut.String())
	}
	if _, err := os.Stat(filepath.Join(root, "work")); !os.IsNotExist(err) {
		t.Fatalf("expected build not to start, got %v", err)
	}
}
