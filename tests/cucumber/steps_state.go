package cucumber

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"

	"github.com/cucumber/godog"
)

const archivePath = "/QA-data/data/Question_Answer_Dataset_v1.2.tar.gz"

// featureState holds scenario state for cucumber CLI tests.
type featureState struct {
	projectDir string
	previousWD string
	server     *httptest.Server

	mu      sync.Mutex
	archive []byte
	status  int

	stdout   bytes.Buffer
	stderr   bytes.Buffer
	exitCode int
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a project directory configured for wikiqa$`, state.aProjectDirectoryConfigured)
	ctx.Step(`^a project directory with an invalid config$`, state.aProjectDirectoryWithInvalidConfig)
	ctx.Step(`^the archive contains subjects:$`, state.theArchiveContainsSubjects)
	ctx.Step(`^the archive contains a latin-1 subject "([^"]+)" asking "([^"]+)" answered "([^"]+)"$`, state.theArchiveContainsLatin1Subject)
	ctx.Step(`^the archive server responds with (\d+)$`, state.theArchiveServerRespondsWith)
	ctx.Step(`^stale temporary files in the work directory$`, state.staleTemporaryFiles)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is (\d+)$`, state.theExitCodeIs)
	ctx.Step(`^stdout contains "([^"]+)"$`, state.stdoutContains)
	ctx.Step(`^stderr contains "([^"]+)"$`, state.stderrContains)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the output file has (\d+) lines alternating questions and answers$`, state.theOutputFileAlternates)
	ctx.Step(`^the output file contains the line "([^"]+)"$`, state.theOutputFileContainsLine)
	ctx.Step(`^no output file exists$`, state.noOutputFileExists)
	ctx.Step(`^the work directory holds no temporary files$`, state.theWorkDirectoryIsClean)
}

// reset clears buffers and resets state before each scenario.
func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.projectDir = ""
	s.previousWD = ""
	s.archive = nil
	s.status = http.StatusOK
}

// cleanup restores the working directory and removes temporary files.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.server != nil {
		s.server.Close()
		s.server = nil
	}
	if s.projectDir != "" {
		_ = os.RemoveAll(s.projectDir)
	}
}

// serve starts the archive server on first use.
func (s *featureState) serve() string {
	if s.server == nil {
		s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			status, archive := s.status, s.archive
			s.mu.Unlock()
			if r.URL.Path != archivePath || status != http.StatusOK {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			_, _ = w.Write(archive)
		}))
	}
	return s.server.URL + archivePath
}
