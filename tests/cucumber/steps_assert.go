package cucumber

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cucumber/godog"

	"wikiqa/internal/config"
)

func (s *featureState) theExitCodeIs(code int) error {
	if s.exitCode != code {
		return fmt.Errorf("expected exit code %d, got %d\nstdout:\n%s\nstderr:\n%s", code, s.exitCode, s.stdout.String(), s.stderr.String())
	}
	return nil
}

func (s *featureState) stdoutContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("stdout missing %q:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) stderrContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("stderr missing %q:\n%s", text, s.stderr.String())
	}
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String() + s.stderr.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			name := strings.TrimSpace(cell.Value)
			if !strings.Contains(output, name) {
				return fmt.Errorf("help output missing command %q:\n%s", name, output)
			}
		}
	}
	return nil
}

// theOutputFileAlternates checks the line count and that questions sit on
// even indexes with their answers right after them.
func (s *featureState) theOutputFileAlternates(count int) error {
	lines, err := s.outputLines()
	if err != nil {
		return err
	}
	if len(lines) != count {
		return fmt.Errorf("expected %d lines, got %d: %q", count, len(lines), lines)
	}
	for i := 0; i+1 < len(lines); i += 2 {
		question, answer := lines[i], lines[i+1]
		if !strings.HasSuffix(question, "?") {
			return fmt.Errorf("line %d is not a question: %q", i+1, question)
		}
		if strings.Replace(question, "question", "answer", 1) != answer+"?" {
			return fmt.Errorf("line %d answer %q does not follow question %q", i+2, answer, question)
		}
	}
	return nil
}

func (s *featureState) theOutputFileContainsLine(line string) error {
	lines, err := s.outputLines()
	if err != nil {
		return err
	}
	if !slices.Contains(lines, line) {
		return fmt.Errorf("output missing line %q: %q", line, lines)
	}
	return nil
}

func (s *featureState) noOutputFileExists() error {
	_, err := os.Stat(s.outputPath())
	if err == nil {
		return fmt.Errorf("output file %s exists", s.outputPath())
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat output: %w", err)
	}
	return nil
}

// theWorkDirectoryIsClean checks that no archive or dataset tree remains.
func (s *featureState) theWorkDirectoryIsClean() error {
	entries, err := os.ReadDir(filepath.Join(s.projectDir, "work"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read work dir: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if name == config.DefaultArchiveName || strings.HasPrefix(name, config.DefaultDatasetDir) {
			return fmt.Errorf("work dir still holds %s", name)
		}
	}
	return nil
}

func (s *featureState) outputPath() string {
	return filepath.Join(s.projectDir, "wikianswer_dataset.txt")
}

func (s *featureState) outputLines() ([]string, error) {
	data, err := os.ReadFile(s.outputPath())
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
