package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"wikiqa/internal/config"
	"wikiqa/internal/testutil"
)

// aProjectDirectoryConfigured creates a project whose config points at the
// scenario archive server and changes into it.
func (s *featureState) aProjectDirectoryConfigured() error {
	body := fmt.Sprintf(`version: 1
source:
  url: %q
workspace:
  dir: work
output:
  path: wikianswer_dataset.txt
`, s.serve())
	return s.enterProject(body)
}

func (s *featureState) aProjectDirectoryWithInvalidConfig() error {
	return s.enterProject("version: 1\ndataset:\n  answer_column: -1\n")
}

func (s *featureState) enterProject(configBody string) error {
	dir, err := os.MkdirTemp("", "wikiqa-feature-*")
	if err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	s.projectDir = dir
	path := config.ConfigPath(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(configBody), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	s.previousWD = wd
	return os.Chdir(dir)
}

// theArchiveContainsSubjects packs one subject per table row. A rows value
// of "none" leaves the subject without a data file.
func (s *featureState) theArchiveContainsSubjects(table *godog.Table) error {
	var subjects []testutil.Subject
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		name := strings.TrimSpace(row.Cells[0].Value)
		count := strings.TrimSpace(row.Cells[1].Value)
		if count == "none" {
			subjects = append(subjects, testutil.Subject{Name: name, NoDataFile: true})
			continue
		}
		n, err := strconv.Atoi(count)
		if err != nil {
			return fmt.Errorf("invalid row count %q", count)
		}
		subject := testutil.Subject{Name: name}
		for r := 1; r <= n; r++ {
			subject.Rows = append(subject.Rows, testutil.Row(name, fmt.Sprintf("%s question %d?", name, r), fmt.Sprintf("%s answer %d", name, r)))
		}
		subjects = append(subjects, subject)
	}
	return s.setArchive(testutil.DatasetFiles("Question_Answer_Dataset_v1.2", subjects))
}

// theArchiveContainsLatin1Subject writes a data file whose question uses
// \xNN escapes for raw latin-1 bytes.
func (s *featureState) theArchiveContainsLatin1Subject(name, question, answer string) error {
	raw, err := strconv.Unquote(`"` + question + `"`)
	if err != nil {
		return fmt.Errorf("decode question escapes: %w", err)
	}
	data := testutil.DataHeader + "\n" + strings.Join(testutil.Row(name, raw, answer), "\t") + "\n"
	return s.setArchive(testutil.DatasetFiles("Question_Answer_Dataset_v1.2", []testutil.Subject{
		{Name: name, Raw: []byte(data)},
	}))
}

func (s *featureState) theArchiveServerRespondsWith(status int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	return nil
}

func (s *featureState) staleTemporaryFiles() error {
	work := filepath.Join(s.projectDir, "work")
	for _, dir := range []string{"Question_Answer_Dataset/S08", "Question_Answer_Dataset_v1.2/S09"} {
		if err := os.MkdirAll(filepath.Join(work, dir), 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filepath.Join(work, "wikianswer.tar.gz"), []byte("stale"), 0o644)
}

func (s *featureState) setArchive(files map[string][]byte) error {
	data, err := testutil.PackTarGz(files)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archive = data
	return nil
}
