package testutil

import (
	"archive/tar"
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// DataFileName matches the data file name used by the published dataset.
const DataFileName = "question_answer_pairs.txt"

// DataHeader is the header row of a published data file.
const DataHeader = "ArticleTitle\tQuestion\tAnswer\tDifficultyFromQuestioner\tDifficultyFromAnswerer\tArticleFile"

// Subject describes one subject directory of a fixture dataset.
type Subject struct {
	Name string
	Rows [][]string
	// Raw replaces the rendered header and rows when set.
	Raw []byte
	// NoDataFile leaves the subject directory empty.
	NoDataFile bool
}

// Row builds a six-column data row with the given question and answer.
func Row(title, question, answer string) []string {
	return []string{title, question, answer, "easy", "easy", "data/set1/a1"}
}

// DatasetFiles renders subjects into a map of slash-separated relative paths
// to file contents, rooted at root.
func DatasetFiles(root string, subjects []Subject) map[string][]byte {
	files := map[string][]byte{}
	for _, subject := range subjects {
		dir := path.Join(root, subject.Name)
		if subject.NoDataFile {
			files[dir+"/"] = nil
			continue
		}
		content := subject.Raw
		if content == nil {
			var buf bytes.Buffer
			buf.WriteString(DataHeader + "\n")
			for _, row := range subject.Rows {
				buf.WriteString(strings.Join(row, "\t") + "\n")
			}
			content = buf.Bytes()
		}
		files[path.Join(dir, DataFileName)] = content
	}
	return files
}

// WriteTree materializes files under dir. Keys ending in "/" create empty directories.
func WriteTree(t testing.TB, dir string, files map[string][]byte) {
	t.Helper()
	for _, name := range sortedKeys(files) {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(target, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(name), err)
		}
		if err := os.WriteFile(target, files[name], 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// TarGz packs files into a gzip-compressed tarball. Keys ending in "/" become directory entries.
func TarGz(t testing.TB, files map[string][]byte) []byte {
	t.Helper()
	data, err := PackTarGz(files)
	if err != nil {
		t.Fatalf("pack archive: %v", err)
	}
	return data
}

// PackTarGz is TarGz for callers without a testing.TB.
func PackTarGz(files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, name := range sortedKeys(files) {
		if strings.HasSuffix(name, "/") {
			if err := tw.WriteHeader(&tar.Header{Name: name, Typeflag: tar.TypeDir, Mode: 0o755}); err != nil {
				return nil, fmt.Errorf("tar dir header %s: %w", name, err)
			}
			continue
		}
		content := files[name]
		header := &tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content))}
		if err := tw.WriteHeader(header); err != nil {
			return nil, fmt.Errorf("tar header %s: %w", name, err)
		}
		if _, err := tw.Write(content); err != nil {
			return nil, fmt.Errorf("tar write %s: %w", name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("close tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("close gzip: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadLines returns the newline-terminated lines of a file without their terminators.
func ReadLines(t testing.TB, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	text := string(data)
	if text == "" {
		return nil
	}
	if !strings.HasSuffix(text, "\n") {
		t.Fatalf("%s does not end with a newline", path)
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func sortedKeys(files map[string][]byte) []string {
	keys := make([]string, 0, len(files))
	for key := range files {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
