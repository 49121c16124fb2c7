package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Subject is one topic directory of the dataset.
type Subject struct {
	Name string
	Dir  string
}

// DiscoverSubjects lists the directories directly under datasetDir whose
// name starts with prefix, ordered by name.
func DiscoverSubjects(datasetDir, prefix string) ([]Subject, error) {
	entries, err := os.ReadDir(datasetDir)
	if err != nil {
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}
	var subjects []Subject
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		dir := filepath.Join(datasetDir, name)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		subjects = append(subjects, Subject{Name: name, Dir: dir})
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("%w in %s (prefix %q)", ErrNoSubjects, datasetDir, prefix)
	}
	return subjects, nil
}

// DataFilePath returns the subject's data file path, or a
// MissingDataFileError when it is absent or not a regular file.
func DataFilePath(subject Subject, dataFile string) (string, error) {
	path := filepath.Join(subject.Dir, dataFile)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &MissingDataFileError{Subject: subject.Name, Path: path}
		}
		return "", fmt.Errorf("stat data file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", &MissingDataFileError{Subject: subject.Name, Path: path}
	}
	return path, nil
}
