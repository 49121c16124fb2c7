package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace names the temporary artifacts a build creates under Dir.
type Workspace struct {
	Dir         string
	ArchiveName string
	DatasetDir  string
}

// ArchivePath is where the downloaded tarball is stored.
func (w Workspace) ArchivePath() string {
	return filepath.Join(w.Dir, w.ArchiveName)
}

// DatasetPath is the extracted dataset root after renaming.
func (w Workspace) DatasetPath() string {
	return filepath.Join(w.Dir, w.DatasetDir)
}

// Cleanup removes the archive and every entry of Dir whose name starts with
// DatasetDir. Missing entries, including a missing Dir, are not errors.
func (w Workspace) Cleanup() error {
	if w.Dir == "" || w.ArchiveName == "" || w.DatasetDir == "" {
		return fmt.Errorf("workspace is incomplete: dir=%q archive=%q dataset=%q", w.Dir, w.ArchiveName, w.DatasetDir)
	}
	if err := os.RemoveAll(w.ArchivePath()); err != nil {
		return fmt.Errorf("remove archive: %w", err)
	}
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read workspace: %w", err)
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), w.DatasetDir) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(w.Dir, entry.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}
