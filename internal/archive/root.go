package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NormalizeRoot renames the single entry of dir whose name starts with name
// (for example "Question_Answer_Dataset_v1.2") to exactly name, and returns
// the resulting path. Entries listed in exclude are ignored.
func NormalizeRoot(dir, name string, exclude ...string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read extract dir: %w", err)
	}
	skip := map[string]struct{}{}
	for _, e := range exclude {
		skip[e] = struct{}{}
	}
	var matches []string
	for _, entry := range entries {
		if _, ok := skip[entry.Name()]; ok {
			continue
		}
		if strings.HasPrefix(entry.Name(), name) {
			matches = append(matches, entry.Name())
		}
	}
	if len(matches) != 1 {
		return "", &LayoutError{Dir: dir, Prefix: name, Matches: matches}
	}
	target := filepath.Join(dir, name)
	if matches[0] == name {
		return target, nil
	}
	if err := os.Rename(filepath.Join(dir, matches[0]), target); err != nil {
		return "", fmt.Errorf("rename extracted root: %w", err)
	}
	return target, nil
}
