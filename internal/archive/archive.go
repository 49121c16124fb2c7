// Package archive unpacks the downloaded dataset tarball and settles its
// release-specific root directory under a fixed name.
package archive

import (
	"context"
	"fmt"
	"strings"
)

// Extractor unpacks the archive at path into dir.
type Extractor interface {
	Extract(ctx context.Context, path, dir string) error
}

// UnsafePathError reports an archive entry that would land outside the destination.
type UnsafePathError struct {
	Entry string
}

func (err *UnsafePathError) Error() string {
	return fmt.Sprintf("archive entry %q escapes the destination directory", err.Entry)
}

// LayoutError reports that the extracted tree does not have exactly one
// root entry matching the expected dataset prefix.
type LayoutError struct {
	Dir     string
	Prefix  string
	Matches []string
}

func (err *LayoutError) Error() string {
	if len(err.Matches) == 0 {
		return fmt.Sprintf("no extracted entry matching %q* in %s", err.Prefix, err.Dir)
	}
	return fmt.Sprintf("expected one extracted entry matching %q* in %s, found %d: %s",
		err.Prefix, err.Dir, len(err.Matches), strings.Join(err.Matches, ", "))
}
