package archive

import (
	"context"
	"fmt"

	"wikiqa/internal/command"
)

// CommandExtractor unpacks with the system tar binary.
type CommandExtractor struct {
	Runner command.Runner
}

// Extract runs `tar -xz -f path -C dir`. A non-zero exit surfaces as *command.ExitError.
func (e CommandExtractor) Extract(ctx context.Context, path, dir string) error {
	if e.Runner == nil {
		return fmt.Errorf("command runner is required")
	}
	return e.Runner.Run(ctx, dir, "tar", "-xz", "-f", path, "-C", dir)
}
