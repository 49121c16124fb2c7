package fetch

import (
	"context"
	"fmt"
	"path/filepath"

	"wikiqa/internal/command"
)

// CommandFetcher downloads with an external wget, as the original build script did.
type CommandFetcher struct {
	Runner command.Runner
}

// Fetch runs `wget -O dest url`. A non-zero exit surfaces as *command.ExitError.
func (f CommandFetcher) Fetch(ctx context.Context, url, dest string) error {
	if f.Runner == nil {
		return fmt.Errorf("command runner is required")
	}
	return f.Runner.Run(ctx, filepath.Dir(dest), "wget", "-O", dest, url)
}
