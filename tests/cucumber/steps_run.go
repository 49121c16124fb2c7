package cucumber

import (
	"fmt"
	"strings"

	"wikiqa/internal/cli"
)

// iRunCommand runs the CLI in-process, dropping a leading program name.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}
	if args[0] == "wikiqa" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}
