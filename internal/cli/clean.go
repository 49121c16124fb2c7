package cli

import (
	"flag"
	"fmt"
	"io"
)

// runClean builds the handler for the clean command.
func runClean(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .wikiqa/config.yml)")
		workDir := flags.String("work-dir", "", "Override the directory for temporary files")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		cfg, err := loadConfig(*specPath, overrides{workDir: *workDir})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		ws := workspaceFor(cfg)
		if err := ws.Cleanup(); err != nil {
			fmt.Fprintf(stderr, "Clean failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Cleaned %s\n", ws.Dir)
		return ExitOK
	}
}
