package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"wikiqa/internal/builder"
	"wikiqa/internal/fetch"
	"wikiqa/internal/logging"
	"wikiqa/internal/ui/live"
)

// startLive launches the live UI; tests replace it.
var startLive = func(stdout io.Writer, opts live.Options) liveUI {
	return live.Start(stdout, opts)
}

// liveUI is the part of live.Controller the build command drives.
type liveUI interface {
	builder.Observer
	OnDownloadProgress(written, total int64)
	Wait()
}

// runBuild builds the handler for the build command.
func runBuild(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .wikiqa/config.yml)")
		url := flags.String("url", "", "Override the archive URL")
		outputPath := flags.String("output", "", "Override the output file path")
		workDir := flags.String("work-dir", "", "Override the directory for temporary files")
		uiMode := flags.String("ui", "auto", "Console UI mode: auto|live|plain")
		noColor := flags.Bool("no-color", false, "Disable ANSI colors in live UI")
		logLevel := flags.String("log-level", "info", "Log level: debug|info|warn|error")
		logFormat := flags.String("log-format", "console", "Log format: console|json")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		decision, err := resolveUIMode(*uiMode, *logLevel == "debug", stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}
		level := *logLevel
		if decision.useLive && !flagWasSet(flags, "log-level") {
			level = "warn"
		}
		logger, err := logging.New(level, *logFormat, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		defer func() { _ = logger.Sync() }()

		cfg, err := loadConfig(*specPath, overrides{url: *url, output: *outputPath, workDir: *workDir})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		ctx = logging.WithLogger(ctx, logger)

		var (
			ui       liveUI
			progress fetch.ProgressFunc
			report   io.Writer = stdout
			buffered bytes.Buffer
		)
		commandOutput := io.Writer(stderr)
		if decision.useLive {
			ui = startLive(stdout, live.Options{NoColor: *noColor, OnInterrupt: cancel})
			progress = ui.OnDownloadProgress
			report = &buffered
			commandOutput = nil
		}

		b, closeCatalog, err := newBuilder(ctx, cfg, commandOutput, progress)
		if err != nil {
			if ui != nil {
				ui.OnBuildEnd(builder.Result{}, err)
				ui.Wait()
			}
			fmt.Fprintf(stderr, "Build failed: %v\n", err)
			return ExitError
		}
		defer func() {
			if err := closeCatalog(); err != nil {
				logger.Warn("close catalog", zap.Error(err))
			}
		}()
		b.Stdout = report
		if ui != nil {
			b.Observer = ui
		}

		result, err := b.Build(ctx)
		if ui != nil {
			ui.Wait()
			_, _ = io.Copy(stdout, &buffered)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Build failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Output: %s\n", result.OutputPath)
		return ExitOK
	}
}
