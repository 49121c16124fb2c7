// Package command runs external programs and reports non-zero exits as typed errors.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"wikiqa/internal/logging"
)

const outputTailBytes = 4 * 1024

// ExitError reports an external command that ran and exited non-zero.
type ExitError struct {
	Command string
	Code    int
	Output  string
}

func (err *ExitError) Error() string {
	msg := err.Output
	if msg == "" {
		msg = "no output"
	}
	return fmt.Sprintf("command %q exited with status %d (%s)", err.Command, err.Code, msg)
}

// Runner executes an external command in a working directory.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// ExecRunner runs commands through os/exec. Combined stdout and stderr are
// copied to Output when it is set.
type ExecRunner struct {
	Output io.Writer
}

// Run executes name with args and waits for it to finish.
func (r ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	commandLine := strings.Join(append([]string{name}, args...), " ")
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found: %w", name, err)
	}
	logger := logging.FromContext(ctx)
	logger.Debug("running command", zap.String("command", commandLine), zap.String("dir", dir))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	tail := &tailBuffer{limit: outputTailBytes}
	var out io.Writer = tail
	if r.Output != nil {
		out = io.MultiWriter(r.Output, tail)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", commandLine, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Command: commandLine,
			Code:    exitErr.ExitCode(),
			Output:  strings.TrimSpace(tail.String()),
		}
	}
	return fmt.Errorf("run %s: %w", commandLine, err)
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	limit int
	buf   []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
