package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// CommandSpec is one external invocation.
type CommandSpec struct {
	Name string   // executable name or path
	Args []string // ordered arguments
	Dir  string   // working directory; must be set
}

// String renders the command line for messages.
func (c CommandSpec) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands.
type Runner interface {
	// Run executes the command with stdio attached and waits for it to exit.
	Run(ctx context.Context, spec CommandSpec) error
	// Output executes the command and returns its trimmed stdout.
	Output(ctx context.Context, spec CommandSpec) (string, error)
}

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
}

// ExitCode returns the child exit code carried by err, if any.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct {
	// Stdin, Stdout, and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var errDirRequired = errors.New("working directory is required")

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, spec CommandSpec) error {
	cmd, err := r.command(ctx, spec)
	if err != nil {
		return err
	}
	cmd.Stdin = orReader(r.Stdin, os.Stdin)
	cmd.Stdout = orWriter(r.Stdout, os.Stdout)
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)

	slog.Debug("exec", "cmd", spec.String(), "dir", spec.Dir)
	return wrapRunError(spec, cmd.Run())
}

// Output implements Runner. Stderr is passed through to the configured writer.
func (r *ExecRunner) Output(ctx context.Context, spec CommandSpec) (string, error) {
	cmd, err := r.command(ctx, spec)
	if err != nil {
		return "", err
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)

	slog.Debug("exec", "cmd", spec.String(), "dir", spec.Dir, "capture", true)
	if err := wrapRunError(spec, cmd.Run()); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (r *ExecRunner) command(ctx context.Context, spec CommandSpec) (*exec.Cmd, error) {
	if spec.Dir == "" {
		return nil, fmt.Errorf("%s: %w", spec.Name, errDirRequired)
	}
	bin, err := exec.LookPath(spec.Name)
	if err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", spec.Name, err)
	}
	cmd := exec.CommandContext(ctx, bin, spec.Args...)
	cmd.Dir = spec.Dir
	return cmd, nil
}

func wrapRunError(spec CommandSpec, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal; report a generic failure.
			code = 1
		}
		return &ExitError{Command: spec.String(), Code: code}
	}
	return fmt.Errorf("running %s: %w", spec.String(), err)
}

func orReader(r, fallback io.Reader) io.Reader {
	if r == nil {
		return fallback
	}
	return r
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
