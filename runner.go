package harness

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

// TaskRunner holds the metadata for a specific command.
type TaskRunner struct {
	Executable string
	Arguments  []string

	cmd   *exec.Cmd
	quiet bool
}

// Cmd builds a command runner for a specific Executable.
// Relative executable paths such as .build/release/muter are resolved against the
// current directory, so they keep pointing at the same file when [WithDir] changes
// the directory the command runs in.
func Cmd(ctx context.Context, executable string, opts ...RunnerOpt) (*TaskRunner, error) {
	if strings.ContainsRune(executable, filepath.Separator) && !filepath.IsAbs(executable) {
		abs, err := filepath.Abs(executable)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", executable, err)
		}
		executable = abs
	}

	cmd := exec.CommandContext(ctx, executable)

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	r := TaskRunner{
		Executable: executable,
		cmd:        cmd,
	}

	for _, opt := range opts {
		err := opt(&r)
		if err != nil {
			return nil, err
		}
	}

	cmd.Args = append([]string{executable}, r.Arguments...)

	return &r, nil
}

// Exec a command returning its error and pretty printing the outcome.
// A non-zero exit status is returned as a wrapped [*exec.ExitError], see [ExitCode].
func (r *TaskRunner) Exec() error {
	var err error

	start := time.Now()
	defer func() {
		if r.quiet {
			return
		}
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			color.Red(" ✘ %s\n\n", elapsed)
			return
		}
		color.Green(" ✔ %s\n\n", elapsed)
	}()

	if !r.quiet {
		LogStep(strings.TrimSpace(fmt.Sprint(r.Executable, " ", strings.Join(r.Arguments, " "))))
	}

	err = r.cmd.Run()
	if err != nil {
		err = fmt.Errorf("%s: %w", r.Executable, err)
		return err
	}

	return nil
}

// Run is a helper function to avoid repetition while gracefully handling errors.
func Run(ctx context.Context, program string, opts ...RunnerOpt) error {
	rnr, err := Cmd(ctx, program, opts...)
	if err != nil {
		return err
	}

	return rnr.Exec()
}

// LogStep prints a fancy-ish log line describing a task step.
func LogStep(text string) {
	fmt.Println(
		color.MagentaString(" ⌘"),
		color.New(color.Bold).Sprint(text),
	)
}

// LogWarn prints a warning related to the current step.
func LogWarn(text string) {
	fmt.Println(
		color.YellowString(" !"),
		color.YellowString(text),
	)
}

// RunnerOpt allows customizing the behavior of the command runner.
type RunnerOpt func(r *TaskRunner) error

// WithArgs command arguments.
func WithArgs(args ...string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.Arguments = args
		return nil
	}
}

// WithDir sets the directory where the command should be run inside.
func WithDir(dir string) RunnerOpt {
	return func(r *TaskRunner) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve dir %s: %w", dir, err)
		}
		r.cmd.Dir = abs
		return nil
	}
}

// WithoutNoise silences all output for the command; useful when handling that on the caller side.
func WithoutNoise() RunnerOpt {
	return func(r *TaskRunner) error {
		r.quiet = true
		r.cmd.Stdout = nil
		r.cmd.Stderr = nil

		return nil
	}
}

// WithStdOut set up stdout writer.
func WithStdOut(w io.Writer) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Stdout = w
		return nil
	}
}

// WithStdErr set up stderr writer.
func WithStdErr(w io.Writer) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Stderr = w
		return nil
	}
}
