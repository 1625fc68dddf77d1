package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command is a single program invocation.
type Command struct {
	Executable string
	Arguments  []string
}

// NewCommand builds a [Command] from an argv style slice.
func NewCommand(argv ...string) Command {
	if len(argv) == 0 {
		return Command{}
	}
	return Command{Executable: argv[0], Arguments: argv[1:]}
}

// Argv returns the executable followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Executable}, c.Arguments...)
}

func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Commander runs commands to completion.
// A command exiting with a non-zero status must be reported as an error from which
// [ExitCode] can recover the status.
type Commander interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecCommander runs commands as subprocesses through [Run].
type ExecCommander struct {
	opts []RunnerOpt
}

// NewExecCommander creates a commander applying the given runner options to every command.
func NewExecCommander(opts ...RunnerOpt) *ExecCommander {
	return &ExecCommander{opts: opts}
}

func (e *ExecCommander) Run(ctx context.Context, cmd Command) error {
	opts := append([]RunnerOpt{WithArgs(cmd.Arguments...)}, e.opts...)
	return Run(ctx, cmd.Executable, opts...)
}

// DryRun prints every command instead of running it.
type DryRun struct {
	Out io.Writer
}

func (d DryRun) Run(_ context.Context, cmd Command) error {
	_, err := fmt.Fprintln(d.Out, cmd.String())
	return err
}

// ExitCode maps an error returned by a [Commander] or a [Task] to a process exit status.
// nil maps to 0, a subprocess exit status is passed through and anything else,
// including subprocesses killed by a signal, maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exiterr *exec.ExitError
	if errors.As(err, &exiterr) {
		if code := exiterr.ExitCode(); code > 0 {
			return code
		}
	}

	return 1
}
