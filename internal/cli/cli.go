// Package cli wires the release scripts to their command line interfaces.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/muter-mutation-testing/harness"
)

// ExitUsage is the exit status for invocations that don't match the usage.
const ExitUsage = 2

// ErrUsage is returned by commands invoked with the wrong arguments.
var ErrUsage = errors.New("invalid usage")

const usageAnnotation = "usage"

// Run executes cmd with args and returns the exit status for the process.
// Usage errors print the usage lines to stdout, any other error is reported on stderr.
func Run(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil && helpRequested(cmd):
		// the help func already printed the usage lines
		return ExitUsage
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		printUsage(cmd.OutOrStdout(), cmd)
		return ExitUsage
	default:
		color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), err)
		return harness.ExitCode(err)
	}
}

// command builds a cobra command printing the given usage lines instead of the
// generated help.
func command(name string, usage []string, args cobra.PositionalArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Args:          args,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations: map[string]string{
			usageAnnotation: strings.Join(usage, "\n"),
		},
	}

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		printUsage(c.OutOrStdout(), c)
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		printUsage(c.OutOrStdout(), c)
	})
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %s", ErrUsage, err)
	})

	return cmd
}

// helpRequested reports whether cobra handled -h/--help instead of running cmd;
// a lone help flag doesn't match the usage either.
func helpRequested(cmd *cobra.Command) bool {
	if cmd.DisableFlagParsing {
		return false
	}
	help, err := cmd.Flags().GetBool("help")
	return err == nil && help
}

func printUsage(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintln(w, cmd.Annotations[usageAnnotation])
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: expected %d arguments, got %d", ErrUsage, n, len(args))
		}
		return nil
	}
}
