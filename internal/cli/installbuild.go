package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/muter-mutation-testing/harness"
	"github.com/muter-mutation-testing/harness/install"
	"github.com/muter-mutation-testing/harness/platform"
)

// Host describes where install_build runs.
type Host struct {
	Platform platform.Platform
	Runner   harness.Commander
	// Interactive is false when nobody can answer a password prompt.
	Interactive bool
}

// CurrentHost describes the running machine, with commands run as subprocesses.
func CurrentHost() Host {
	fd := os.Stdin.Fd()

	return Host{
		Platform:    platform.Current(),
		Runner:      harness.NewExecCommander(),
		Interactive: (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && !platform.IsCIEnv(),
	}
}

// NewInstallBuildCommand creates the command building and installing muter on host.
func NewInstallBuildCommand(host Host) *cobra.Command {
	var dryrun bool

	cmd := command(
		"install_build",
		[]string{
			"usage: install_build " + string(install.BuildRelease),
			"usage: install_build " + string(install.Install),
		},
		func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected 1 argument, got %d", ErrUsage, len(args))
			}
			if _, err := install.ParseAction(args[0]); err != nil {
				return fmt.Errorf("%w: %s", ErrUsage, err)
			}
			return nil
		},
	)

	cmd.RunE = func(c *cobra.Command, args []string) error {
		action, err := install.ParseAction(args[0])
		if err != nil {
			return err
		}

		opts := []install.Option{install.WithPlatform(host.Platform)}
		if !host.Interactive {
			opts = append(opts, install.WithElevation("sudo", "-n"))
		}

		if dryrun {
			task, err := install.New(harness.DryRun{Out: c.OutOrStdout()}, opts...).Task(action)
			if err != nil {
				return err
			}
			return task(c.Context())
		}

		task, err := install.New(host.Runner, opts...).Task(action)
		if err != nil {
			return err
		}

		h := harness.New(
			harness.WithPreExecFunc(func(_ context.Context) error {
				harness.LogStep(fmt.Sprintf("running %s on %s", action, host.Platform))
				return nil
			}),
		)

		return h.Execute(c.Context(), task)
	}

	cmd.Flags().BoolVar(&dryrun, "dry-run", false, "print the commands instead of running them")

	return cmd
}
