package install

import (
	"context"
	"fmt"

	"github.com/muter-mutation-testing/harness"
)

// Installer runs the build and install commands for the configured platform.
type Installer struct {
	runner harness.Commander
	conf   conf
}

// New creates an installer running its commands through runner.
func New(runner harness.Commander, opts ...Option) *Installer {
	conf := defaults()

	for _, opt := range opts {
		opt(&conf)
	}

	return &Installer{runner: runner, conf: conf}
}

// Commands returns the full command sequence for action, in execution order.
func (i *Installer) Commands(action Action) []harness.Command {
	build := i.conf.buildCommand()

	switch action {
	case BuildRelease:
		return []harness.Command{build}
	case Install:
		return append([]harness.Command{build}, i.conf.installCommands()...)
	default:
		return nil
	}
}

// Task returns the harness task performing action.
func (i *Installer) Task(action Action) (harness.Task, error) {
	switch action {
	case BuildRelease:
		return i.BuildRelease(), nil
	case Install:
		return i.Install(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// BuildRelease builds the product in release mode.
func (i *Installer) BuildRelease() harness.Task {
	return i.sequence(BuildRelease)
}

// Install builds the product and installs the resulting binary.
// Nothing is installed if the build fails.
func (i *Installer) Install() harness.Task {
	return i.sequence(Install)
}

// sequence runs the commands of action one after the other, stopping at the first failure.
func (i *Installer) sequence(action Action) harness.Task {
	return func(ctx context.Context) error {
		for _, cmd := range i.Commands(action) {
			if err := i.runner.Run(ctx, cmd); err != nil {
				return fmt.Errorf("%s failed: %w", action, err)
			}
		}
		return nil
	}
}
