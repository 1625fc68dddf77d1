package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
)

// Harness is a support structure that runs tasks, the harness can be customized with
// pre- and post- execution hook functions, where common functionality to all tasks
// can be defined.
type Harness struct {
	PreExecHook  Task
	PostExecHook Task
}

// New constructs a harness.
func New(opts ...Option) *Harness {
	h := Harness{
		PreExecHook:  func(_ context.Context) error { return nil },
		PostExecHook: func(_ context.Context) error { return nil },
	}

	for _, opt := range opts {
		opt(&h)
	}

	return &h
}

// Execute a list of tasks inside the harness.
// Tasks run sequentially and the first failing task stops the execution; its error is
// returned wrapped so callers can still inspect it, e.g. with [ExitCode], and it's up to
// them to report it.
// The post exec hook runs even when a task fails.
func (h *Harness) Execute(ctx context.Context, tasks ...Task) error {
	var failed error
	start := time.Now()

	fmt.Fprint(color.Output, "\n")

	if err := h.PreExecHook(ctx); err != nil {
		return fmt.Errorf("failed to initialize harness: %w", err)
	}

	for _, task := range tasks {
		if err := task(ctx); err != nil {
			failed = err
			break
		}
	}

	if err := h.PostExecHook(ctx); err != nil && failed == nil {
		return fmt.Errorf("failed to run post exec hook: %w", err)
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	color.New(color.FgHiBlack).Printf("------------------------\n\n")

	if failed != nil {
		color.Red(" ✘ finished with errors after %s\n\n", elapsed)
		return fmt.Errorf("task failed: %w", failed)
	}

	color.Green(" ✔ all good after %s\n\n", elapsed)
	return nil
}

// Task defines the basic function that the harness executes.
// Additional configuration and tweaks can be done by using closures which return
// Tasks.
type Task func(ctx context.Context) error

type Option func(h *Harness)

// WithPreExecFunc allows specifying a task that will be run every execution, before the
// specific execution tasks are run.
func WithPreExecFunc(hook Task) Option {
	return func(h *Harness) {
		h.PreExecHook = hook
	}
}

