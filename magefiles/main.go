//go:build mage

package main

import (
	"context"
	"path/filepath"

	"github.com/muter-mutation-testing/harness"
	"github.com/muter-mutation-testing/harness/platform"
)

var commands = []string{"bump_version", "install_build", "update_badges"}

var h = harness.New(
	harness.WithPreExecFunc(
		func(ctx context.Context) error { // ensure go mod download is run before any task
			return harness.Run(ctx, "go", harness.WithArgs("mod", "download"))
		},
	),
)

// build the release scripts into ./bin
func Build(ctx context.Context) error {
	tasks := make([]harness.Task, 0, len(commands))
	for _, name := range commands {
		tasks = append(tasks, gobuild(name))
	}

	return h.Execute(ctx, tasks...)
}

// run unit tests
func Test(ctx context.Context) error {
	args := []string{"test", "-race", "-cover", "./..."}
	if platform.IsCIEnv() {
		args = append(args, "-json")
	}

	return h.Execute(
		ctx,
		func(ctx context.Context) error {
			return harness.Run(ctx, "go", harness.WithArgs(args...))
		},
	)
}

// run go mod tidy
func Tidy(ctx context.Context) error {
	return h.Execute(
		ctx,
		func(ctx context.Context) error {
			return harness.Run(ctx, "go", harness.WithArgs("mod", "tidy", "-v"))
		},
	)
}

func gobuild(name string) harness.Task {
	return func(ctx context.Context) error {
		return harness.Run(ctx, "go",
			harness.WithArgs("build", "-o", filepath.Join("bin", name), "./cmd/"+name),
		)
	}
}
