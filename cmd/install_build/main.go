// Command install_build builds muter in release mode and optionally installs it.
//
//	install_build build_release
//	install_build install
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/muter-mutation-testing/harness/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	code := cli.Run(ctx, cli.NewInstallBuildCommand(cli.CurrentHost()), os.Args[1:])
	stop()

	os.Exit(code)
}
