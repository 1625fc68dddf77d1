// Command bump_version points the muter homebrew formula at a new release.
//
//	bump_version new_version sha256_hash_of_new_version
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
	code := cli.Run(ctx, cli.NewBumpVersionCommand(), os.Args[1:])
	stop()

	os.Exit(code)
}
