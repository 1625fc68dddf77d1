// Command update_badges replaces the content of a file in a github gist.
//
//	update_badges gist_key gist_id gist_name gist_content
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
	code := cli.Run(ctx, cli.NewUpdateBadgesCommand(), os.Args[1:])
	stop()

	os.Exit(code)
}
