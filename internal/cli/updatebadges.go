package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muter-mutation-testing/harness"
	"github.com/muter-mutation-testing/harness/badges"
)

// NewUpdateBadgesCommand creates the command publishing badge contents to a gist.
func NewUpdateBadgesCommand(opts ...badges.Option) *cobra.Command {
	cmd := command(
		"update_badges",
		[]string{"usage: update_badges gist_key gist_id gist_name gist_content"},
		exactArgs(4),
	)

	cmd.RunE = func(c *cobra.Command, args []string) error {
		token, gist := args[0], badges.Gist{ID: args[1], File: args[2]}

		publisher, err := badges.New(token, opts...)
		if err != nil {
			return err
		}

		harness.LogStep(fmt.Sprintf("updating %s in gist %s", gist.File, gist.ID))

		return publisher.Publish(c.Context(), gist, args[3])
	}

	return cmd
}
