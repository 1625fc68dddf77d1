package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muter-mutation-testing/harness"
	"github.com/muter-mutation-testing/harness/formula"
)

// NewBumpVersionCommand creates the command pointing the homebrew formula at a new release.
//
// Flag parsing is disabled so versions and checksums starting with a dash, e.g. -rc1,
// are taken as they are. The formula path can only be overridden by a leading
// -f/--formula, see [parseBumpArgs].
func NewBumpVersionCommand() *cobra.Command {
	cmd := command(
		"bump_version",
		[]string{"usage: bump_version new_version sha256_hash_of_new_version"},
		cobra.ArbitraryArgs,
	)
	cmd.DisableFlagParsing = true

	cmd.RunE = func(c *cobra.Command, args []string) error {
		path, version, checksum, err := parseBumpArgs(args)
		if err != nil {
			return err
		}

		updater := formula.New(path)
		return harness.New().Execute(c.Context(), updater.Task(version, checksum))
	}

	return cmd
}

// parseBumpArgs splits args into formula path, version and checksum.
// Exactly two arguments are always the version and the checksum; with four, the first
// two must be -f/--formula and the path, and --formula=path counts as one argument.
func parseBumpArgs(args []string) (string, string, string, error) {
	path := formula.DefaultPath

	switch {
	case len(args) == 4 && (args[0] == "-f" || args[0] == "--formula"):
		path, args = args[1], args[2:]
	case len(args) == 3 && strings.HasPrefix(args[0], "--formula="):
		path, args = strings.TrimPrefix(args[0], "--formula="), args[1:]
	}

	if len(args) != 2 || path == "" {
		return "", "", "", fmt.Errorf("%w: expected 2 arguments, got %d", ErrUsage, len(args))
	}

	return path, args[0], args[1], nil
}
