// Package install builds muter in release mode and installs the binary on the host.
//
// Commands are constructed from a [platform.Platform] value and run through a
// [harness.Commander], so the whole sequence can be inspected without a toolchain.
package install

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/muter-mutation-testing/harness"
	"github.com/muter-mutation-testing/harness/platform"
)

const (
	DefaultProduct  = "muter"
	DefaultBinDir   = "/usr/local/bin"
	DefaultBuildDir = ".build"
)

// ErrUnknownAction is returned by [ParseAction] for anything but the known actions.
var ErrUnknownAction = errors.New("unknown action")

// Action is one of the operations the installer knows how to perform.
type Action string

const (
	BuildRelease Action = "build_release"
	Install      Action = "install"
)

// Actions lists the supported actions in the order they are documented.
var Actions = []Action{BuildRelease, Install}

// ParseAction maps a command line verb to its [Action].
func ParseAction(verb string) (Action, error) {
	for _, action := range Actions {
		if string(action) == verb {
			return action, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, verb)
}

type conf struct {
	platform  platform.Platform
	product   string
	bindir    string
	builddir  string
	elevation []string
}

func defaults() conf {
	return conf{
		platform:  platform.Current(),
		product:   DefaultProduct,
		bindir:    DefaultBinDir,
		builddir:  DefaultBuildDir,
		elevation: []string{"sudo"},
	}
}

func (c conf) libdir() string {
	return c.bindir + "/lib"
}

func (c conf) artifact() string {
	return filepath.Join(c.builddir, "release", c.product)
}

// elevate prefixes cmd with the privilege elevation command where the install
// directories are not writable by regular users.
func (c conf) elevate(cmd harness.Command) harness.Command {
	if c.platform.IsMacOS() || len(c.elevation) == 0 {
		return cmd
	}
	return harness.NewCommand(append(append([]string{}, c.elevation...), cmd.Argv()...)...)
}

// buildCommand returns the release build of the product.
// The swift package manager sandbox is disabled on macOS, where it would otherwise
// nest inside the sandbox of tools like homebrew.
func (c conf) buildCommand() harness.Command {
	args := []string{"build", "-c", "release", "--product", c.product}

	if c.platform.IsMacOS() {
		args = append(args, "--disable-sandbox")
	}

	return harness.Command{Executable: "swift", Arguments: args}
}

// installCommands returns the commands creating the install directories and copying the
// built binary into them.
func (c conf) installCommands() []harness.Command {
	return []harness.Command{
		c.elevate(harness.NewCommand("install", "-d", c.bindir, c.libdir())),
		c.elevate(harness.NewCommand("install", c.artifact(), c.bindir)),
	}
}

// Option customizes the installer.
type Option func(c *conf)

// WithPlatform overrides the detected host platform.
func WithPlatform(p platform.Platform) Option {
	return func(c *conf) {
		c.platform = p
	}
}

// WithProduct sets the swift product that gets built and installed.
func WithProduct(product string) Option {
	return func(c *conf) {
		c.product = product
	}
}

// WithBinDir sets the directory the binary is installed into; libraries go to its lib subdirectory.
func WithBinDir(dir string) Option {
	return func(c *conf) {
		c.bindir = dir
	}
}

// WithBuildDir sets the swift build output directory, relative to the working directory.
func WithBuildDir(dir string) Option {
	return func(c *conf) {
		c.builddir = dir
	}
}

// WithElevation sets the command used to gain privileges for the install steps on
// non macOS hosts, e.g. "sudo", "-n". Passing nothing disables elevation.
func WithElevation(argv ...string) Option {
	return func(c *conf) {
		c.elevation = argv
	}
}
