package formula

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/muter-mutation-testing/harness"
)

const (
	// DefaultPath is where the formula lives relative to the repository root.
	DefaultPath = "./homebrew-formulae/Formula/muter.rb"

	DefaultOrg     = "muter-mutation-testing"
	DefaultProject = "muter"

	urlLine      = 3
	checksumLine = 4
	minLines     = checksumLine + 1
)

// ErrMalformedFormula is returned when the formula doesn't have the expected layout.
var ErrMalformedFormula = errors.New("malformed formula file")

// Updater rewrites the url and checksum declarations of a single formula file.
type Updater struct {
	path      string
	org       string
	project   string
	urlformat string
}

// New creates an updater for the formula at path, pointing at the muter repository
// unless configured otherwise.
func New(path string, opts ...Option) *Updater {
	u := Updater{
		path:      path,
		org:       DefaultOrg,
		project:   DefaultProject,
		urlformat: DefaultURLFormat,
	}

	for _, opt := range opts {
		opt(&u)
	}

	return &u
}

// Update the formula at path so it points at version with the given checksum,
// using the default repository and url format.
func Update(path, version, checksum string) error {
	return New(path).Update(version, checksum)
}

// Path returns the formula file the updater writes to.
func (u *Updater) Path() string {
	return u.path
}

// URL returns the archive url for version.
func (u *Updater) URL(version string) (string, error) {
	release := Release{Org: u.org, Project: u.project, Version: version}

	url, err := release.Resolve(u.urlformat)
	if err != nil {
		return "", fmt.Errorf("failed to resolve url: %w", err)
	}

	return url, nil
}

// Update rewrites the url and checksum lines of the formula.
// Neither version nor checksum are validated; they end up in the file as given.
// Nothing is written when the formula can't be read or is malformed.
func (u *Updater) Update(version, checksum string) error {
	url, err := u.URL(version)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(u.path)
	if err != nil {
		return fmt.Errorf("failed to read formula: %w", err)
	}

	patched, err := Patch(data, url, checksum)
	if err != nil {
		return fmt.Errorf("%s: %w", u.path, err)
	}

	if err := writeAtomic(u.path, patched); err != nil {
		return fmt.Errorf("failed to write formula: %w", err)
	}

	return nil
}

// Task wraps [Updater.Update] as a harness task, logging the step like command tasks do.
func (u *Updater) Task(version, checksum string) harness.Task {
	return func(_ context.Context) error {
		harness.LogStep(fmt.Sprintf("bumping %s to %s", u.path, version))

		if !IsSemver(version) {
			harness.LogWarn(fmt.Sprintf("%q is not a semantic version, writing it anyway", version))
		}

		return u.Update(version, checksum)
	}
}

// Patch replaces the url and checksum declarations in the formula contents.
// Line terminators of the remaining lines are kept as they are, including "\r\n"
// endings and a last line without a newline.
func Patch(data []byte, url, checksum string) ([]byte, error) {
	lines := splitLines(data)
	if len(lines) < minLines {
		return nil, fmt.Errorf("%w: found %d lines, expected at least %d", ErrMalformedFormula, len(lines), minLines)
	}

	lines[urlLine] = []byte(URLDeclaration(url))
	lines[checksumLine] = []byte(ChecksumDeclaration(checksum))

	return bytes.Join(lines, nil), nil
}

// URLDeclaration renders the tab indented url line of a formula.
func URLDeclaration(url string) string {
	return "\turl \"" + url + "\"\n"
}

// ChecksumDeclaration renders the tab indented sha256 line of a formula.
func ChecksumDeclaration(checksum string) string {
	return "\tsha256 \"" + checksum + "\"\n"
}

// IsSemver reports whether version is a semantic version, with or without the leading v.
func IsSemver(version string) bool {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return semver.IsValid(version)
}

// splitLines splits data after every "\n"; a trailing chunk without newline is a line too.
func splitLines(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}

	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	return lines
}

type Option func(u *Updater)

// WithRepository points the url at a different github repository.
func WithRepository(org, project string) Option {
	return func(u *Updater) {
		u.org = org
		u.project = project
	}
}

// WithURLFormat replaces the url template, see [Release] for the available fields.
func WithURLFormat(format string) Option {
	return func(u *Updater) {
		u.urlformat = format
	}
}
