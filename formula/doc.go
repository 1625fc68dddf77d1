// Package formula rewrites the download url and checksum of a homebrew formula.
//
// The formula is not parsed: the url declaration is expected on the fourth line and the
// sha256 declaration on the fifth one, every other line is kept byte for byte.
//
// The formula is rewritten through a temporary file next to it and renamed into place;
// if the formula is a symlink, the file it points at gets rewritten. Without write access
// to the directory the formula is overwritten in place.
//
// example usage
//
//	updater := formula.New("./homebrew-formulae/Formula/muter.rb")
//	if err := updater.Update("3.2.1", "abc123"); err != nil {
//		return fmt.Errorf("failed to bump formula: %w", err)
//	}
//
// results in
//
//	<line 4>	url "https://github.com/muter-mutation-testing/muter/archive/refs/tags/3.2.1.zip"
//	<line 5>	sha256 "abc123"
package formula
