package formula

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const muterFormula = `class Muter < Formula
	desc "Automated mutation testing for Swift"
	homepage "https://github.com/muter-mutation-testing/muter"
	url "https://github.com/muter-mutation-testing/muter/archive/refs/tags/16.0.0.zip"
	sha256 "0000000000000000000000000000000000000000000000000000000000000000"
	license "MIT"

	depends_on xcode: ["14.0", :build]

	def install
		system "make", "prefix=#{prefix}", "install"
	end
end
`

func writeFormula(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "muter.rb")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestUpdate(t *testing.T) {
	path := writeFormula(t, muterFormula)

	require.NoError(t, Update(path, "3.2.1", "abc123"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := splitLines(data)
	require.Len(t, lines, 13)
	assert.Equal(t, "\turl \"https://github.com/muter-mutation-testing/muter/archive/refs/tags/3.2.1.zip\"\n", string(lines[3]))
	assert.Equal(t, "\tsha256 \"abc123\"\n", string(lines[4]))
}

func TestUpdatePreservesUntouchedLines(t *testing.T) {
	path := writeFormula(t, muterFormula)

	before := splitLines([]byte(muterFormula))
	require.NoError(t, Update(path, "17.0.0", "deadbeef"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	after := splitLines(data)

	require.Len(t, after, len(before))
	for i := range before {
		if i == urlLine || i == checksumLine {
			continue
		}
		assert.Equal(t, string(before[i]), string(after[i]), "line %d changed", i)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	once := writeFormula(t, muterFormula)
	twice := writeFormula(t, muterFormula)

	require.NoError(t, Update(once, "3.2.1", "abc123"))
	require.NoError(t, Update(twice, "3.2.1", "abc123"))
	require.NoError(t, Update(twice, "3.2.1", "abc123"))

	first, err := os.ReadFile(once)
	require.NoError(t, err)
	second, err := os.ReadFile(twice)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUpdateRejectsShortFormula(t *testing.T) {
	content := "class Muter < Formula\n\tdesc \"x\"\n\thomepage \"y\"\n\turl \"z\"\n"
	path := writeFormula(t, content)

	err := Update(path, "3.2.1", "abc123")

	require.ErrorIs(t, err, ErrMalformedFormula)
	assert.Contains(t, err.Error(), "found 4 lines")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data), "malformed formula must not be written")
}

func TestUpdateMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.rb")

	err := Update(path, "3.2.1", "abc123")

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrMalformedFormula)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestUpdateKeepsPermissions(t *testing.T) {
	path := writeFormula(t, muterFormula)
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, Update(path, "3.2.1", "abc123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestUpdateLeavesNoTemporaryFiles(t *testing.T) {
	path := writeFormula(t, muterFormula)

	require.NoError(t, Update(path, "3.2.1", "abc123"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "muter.rb", entries[0].Name())
}

func TestUpdateWithOptions(t *testing.T) {
	path := writeFormula(t, muterFormula)

	updater := New(path,
		WithRepository("acme", "tool"),
		WithURLFormat("https://github.com/{{.Org}}/{{.Project}}/releases/download/{{.Version}}/{{.Project}}.zip"),
	)
	require.NoError(t, updater.Update("1.0.0", "ff"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\turl \"https://github.com/acme/tool/releases/download/1.0.0/tool.zip\"\n", string(splitLines(data)[3]))
	assert.Equal(t, path, updater.Path())
}

func TestUpdateInvalidURLFormat(t *testing.T) {
	path := writeFormula(t, muterFormula)

	err := New(path, WithURLFormat("{{.Version")).Update("1.0.0", "ff")

	require.Error(t, err)
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, muterFormula, string(data))
}

func TestPatch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "exactly five lines",
			input:    "a\nb\nc\nd\ne\n",
			expected: "a\nb\nc\n\turl \"U\"\n\tsha256 \"S\"\n",
		},
		{
			name:     "checksum line without trailing newline",
			input:    "a\nb\nc\nd\ne",
			expected: "a\nb\nc\n\turl \"U\"\n\tsha256 \"S\"\n",
		},
		{
			name:     "crlf endings are kept on untouched lines",
			input:    "a\r\nb\r\nc\r\nd\r\ne\r\nf\r\n",
			expected: "a\r\nb\r\nc\r\n\turl \"U\"\n\tsha256 \"S\"\nf\r\n",
		},
		{
			name:     "last line without newline is kept",
			input:    "a\nb\nc\nd\ne\nend",
			expected: "a\nb\nc\n\turl \"U\"\n\tsha256 \"S\"\nend",
		},
		{
			name:     "blank lines count",
			input:    "\n\n\n\n\n\n",
			expected: "\n\n\n\turl \"U\"\n\tsha256 \"S\"\n\n",
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: true,
		},
		{
			name:    "four lines",
			input:   "a\nb\nc\nd\n",
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name,
			func(t *testing.T) {
				result, err := Patch([]byte(test.input), "U", "S")

				if test.wantErr {
					assert.ErrorIs(t, err, ErrMalformedFormula)
					assert.Nil(t, result)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, test.expected, string(result))
			},
		)
	}
}

func TestDeclarations(t *testing.T) {
	assert.Equal(t,
		"\turl \"https://github.com/muter-mutation-testing/muter/archive/refs/tags/3.2.1.zip\"\n",
		URLDeclaration(Release{Org: DefaultOrg, Project: DefaultProject, Version: "3.2.1"}.MustResolve(DefaultURLFormat)),
	)
	assert.Equal(t, "\tsha256 \"abc123\"\n", ChecksumDeclaration("abc123"))
}

func TestIsSemver(t *testing.T) {
	assert.True(t, IsSemver("3.2.1"))
	assert.True(t, IsSemver("v3.2.1"))
	assert.True(t, IsSemver("3.2.1-beta.1"))
	assert.False(t, IsSemver("latest"))
	assert.False(t, IsSemver(""))
}

func TestUpdaterTask(t *testing.T) {
	path := writeFormula(t, muterFormula)

	err := New(path).Task("nightly", "abc123")(context.Background())

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\turl \"https://github.com/muter-mutation-testing/muter/archive/refs/tags/nightly.zip\"\n", string(splitLines(data)[3]))
}

func TestUpdateFollowsSymlink(t *testing.T) {
	target := writeFormula(t, muterFormula)
	link := filepath.Join(t.TempDir(), "muter.rb")
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, Update(link, "3.2.1", "abc123"))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must stay a symlink")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "\tsha256 \"abc123\"\n", string(splitLines(data)[4]))
}

func TestUpdateInReadOnlyDirectory(t *testing.T) {
	path := writeFormula(t, muterFormula)
	dir := filepath.Dir(path)

	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	require.NoError(t, Update(path, "3.2.1", "abc123"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\tsha256 \"abc123\"\n", string(splitLines(data)[4]))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteInPlace(t *testing.T) {
	path := writeFormula(t, "old content that is longer than the new one\n")

	require.NoError(t, writeInPlace(path, []byte("new\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}
