package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)

	require.NoError(t, s.Write(root, "a.txt", "hi"))

	content, err := s.Read(root, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", content)
}

func TestWriteRoundTrip(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)

	contents := []string{
		"",
		"single line",
		"line one\nline two\r\nline three\n",
		"unicode: héllo wörld 日本語 🚀",
	}

	for _, c := range contents {
		require.NoError(t, s.Write(root, "round.txt", c))
		got, err := s.Read(root, "round.txt")
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestWriteCreatesParentDirectories(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	mkdir(t, root, "deep")

	require.NoError(t, s.Write(root, "deep/new.txt", "content"))
	assert.Equal(t, "content", readFile(t, root, "deep/new.txt"))
}

func TestWriteOverwrites(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	writeFile(t, root, "a.txt", "a much longer original body")

	require.NoError(t, s.Write(root, "a.txt", "short"))
	assert.Equal(t, "short", readFile(t, root, "a.txt"))
}

func TestWriteRejectsTraversal(t *testing.T) {
	s := newTestSandbox(t)
	parent := newProject(t)
	mkdir(t, parent, "proj")
	root := filepath.Join(parent, "proj")

	err := s.Write(root, "../escaped.txt", "nope")
	assert.ErrorIs(t, err, ErrPathTraversal)

	_, statErr := os.Stat(filepath.Join(parent, "escaped.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadMissingFile(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)

	_, err := s.Read(root, "missing.txt")
	require.Error(t, err)
	assert.Equal(t, KindIO, KindOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadInvalidUTF8(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	writeFile(t, root, "bin.dat", string([]byte{0xff, 0xfe, 0x00, 0x01, 0x80, 0x81}))

	_, err := s.Read(root, "bin.dat")
	require.Error(t, err)
	assert.Equal(t, KindInvalidUTF8, KindOf(err))
	assert.Contains(t, err.Error(), "file is not valid UTF-8")
}

func TestReadInvalidRoot(t *testing.T) {
	s := newTestSandbox(t)

	_, err := s.Read(filepath.Join(t.TempDir(), "nope"), "a.txt")
	assert.Equal(t, KindInvalidRoot, KindOf(err))
}

func TestReadDirectoryIsIOError(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	mkdir(t, root, "dir")

	_, err := s.Read(root, "dir")
	assert.Equal(t, KindIO, KindOf(err))
}

func TestProjectRoot(t *testing.T) {
	s := newTestSandbox(t)
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := s.ProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, wd, got)

	opts := DefaultOptions()
	opts.DefaultRoot = "/configured"
	got, err = New(opts).ProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, "/configured", got)
}

func TestNewFillsDefaults(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, DefaultMaxSearchResults, s.Options().MaxSearchResults)
	assert.Equal(t, int64(DefaultMaxSearchFileSize), s.Options().MaxSearchFileSize)
	assert.NotNil(t, s.logger)
}
