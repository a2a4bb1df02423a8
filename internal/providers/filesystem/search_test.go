package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFindsMatchingLines(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	writeFile(t, root, "src/app.ts", "const a = 1;\n// TODO: fix\nconst b = 2;\r\n// TODO: test\r\n")

	results, err := s.Search(root, "TODO", "", "")
	require.NoError(t, err)

	assert.Equal(t, []SearchResult{
		{File: filepath.Join("src", "app.ts"), Line: 2, Content: "// TODO: fix"},
		{File: filepath.Join("src", "app.ts"), Line: 4, Content: "// TODO: test"},
	}, results)
}

func TestSearchStopsAtCap(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	for i := 0; i < 150; i++ {
		writeFile(t, root, fmt.Sprintf("f%03d.txt", i), "TODO item\n")
	}

	results, err := s.Search(root, "TODO", "", "")
	require.NoError(t, err)
	assert.Len(t, results, 100)
	assert.Equal(t, "f000.txt", results[0].File)
	assert.Equal(t, "f099.txt", results[99].File)
}

func TestSearchCapWithinSingleFile(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSearchResults = 3
	s := New(opts)
	root := newProject(t)
	writeFile(t, root, "many.txt", strings.Repeat("match\n", 10))
	writeFile(t, root, "other.txt", "match\n")

	results, err := s.Search(root, "match", "", "")
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, "many.txt", r.File)
		assert.Equal(t, i+1, r.Line)
	}
}

func TestSearchGlobSuffix(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	writeFile(t, root, "x.json", `{"key": "needle"}`)
	writeFile(t, root, "y.ts", "const needle = 1")
	writeFile(t, root, "Z.TS", "needle upper")

	results, err := s.Search(root, "needle", "", "*.ts")
	require.NoError(t, err)

	files := make([]string, 0, len(results))
	for _, r := range results {
		files = append(files, r.File)
	}
	assert.ElementsMatch(t, []string{"y.ts", "Z.TS"}, files)
	assert.NotContains(t, files, "x.json")
}

func TestSearchSkipsHiddenAndExcluded(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	writeFile(t, root, ".hidden/a.txt", "needle")
	writeFile(t, root, ".env", "needle")
	writeFile(t, root, "node_modules/pkg/index.js", "needle")
	writeFile(t, root, "src/target/out.txt", "needle")
	writeFile(t, root, "src/visible.txt", "needle")

	results, err := s.Search(root, "needle", "", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join("src", "visible.txt"), results[0].File)
}

func TestSearchSkipsBinaryAndLargeFiles(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSearchFileSize = 64
	s := New(opts)
	root := newProject(t)
	writeFile(t, root, "binary.dat", "needle"+string([]byte{0xff, 0xfe, 0xfd}))
	writeFile(t, root, "large.txt", "needle\n"+strings.Repeat("x", 100))
	writeFile(t, root, "small.txt", "needle\n")

	results, err := s.Search(root, "needle", "", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "small.txt", results[0].File)
}

func TestSearchSkipsSymlinks(t *testing.T) {
	s := newTestSandbox(t)
	parent := newProject(t)
	writeFile(t, parent, "outside/secret.txt", "needle")
	writeFile(t, parent, "proj/inside.txt", "nothing")
	root := filepath.Join(parent, "proj")
	symlink(t, filepath.Join(parent, "outside", "secret.txt"), filepath.Join(root, "link.txt"))
	symlink(t, filepath.Join(parent, "outside"), filepath.Join(root, "linkdir"))

	results, err := s.Search(root, "needle", "", "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchSubdirectory(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	writeFile(t, root, "a/one.txt", "needle")
	writeFile(t, root, "b/two.txt", "needle")

	results, err := s.Search(root, "needle", "b", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join("b", "two.txt"), results[0].File)
}

func TestSearchRegex(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	writeFile(t, root, "code.go", "func Alpha() {}\nfunc beta() {}\nvar Gamma = 1\n")

	results, err := s.Search(root, `^func [A-Z]\w*`, "", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Line)
}

func TestSearchErrors(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)
	writeFile(t, root, "file.txt", "x")

	_, err := s.Search(root, "(unclosed", "", "")
	assert.ErrorIs(t, err, ErrInvalidPattern)

	// pattern is checked before the root
	_, err = s.Search(filepath.Join(root, "missing"), "(unclosed", "", "")
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = s.Search(filepath.Join(root, "missing"), "x", "", "")
	assert.ErrorIs(t, err, ErrInvalidRoot)

	_, err = s.Search(root, "x", "file.txt", "")
	assert.ErrorIs(t, err, ErrNotADirectory)

	_, err = s.Search(root, "x", "../", "")
	assert.ErrorIs(t, err, ErrPathTraversal)
}

func TestSearchEmptyResultIsNotNil(t *testing.T) {
	s := newTestSandbox(t)
	root := newProject(t)

	results, err := s.Search(root, "anything", "", "")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestGlobSuffix(t *testing.T) {
	assert.Equal(t, ".ts", globSuffix("*.ts"))
	assert.Equal(t, ".ts", globSuffix("**.TS"))
	assert.Equal(t, "file.go", globSuffix("file.go"))
	assert.Equal(t, "", globSuffix(""))
}
