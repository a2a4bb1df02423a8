package filesystem

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/projectfs/internal/shared/paths"
)

// dirFrame is one level of the explicit walk stack
type dirFrame struct {
	dir     string
	entries []os.DirEntry
	next    int
	depth   int
}

// List returns the entries of the directory at path. With recursive set it
// walks depth-first, recording each directory before its contents. Excluded
// names are neither listed nor descended into.
func (s *Sandbox) List(root, path string, recursive bool) ([]FileEntry, error) {
	canonicalRoot, resolved, err := s.resolve(root, path)
	if err != nil {
		return nil, err
	}
	if !isDir(resolved) {
		return nil, newError(KindNotADirectory, "list", path, ErrNotADirectory.Msg, nil)
	}

	entries, err := s.collectEntries(resolved, canonicalRoot, recursive)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("directory listed", zapPath(path),
		zap.Bool("recursive", recursive),
		zap.Int("count", len(entries)),
	)
	return entries, nil
}

// collectEntries walks dir with an explicit stack so deep trees cannot
// exhaust the goroutine stack. Any read failure aborts the whole listing.
func (s *Sandbox) collectEntries(dir, root string, recursive bool) ([]FileEntry, error) {
	first, err := os.ReadDir(dir)
	if err != nil {
		return nil, newError(KindIO, "list", paths.Relative(root, dir), "failed to read directory", err)
	}

	entries := []FileEntry{}
	stack := []*dirFrame{{dir: dir, entries: first, depth: 1}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		name := entry.Name()
		if s.opts.Exclusions.Contains(name) {
			continue
		}

		fullPath := filepath.Join(top.dir, name)
		relPath := paths.Relative(root, fullPath)

		info, err := entry.Info()
		if err != nil {
			return nil, newError(KindIO, "list", relPath, "failed to read metadata", err)
		}

		size := info.Size()
		if info.IsDir() {
			size = 0
		}
		entries = append(entries, FileEntry{
			Name:  name,
			Path:  relPath,
			IsDir: info.IsDir(),
			Size:  size,
		})

		if !recursive || !info.IsDir() {
			continue
		}
		if s.opts.MaxDepth > 0 && top.depth >= s.opts.MaxDepth {
			continue
		}

		children, err := os.ReadDir(fullPath)
		if err != nil {
			return nil, newError(KindIO, "list", relPath, "failed to read directory", err)
		}
		stack = append(stack, &dirFrame{dir: fullPath, entries: children, depth: top.depth + 1})
	}

	return entries, nil
}

// Stats counts files, directories and bytes under path using a parallel
// walk. Symlinks are not followed and unreadable entries are skipped.
func (s *Sandbox) Stats(root, path string) (DirStats, error) {
	canonicalRoot, resolved, err := s.resolve(root, path)
	if err != nil {
		return DirStats{}, err
	}
	if !isDir(resolved) {
		return DirStats{}, newError(KindNotADirectory, "stats", path, ErrNotADirectory.Msg, nil)
	}

	var files, dirs, bytes atomic.Int64
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, resolved, func(p string, d os.DirEntry, err error) error {
		if err != nil || p == resolved {
			return nil
		}

		if s.opts.Exclusions.Contains(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			dirs.Add(1)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		files.Add(1)
		bytes.Add(info.Size())
		return nil
	})
	if err != nil {
		return DirStats{}, newError(KindIO, "stats", path, "walk failed", err)
	}

	return DirStats{
		Path:  paths.Relative(canonicalRoot, resolved),
		Files: files.Load(),
		Dirs:  dirs.Load(),
		Bytes: bytes.Load(),
	}, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
