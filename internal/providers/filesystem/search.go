package filesystem

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/projectfs/internal/shared/paths"
)

// searchFrame is one directory on the search stack
type searchFrame struct {
	dir     string
	entries []os.DirEntry
	next    int
}

// searchStats is reported in the debug log after each search
type searchStats struct {
	scanned      int
	skippedLarge int
	skippedText  int
	skippedDirs  int
}

// Search scans text files under searchPath (the whole root when empty) for
// lines matching pattern. Hidden and excluded entries are skipped at every
// depth. glob, when set, is a case-insensitive file name suffix such as
// "*.ts". The walk stops as soon as the result cap is reached.
func (s *Sandbox) Search(root, pattern, searchPath, glob string) ([]SearchResult, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, newError(KindInvalidPattern, "search", "", ErrInvalidPattern.Msg, err)
	}

	canonicalRoot, err := CanonicalRoot(root)
	if err != nil {
		return nil, err
	}

	searchDir := canonicalRoot
	if searchPath != "" {
		searchDir, err = resolveWithin(canonicalRoot, searchPath)
		if err != nil {
			return nil, err
		}
	}
	if !isDir(searchDir) {
		return nil, newError(KindNotADirectory, "search", searchPath, "search path is not a directory", nil)
	}

	results, stats := s.searchTree(searchDir, canonicalRoot, re, globSuffix(glob))

	s.logger.Debug("search complete",
		zap.String("pattern", pattern),
		zap.String("path", searchPath),
		zap.Int("results", len(results)),
		zap.Int("files_scanned", stats.scanned),
		zap.Int("skipped_large", stats.skippedLarge),
		zap.Int("skipped_binary", stats.skippedText),
		zap.Int("skipped_dirs", stats.skippedDirs),
	)
	return results, nil
}

func (s *Sandbox) searchTree(dir, root string, re *regexp.Regexp, suffix string) ([]SearchResult, searchStats) {
	results := []SearchResult{}
	var stats searchStats

	stack := []*searchFrame{{dir: dir}}
	if !s.readFrame(stack[0], &stats) {
		return results, stats
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		name := entry.Name()
		if s.opts.Exclusions.Contains(name) || strings.HasPrefix(name, ".") {
			continue
		}
		fullPath := filepath.Join(top.dir, name)

		if entry.IsDir() {
			frame := &searchFrame{dir: fullPath}
			if s.readFrame(frame, &stats) {
				stack = append(stack, frame)
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if suffix != "" && !strings.HasSuffix(strings.ToLower(name), suffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() > s.opts.MaxSearchFileSize {
			stats.skippedLarge++
			continue
		}

		data, err := os.ReadFile(fullPath)
		if err != nil || !utf8.Valid(data) {
			stats.skippedText++
			continue
		}
		stats.scanned++

		if s.scanLines(data, paths.Relative(root, fullPath), re, &results) {
			return results, stats
		}
	}

	return results, stats
}

// readFrame loads a directory's entries; unreadable directories are skipped
// rather than failing the search.
func (s *Sandbox) readFrame(frame *searchFrame, stats *searchStats) bool {
	entries, err := os.ReadDir(frame.dir)
	if err != nil {
		stats.skippedDirs++
		s.logger.Debug("search skipped unreadable directory", zapPath(frame.dir), zap.Error(err))
		return false
	}
	frame.entries = entries
	return true
}

// scanLines appends matching lines to results and reports whether the cap
// has been reached.
func (s *Sandbox) scanLines(data []byte, file string, re *regexp.Regexp, results *[]SearchResult) bool {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !re.MatchString(line) {
			continue
		}
		*results = append(*results, SearchResult{File: file, Line: lineNum, Content: line})
		if len(*results) >= s.opts.MaxSearchResults {
			return true
		}
	}
	return false
}

// globSuffix turns "*.ts" into ".ts". Only a literal suffix is supported.
func globSuffix(glob string) string {
	return strings.ToLower(strings.TrimLeft(glob, "*"))
}
