package filesystem

import (
	"os"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/projectfs/internal/shared/paths"
)

// Search guards applied when Options leaves them unset.
const (
	DefaultMaxSearchResults  = 100
	DefaultMaxSearchFileSize = 1_000_000
)

// FileEntry describes one directory entry. Path is relative to the project root.
type FileEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size"`
}

// SearchResult is a single matching line.
type SearchResult struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Content string `json:"content"`
}

// DirStats aggregates a directory subtree
type DirStats struct {
	Path  string `json:"path"`
	Files int64  `json:"files"`
	Dirs  int64  `json:"dirs"`
	Bytes int64  `json:"bytes"`
}

// Options configures a Sandbox
type Options struct {
	// Exclusions are entry names never listed, searched or counted.
	Exclusions paths.Exclusions
	// MaxSearchResults stops a search once this many lines matched.
	MaxSearchResults int
	// MaxSearchFileSize skips larger files during search.
	MaxSearchFileSize int64
	// MaxDepth limits recursive listing; 0 means unlimited.
	MaxDepth int
	// DefaultRoot is reported by ProjectRoot; empty means the working directory.
	DefaultRoot string
	Logger      *zap.Logger
}

// DefaultOptions returns the standard exclusion set and search guards.
func DefaultOptions() Options {
	return Options{
		Exclusions:        paths.DefaultExclusions(),
		MaxSearchResults:  DefaultMaxSearchResults,
		MaxSearchFileSize: DefaultMaxSearchFileSize,
	}
}

// Sandbox runs filesystem operations confined to a project root supplied per
// call. It holds configuration only; no state is shared between calls.
type Sandbox struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Sandbox. Unset search guards fall back to the defaults.
func New(opts Options) *Sandbox {
	if opts.MaxSearchResults <= 0 {
		opts.MaxSearchResults = DefaultMaxSearchResults
	}
	if opts.MaxSearchFileSize <= 0 {
		opts.MaxSearchFileSize = DefaultMaxSearchFileSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sandbox{opts: opts, logger: logger}
}

// Options returns the sandbox configuration
func (s *Sandbox) Options() Options {
	return s.opts
}

// ProjectRoot returns the configured default root, or the current working
// directory when none is configured.
func (s *Sandbox) ProjectRoot() (string, error) {
	if s.opts.DefaultRoot != "" {
		return s.opts.DefaultRoot, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", newError(KindIO, "get_project_root", "", "failed to get project root", err)
	}
	return wd, nil
}

func zapPath(p string) zap.Field {
	return zap.String("path", p)
}

func zapKind(err error) zap.Field {
	return zap.String("kind", KindOf(err).String())
}
