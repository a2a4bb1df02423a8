package paths

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludedNames are directory names never listed or descended into.
var DefaultExcludedNames = []string{"node_modules", ".git", "target", "dist", ".nuxt", ".output"}

// Exclusions is an immutable set of excluded entry names.
// The zero value excludes nothing.
type Exclusions struct {
	names    map[string]struct{}
	patterns []string
}

// NewExclusions builds an exclusion set. Entries containing glob
// metacharacters are kept as doublestar patterns, the rest as literal names.
func NewExclusions(entries ...string) Exclusions {
	ex := Exclusions{names: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if isPattern(e) {
			if doublestar.ValidatePattern(e) {
				ex.patterns = append(ex.patterns, e)
			}
			continue
		}
		ex.names[e] = struct{}{}
	}
	return ex
}

// DefaultExclusions returns the standard exclusion set.
func DefaultExclusions() Exclusions {
	return NewExclusions(DefaultExcludedNames...)
}

// With returns a copy of the set extended with entries.
func (e Exclusions) With(entries ...string) Exclusions {
	all := append(e.Entries(), entries...)
	return NewExclusions(all...)
}

// Contains reports whether name is excluded.
func (e Exclusions) Contains(name string) bool {
	if _, ok := e.names[name]; ok {
		return true
	}
	for _, p := range e.patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Entries returns the names and patterns in the set.
func (e Exclusions) Entries() []string {
	out := make([]string, 0, len(e.names)+len(e.patterns))
	for n := range e.names {
		out = append(out, n)
	}
	return append(out, e.patterns...)
}

// Len returns the number of names and patterns in the set.
func (e Exclusions) Len() int {
	return len(e.names) + len(e.patterns)
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{\\")
}

// Within reports whether path equals root or lies beneath it.
// Both arguments must already be canonical.
func Within(root, path string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// Relative returns path relative to root, or path unchanged when it cannot be
// expressed relative to root.
func Relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
