package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/projectfs/internal/shared/paths"
)

// maxLinkHops bounds dangling-symlink chains, matching the usual ELOOP limit.
const maxLinkHops = 40

// CanonicalRoot returns the absolute, symlink-free form of root.
// root must exist and be a directory.
func CanonicalRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", newError(KindInvalidRoot, "resolve", root, "invalid project root", os.ErrNotExist)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", newError(KindInvalidRoot, "resolve", root, "invalid project root", err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", newError(KindInvalidRoot, "resolve", root, "invalid project root", err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return "", newError(KindInvalidRoot, "resolve", root, "invalid project root", err)
	}
	if !info.IsDir() {
		return "", newError(KindInvalidRoot, "resolve", root, "invalid project root: not a directory", nil)
	}

	return canonical, nil
}

// Resolve resolves relative against root and guarantees the result stays
// inside the canonical root. The target itself need not exist, but its
// parent directory must.
func Resolve(root, relative string) (string, error) {
	canonicalRoot, err := CanonicalRoot(root)
	if err != nil {
		return "", err
	}
	return resolveWithin(canonicalRoot, relative)
}

// resolveWithin expects root to be canonical already
func resolveWithin(root, relative string) (string, error) {
	// Appended without cleaning: ".." must be resolved against the real
	// filesystem, after symlinks, not lexically.
	target := root + string(filepath.Separator) + relative

	resolved, err := canonicalize(target, 0)
	if err != nil {
		if IsKind(err, KindInvalidRoot) && !paths.Within(root, filepath.Clean(target)) {
			return "", newError(KindPathTraversal, "resolve", relative, ErrPathTraversal.Msg, nil)
		}
		// Report the caller's path; the cause would leak the absolute host path.
		var fsErr *Error
		if errors.As(err, &fsErr) {
			return "", newError(fsErr.Kind, "resolve", relative, fsErr.Msg, nil)
		}
		return "", err
	}

	if !paths.Within(root, resolved) {
		return "", newError(KindPathTraversal, "resolve", relative, ErrPathTraversal.Msg, nil)
	}

	return resolved, nil
}

// canonicalize resolves an existing path, or the parent of a path that does
// not exist yet with the final component re-appended.
func canonicalize(target string, hops int) (string, error) {
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		return resolved, nil
	}

	parent, name := splitLast(target)
	if name == "" || name == "." || name == ".." {
		return "", newError(KindInvalidRoot, "resolve", target, "cannot resolve path", nil)
	}

	canonicalParent, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return "", newError(KindInvalidRoot, "resolve", target, "parent directory does not exist", err)
	}

	candidate := filepath.Join(canonicalParent, name)

	// A dangling symlink would be followed on write, so resolve its
	// destination the same way.
	info, err := os.Lstat(candidate)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return candidate, nil
	}
	if hops >= maxLinkHops {
		return "", newError(KindIO, "resolve", target, "too many levels of symbolic links", nil)
	}
	dest, err := os.Readlink(candidate)
	if err != nil {
		return "", newError(KindIO, "resolve", target, "cannot read symbolic link", err)
	}
	if !filepath.IsAbs(dest) {
		dest = canonicalParent + string(filepath.Separator) + dest
	}
	return canonicalize(dest, hops+1)
}

// splitLast splits p at its final separator, ignoring trailing separators.
func splitLast(p string) (parent, name string) {
	end := len(p)
	for end > 1 && os.IsPathSeparator(p[end-1]) {
		end--
	}
	p = p[:end]

	i := len(p) - 1
	for i >= 0 && !os.IsPathSeparator(p[i]) {
		i--
	}
	if i < 0 {
		return ".", p
	}
	if i == 0 {
		return p[:1], p[1:]
	}
	return p[:i], p[i+1:]
}

// resolve is the entry point every Sandbox operation goes through
func (s *Sandbox) resolve(root, relative string) (string, string, error) {
	canonicalRoot, err := CanonicalRoot(root)
	if err != nil {
		return "", "", err
	}
	resolved, err := resolveWithin(canonicalRoot, relative)
	if err != nil {
		s.logger.Debug("path rejected", zapPath(relative), zapKind(err))
		return "", "", err
	}
	return canonicalRoot, resolved, nil
}
