// Package filesystem provides file operations confined to a project root.
//
// This package is organized into specialized modules:
//   - paths: Root canonicalization and traversal-safe path resolution
//   - basic: Whole-file read and write of UTF-8 text
//   - edit: Unique find-and-replace
//   - directory: Listing (iterative DFS) and parallel subtree stats
//   - search: Regex content search with result and size caps
//   - provider: Tool definitions and dispatch for the service registry
//
// All operations:
//   - Resolve every caller path against a canonical root supplied per call
//   - Reject paths that escape the root, including through symlinks
//   - Return *Error values carrying a Kind callers can branch on
//   - Hold no state between calls
//
// Example Usage:
//
//	sandbox := filesystem.New(filesystem.DefaultOptions())
//	content, err := sandbox.Read("/path/to/project", "src/main.go")
//	if filesystem.IsKind(err, filesystem.KindPathTraversal) {
//		// reject
//	}
package filesystem
