// Package paths provides path containment helpers and the exclusion set used
// when walking a project tree.
//
// # Containment
//
// Within reports whether a canonical path is the root itself or lies beneath
// it. The comparison is component-wise, so "/proj-evil" is not inside
// "/proj".
//
// # Exclusions
//
// Exclusions is an immutable set of directory names that walkers never list
// or descend into. DefaultExclusions returns the standard set:
//
//	node_modules  .git  target  dist  .nuxt  .output
//
// Extra entries may be doublestar patterns matched against a single name:
//
//	ex := paths.DefaultExclusions().With("*.egg-info", "vendor")
//	if ex.Contains(entry.Name()) {
//	    // skip
//	}
package paths
