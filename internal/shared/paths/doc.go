// Package paths provides the path arithmetic behind the accessor sandbox.
//
// All helpers are lexical: they never touch the filesystem and never
// evaluate symlinks.
//
// # Usage
//
//	root, _ := paths.Canonical("/srv/data")
//	target := paths.Join(root, "../etc/passwd") // /srv/etc/passwd
//	if !paths.Within(root, target) {
//	    // reject
//	}
package paths
