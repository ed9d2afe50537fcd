// SPDX-License-Identifier: MPL-2.0

package component

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// SanitizeAssetPaths filters declared asset paths, dropping any path that
// escapes the component's own directory once resolved. Rejected paths are
// logged, not errors: one hostile or sloppy manifest entry must not sink
// the component.
//
// Rejected: parent traversal ("../x"), traversal hidden in a deeper path
// ("a/../../x"), and absolute paths outside dir. Accepted: plain relative
// paths ("x", "./x", "a/b") and absolute paths that stay inside dir.
func SanitizeAssetPaths(dir string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	root := filepath.Clean(dir)
	var safe []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		var resolved string
		if filepath.IsAbs(p) {
			resolved = filepath.Clean(p)
		} else {
			resolved = filepath.Join(root, p)
		}
		if !withinDir(root, resolved) {
			slog.Warn("dropping asset path outside component directory",
				"component_dir", dir, "path", p)
			continue
		}
		safe = append(safe, p)
	}
	return safe
}

// withinDir reports whether path equals dir or sits below it. Both inputs
// must already be cleaned.
func withinDir(dir, path string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
