// SPDX-License-Identifier: MPL-2.0

package component

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Discover scans a component root directory and returns one Component per
// immediate subdirectory, in filesystem enumeration order. Non-directory
// entries are skipped. A missing root yields an empty result, not an
// error: a site without sections or without partials is a normal site.
//
// Subdirectories with a manifest that fails to parse, or whose manifest
// lacks a name, are logged and excluded; the pass continues. Directories
// without a manifest get an auto-synthesized one.
func Discover(root string) ([]*Component, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving component root %s: %w", root, err)
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading component root %s: %w", absRoot, err)
	}

	var components []*Component
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(absRoot, entry.Name())
		c, ok := load(dir, entry.Name())
		if !ok {
			continue
		}
		components = append(components, c)
	}
	return components, nil
}

// load produces the Component for one directory. The second return is
// false when the directory must be skipped.
func load(dir, name string) (*Component, bool) {
	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); err != nil {
		if os.IsNotExist(err) {
			return synthesize(dir, name), true
		}
		// A manifest that exists but cannot be inspected must not be
		// masked behind an auto component.
		slog.Warn("skipping component with unreadable manifest", "path", manifestPath, "error", err)
		return nil, false
	}

	m, err := ParseManifest(manifestPath)
	if err != nil {
		slog.Warn("skipping component with malformed manifest", "path", manifestPath, "error", err)
		return nil, false
	}
	if m.Name == "" {
		slog.Warn("skipping component manifest without a name", "path", manifestPath)
		return nil, false
	}
	return fromManifest(m, dir), true
}

// synthesize builds an auto manifest for a directory without component.json
// by probing for <dirname>.css and <dirname>.js directly inside it. Each
// asset is included only when present.
func synthesize(dir, name string) *Component {
	c := &Component{
		Name:         name,
		Path:         dir,
		Type:         TypeAuto,
		Requires:     []string{},
		Dependencies: []string{},
	}
	if _, err := os.Stat(filepath.Join(dir, name+".css")); err == nil {
		c.Styles = []string{name + ".css"}
	}
	if _, err := os.Stat(filepath.Join(dir, name+".js")); err == nil {
		c.Scripts = []string{name + ".js"}
	}
	return c
}
