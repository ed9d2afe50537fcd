// SPDX-License-Identifier: MPL-2.0

// Package testutil provides fixture helpers for tests that lay out site
// trees on disk, reducing boilerplate and keeping error handling in one
// place.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories as
// needed. The test fails immediately on any error.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// WriteComponent lays out one component directory under root: a
// component.json with the given manifest body plus any extra files, keyed
// by name relative to the component directory.
func WriteComponent(t testing.TB, root, name, manifest string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if manifest != "" {
		WriteFile(t, filepath.Join(dir, "component.json"), manifest)
	}
	for rel, content := range files {
		WriteFile(t, filepath.Join(dir, rel), content)
	}
}
