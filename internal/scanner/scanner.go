// SPDX-License-Identifier: MPL-2.0

// Package scanner determines which components a site actually references.
//
// Two independent detection channels feed one union: structured front
// matter (a sections array whose elements name a sectionType) and markup
// references (import/include forms whose path crosses a component
// directory marker). Template files are processed concurrently as
// side-effect-free read-and-parse tasks; a failure in one file is logged
// and never aborts its siblings.
package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"componize/pkg/frontmatter"
)

// maxConcurrentReads caps the number of template files read in parallel.
const maxConcurrentReads = 8

type (
	// Config selects which files are scanned and how component names are
	// extracted from reference paths.
	Config struct {
		// Extensions are the file extensions scanned in the input tree
		// (templates, markdown, plain HTML).
		Extensions []string
		// TemplateExt is the extension scanned in the layouts tree.
		TemplateExt string
		// Markers are directory names that denote "the next path segment
		// names a component" (e.g. partials, sections).
		Markers []string
		// ExcludeDirs are doublestar patterns (or plain directory names)
		// pruned from the input walk.
		ExcludeDirs []string
	}

	// Scanner walks template trees and produces the used-component set.
	Scanner struct {
		cfg Config
	}
)

// New creates a Scanner. Zero-value config fields fall back to nothing:
// callers own the defaults.
func New(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// Scan walks inputDir and, when non-empty, layoutsDir, and returns the set
// of component names referenced anywhere. Scan order never affects the
// result; only the final union matters.
func (s *Scanner) Scan(ctx context.Context, inputDir, layoutsDir string) (map[string]bool, error) {
	used := make(map[string]bool)

	files, err := s.collectInputFiles(inputDir)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			names := s.scanFile(path)
			if len(names) == 0 {
				return nil
			}
			mu.Lock()
			for _, n := range names {
				used[n] = true
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, n := range s.scanLayouts(layoutsDir) {
		used[n] = true
	}
	return used, nil
}

// InputFiles returns the files the input scan would visit, honoring the
// extension and exclusion rules. Callers use it to run further per-file
// passes over the same set.
func (s *Scanner) InputFiles(inputDir string) ([]string, error) {
	return s.collectInputFiles(inputDir)
}

// collectInputFiles walks the input tree for scannable files, pruning
// excluded directories. A missing input directory yields no files.
func (s *Scanner) collectInputFiles(inputDir string) ([]string, error) {
	if inputDir == "" {
		return nil, nil
	}
	if _, err := os.Stat(inputDir); os.IsNotExist(err) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable entry during template scan", "path", path, "error", err)
			return nil
		}
		rel, relErr := filepath.Rel(inputDir, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if path != inputDir && s.excluded(rel, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(s.cfg.Extensions, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// excluded matches a directory against the exclusion patterns, by relative
// path and by bare name so both "dist" and "**/cache" style entries work.
func (s *Scanner) excluded(rel, name string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range s.cfg.ExcludeDirs {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pat, name); err == nil && matched {
			return true
		}
	}
	return false
}

// scanFile extracts component names from one input file: sectionType
// entries from front matter plus markup references from the body. Read and
// parse failures are warnings; the file simply contributes nothing.
func (s *Scanner) scanFile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read template file", "path", path, "error", err)
		return nil
	}

	doc, err := frontmatter.Parse(data)
	if err != nil {
		slog.Warn("failed to parse front matter", "path", path, "error", err)
		return nil
	}

	var names []string
	for _, elem := range doc.Sections() {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		if sectionType, ok := obj["sectionType"].(string); ok && sectionType != "" {
			names = append(names, sectionType)
		}
	}

	for _, ref := range extractReferencePaths(string(doc.Body)) {
		if name, ok := componentNameFromPath(ref, s.cfg.Markers); ok {
			names = append(names, name)
		}
	}
	return names
}

// scanLayouts applies the markup-reference channel to every template file
// under layoutsDir. A missing directory contributes nothing. Unreadable
// files are skipped silently: layouts are the theme author's concern, and
// the main input channel already surfaces read problems loudly.
func (s *Scanner) scanLayouts(layoutsDir string) []string {
	if layoutsDir == "" {
		return nil
	}
	if _, err := os.Stat(layoutsDir); os.IsNotExist(err) {
		return nil
	}

	var names []string
	_ = filepath.WalkDir(layoutsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != s.cfg.TemplateExt {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		for _, ref := range extractReferencePaths(string(data)) {
			if name, ok := componentNameFromPath(ref, s.cfg.Markers); ok {
				names = append(names, name)
			}
		}
		return nil
	})
	return names
}

// componentNameFromPath extracts a component name from a referenced
// template path: the segment following the first marker segment. A path
// with no marker, or whose marker is the final segment, yields no match.
func componentNameFromPath(ref string, markers []string) (string, bool) {
	segments := strings.Split(ref, "/")
	for i, seg := range segments {
		if slices.Contains(markers, seg) {
			if i+1 < len(segments) && segments[i+1] != "" {
				return segments[i+1], true
			}
			return "", false
		}
	}
	return "", false
}
