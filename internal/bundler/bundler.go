// SPDX-License-Identifier: MPL-2.0

// Package bundler compiles the styles and scripts of the filtered
// component list into one CSS and one JS output.
//
// Inputs are deduplicated twice: by absolute path (a component listing the
// same file twice contributes it once) and by content (two components
// shipping byte-identical copies of a shared stylesheet contribute one
// copy to the bundle). CSS @import statements referencing the site's own
// files are inlined one level deep; url() and remote imports pass through
// untouched.
package bundler

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"

	"componize/pkg/component"
)

var importStmtRe = regexp.MustCompile(`@import\s+["']([^"']+)["']\s*;`)

type (
	// Options controls one compilation pass.
	Options struct {
		// Minify runs the combined output through the minifier.
		Minify bool
	}

	// Compiler concatenates and optionally minifies asset files.
	Compiler struct {
		m *minify.M
	}

	// Assets is the ordered, path-deduplicated list of absolute asset
	// paths collected from a component sequence.
	Assets struct {
		CSS []string
		JS  []string
	}
)

// New creates a Compiler with CSS and JS minifiers registered.
func New() *Compiler {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	return &Compiler{m: m}
}

// Collect gathers the absolute style and script paths of the given
// components, preserving component order and per-component declaration
// order, deduplicating repeated paths.
func Collect(components []*component.Component) Assets {
	var a Assets
	seen := make(map[string]bool)
	for _, c := range components {
		for _, rel := range c.Styles {
			if path := assetPath(c.Path, rel); !seen[path] {
				seen[path] = true
				a.CSS = append(a.CSS, path)
			}
		}
		for _, rel := range c.Scripts {
			if path := assetPath(c.Path, rel); !seen[path] {
				seen[path] = true
				a.JS = append(a.JS, path)
			}
		}
	}
	return a
}

func assetPath(dir, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(dir, rel)
}

// CompileCSS reads, inlines, deduplicates and combines the given
// stylesheet paths. A nil result with nil error means there was nothing to
// compile. Any read or minify failure is returned as-is; strictness policy
// belongs to the caller.
func (c *Compiler) CompileCSS(paths []string, opts Options) ([]byte, error) {
	chunks, err := readAll(paths, true)
	if err != nil {
		return nil, err
	}
	if chunks == nil {
		return nil, nil
	}
	combined := strings.Join(chunks, "\n")
	if opts.Minify {
		out, err := c.m.String("text/css", combined)
		if err != nil {
			return nil, fmt.Errorf("minifying css: %w", err)
		}
		combined = out
	}
	return []byte(combined), nil
}

// CompileJS concatenates and optionally minifies the given script paths.
// A nil result with nil error means there was nothing to compile.
func (c *Compiler) CompileJS(paths []string, opts Options) ([]byte, error) {
	chunks, err := readAll(paths, false)
	if err != nil {
		return nil, err
	}
	if chunks == nil {
		return nil, nil
	}
	combined := strings.Join(chunks, "\n")
	if opts.Minify {
		out, err := c.m.String("application/javascript", combined)
		if err != nil {
			return nil, fmt.Errorf("minifying js: %w", err)
		}
		combined = out
	}
	return []byte(combined), nil
}

// readAll reads every path, optionally inlining CSS imports, and drops
// chunks whose content was already contributed by an earlier file.
func readAll(paths []string, inlineImports bool) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	var chunks []string
	seenContent := make(map[string]bool)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading asset %s: %w", path, err)
		}
		text := string(data)
		if inlineImports {
			text = inlineCSSImports(text, filepath.Dir(path))
		}
		if seenContent[text] {
			continue
		}
		seenContent[text] = true
		chunks = append(chunks, text)
	}
	return chunks, nil
}

// inlineCSSImports replaces @import "rel/path"; statements with the
// referenced file's content, one level deep, resolved relative to the
// importing file. Remote imports and unreadable targets are left in place.
func inlineCSSImports(text, dir string) string {
	return importStmtRe.ReplaceAllStringFunc(text, func(stmt string) string {
		ref := importStmtRe.FindStringSubmatch(stmt)[1]
		if strings.Contains(ref, "://") || strings.HasPrefix(ref, "//") {
			return stmt
		}
		data, err := os.ReadFile(filepath.Join(dir, ref))
		if err != nil {
			return stmt
		}
		return string(data)
	})
}
