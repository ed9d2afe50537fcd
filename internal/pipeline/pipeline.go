// SPDX-License-Identifier: MPL-2.0

// Package pipeline wires discovery, scanning, resolution, validation and
// bundling into the two build hooks: Before runs ahead of the site build
// and produces a Context, After consumes it to emit the asset bundles.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"componize/internal/bundler"
	"componize/internal/config"
	"componize/internal/issue"
	"componize/internal/resolver"
	"componize/internal/scanner"
	"componize/pkg/component"
	"componize/pkg/frontmatter"
	"componize/pkg/schema"
)

var (
	// ErrValidation marks a strict-mode build aborted by validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrBundle marks a failure to compile or write an asset bundle.
	ErrBundle = errors.New("bundle failed")
)

// Context carries the outcome of the before-build hook to the after-build
// hook. It is created by Before and read-only afterwards.
type Context struct {
	// Opts are the options the build ran with.
	Opts *config.Options
	// Components is every discovered component, sections tree first, in
	// discovery order.
	Components []*component.Component
	// Map indexes Components by name.
	Map component.Map
	// Used is the set of component names referenced directly by templates.
	Used map[string]bool
	// Needed is Used plus every transitive requirement.
	Needed map[string]bool
	// Filtered is Components reduced to the needed set, order preserved.
	Filtered []*component.Component
	// Missing lists requirement errors (needed components that require
	// something undiscovered).
	Missing []string
	// Diagnostics lists section data that failed schema validation.
	Diagnostics []schema.Diagnostic
}

// Before discovers components, scans usage, resolves the needed set and
// runs both validators. A duplicate component name is always fatal. In
// strict mode any missing requirement or schema diagnostic aborts with
// ErrValidation; otherwise both are logged as warnings and the build
// proceeds.
func Before(ctx context.Context, opts *config.Options) (*Context, error) {
	components, err := discover(opts)
	if err != nil {
		return nil, err
	}

	m, err := component.NewMap(components)
	if err != nil {
		return nil, err
	}
	slog.Debug("components discovered", "count", len(components))

	sc := scanner.New(scanner.Config{
		Extensions:  opts.Extensions,
		TemplateExt: opts.TemplateExt(),
		Markers:     opts.Markers(),
		ExcludeDirs: opts.ExcludeDirs,
	})
	used, err := sc.Scan(ctx, opts.BasePath, opts.LayoutsRoot())
	if err != nil {
		return nil, fmt.Errorf("scanning for component usage: %w", err)
	}

	needed := resolver.ResolveAll(used, m)
	filtered := component.Filter(components, needed)
	missing := resolver.ValidateRequirements(needed, m)

	diags, err := validateSectionData(sc, opts.BasePath, m)
	if err != nil {
		return nil, err
	}

	bctx := &Context{
		Opts:        opts,
		Components:  components,
		Map:         m,
		Used:        used,
		Needed:      needed,
		Filtered:    filtered,
		Missing:     missing,
		Diagnostics: diags,
	}

	for _, msg := range missing {
		slog.Warn(msg)
	}
	for _, d := range diags {
		slog.Warn(d.Message)
	}
	if opts.Strict && (len(missing) > 0 || len(diags) > 0) {
		return bctx, fmt.Errorf("%w: %d missing requirement(s), %d schema diagnostic(s)",
			ErrValidation, len(missing), len(diags))
	}
	return bctx, nil
}

// After collects the filtered components' assets and writes the CSS and
// JS bundles under outputDir. A kind with no inputs writes nothing. A
// compile failure fails the build in strict mode; otherwise that kind is
// skipped with a warning.
func After(bctx *Context, outputDir string) error {
	assets := bundler.Collect(bctx.Filtered)
	c := bundler.New()
	bopts := bundler.Options{Minify: bctx.Opts.Minify}

	css, err := c.CompileCSS(assets.CSS, bopts)
	if err != nil {
		if bctx.Opts.Strict {
			return bundleFailure(err, "compile CSS bundle",
				"Check the paths in each component's styles list")
		}
		slog.Warn("skipping CSS bundle", "error", err)
		css = nil
	}
	js, err := c.CompileJS(assets.JS, bopts)
	if err != nil {
		if bctx.Opts.Strict {
			return bundleFailure(err, "compile JS bundle",
				"Check the paths in each component's scripts list")
		}
		slog.Warn("skipping JS bundle", "error", err)
		js = nil
	}

	if css != nil {
		if err := writeBundle(filepath.Join(outputDir, bctx.Opts.CSSDest), css); err != nil {
			return err
		}
	}
	if js != nil {
		if err := writeBundle(filepath.Join(outputDir, bctx.Opts.JSDest), js); err != nil {
			return err
		}
	}
	return nil
}

// discover loads both component trees, sections first, so section
// components precede partials in listings.
func discover(opts *config.Options) ([]*component.Component, error) {
	sections, err := component.Discover(opts.SectionsRoot())
	if err != nil {
		return nil, fmt.Errorf("discovering section components: %w", err)
	}
	partials, err := component.Discover(opts.PartialsRoot())
	if err != nil {
		return nil, fmt.Errorf("discovering partial components: %w", err)
	}
	return append(sections, partials...), nil
}

// validateSectionData parses front matter from every scannable input file
// and validates each section object against its component's rule.
func validateSectionData(sc *scanner.Scanner, inputDir string, m component.Map) ([]schema.Diagnostic, error) {
	files, err := sc.InputFiles(inputDir)
	if err != nil {
		return nil, err
	}

	lookup := func(sectionType string) (*schema.Rule, error) {
		c, ok := m[sectionType]
		if !ok {
			return nil, fmt.Errorf("unknown component %q", sectionType)
		}
		return c.Validation, nil
	}

	var diags []schema.Diagnostic
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("failed to read file for section validation", "path", path, "error", err)
			continue
		}
		doc, err := frontmatter.Parse(data)
		if err != nil {
			continue
		}
		sections := doc.Sections()
		if len(sections) == 0 {
			continue
		}
		rel, relErr := filepath.Rel(inputDir, path)
		if relErr != nil {
			rel = path
		}
		diags = append(diags, schema.ValidateSections(sections, lookup, filepath.ToSlash(rel))...)
	}
	return diags, nil
}

func writeBundle(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return bundleFailure(err, "create bundle directory "+filepath.Dir(dest),
			"Check that the output directory is writable")
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return bundleFailure(err, "write bundle "+dest,
			"Check that the output directory is writable")
	}
	slog.Info("bundle written", "path", dest, "bytes", len(data))
	return nil
}

// bundleFailure wraps a bundle error with ErrBundle and remediation
// context so the CLI can render the matching catalog entry.
func bundleFailure(err error, operation, suggestion string) error {
	return issue.NewErrorContext().
		WithOperation(operation).
		WithSuggestion(suggestion).
		Wrap(fmt.Errorf("%w: %v", ErrBundle, err)).
		BuildError()
}

// Summary is a one-line description of a build outcome for logs and the
// check command.
func (c *Context) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d component(s) discovered, %d used, %d needed",
		len(c.Components), len(c.Used), len(c.Needed))
	if len(c.Missing) > 0 {
		fmt.Fprintf(&b, ", %d missing requirement(s)", len(c.Missing))
	}
	if len(c.Diagnostics) > 0 {
		fmt.Fprintf(&b, ", %d schema diagnostic(s)", len(c.Diagnostics))
	}
	return b.String()
}
