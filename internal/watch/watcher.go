// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a build when site files change.
//
// It monitors the site tree with fsnotify, filters events against
// doublestar patterns derived from the build options, and fires a
// debounced callback so rapid editor event bursts coalesce into a
// single rebuild.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"componize/internal/config"
)

// defaultDebounce is the quiet period after the last event before a
// rebuild fires.
const defaultDebounce = 300 * time.Millisecond

// alwaysIgnore covers noise no rebuild should ever react to: VCS
// metadata, editor swap files, OS metadata.
var alwaysIgnore = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// BaseDir is the root directory to watch. Empty defaults to the
		// working directory.
		BaseDir string

		// Patterns select which changed files trigger a rebuild. Empty
		// means every non-ignored file does.
		Patterns []string

		// Ignore adds doublestar patterns to the built-in ignore list.
		Ignore []string

		// Debounce overrides the default quiet period when positive.
		Debounce time.Duration

		// OnChange is invoked after the debounce window with the
		// deduplicated changed paths, relative to BaseDir.
		OnChange func(ctx context.Context, changed []string) error
	}

	// Watcher monitors the site tree and fires a debounced rebuild
	// callback. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		debounce time.Duration
		baseDir  string
		started  atomic.Bool
	}
)

// PatternsFor derives the watch pattern set from build options: scanned
// template extensions, component manifests, and component assets. The
// exclude directories become ignore patterns.
func PatternsFor(opts *config.Options) (patterns, ignore []string) {
	for _, ext := range opts.Extensions {
		patterns = append(patterns, "**/*"+ext)
	}
	patterns = append(patterns,
		"**/component.json",
		filepath.ToSlash(filepath.Join(opts.ComponentsPath, "**", "*.css")),
		filepath.ToSlash(filepath.Join(opts.ComponentsPath, "**", "*.js")),
	)
	for _, dir := range opts.ExcludeDirs {
		ignore = append(ignore, "**/"+dir+"/**", dir+"/**")
	}
	return patterns, ignore
}

// New creates a Watcher rooted at cfg.BaseDir and registers every
// non-ignored directory beneath it.
func New(cfg Config) (*Watcher, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	if err := validatePatterns(cfg.Patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	ignores := make([]string, 0, len(alwaysIgnore)+len(cfg.Ignore))
	ignores = append(ignores, alwaysIgnore...)
	ignores = append(ignores, cfg.Ignore...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  ignores,
		debounce: debounce,
		baseDir:  absBase,
	}

	if err := w.addDirectories(); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks for
// matching filesystem events. It returns nil on clean cancellation and
// propagates fatal watcher errors. A second call returns an error.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		busy    atomic.Bool
	)

	// fire drains the pending set and invokes OnChange. When a rebuild is
	// still in flight the timer is re-armed so the pending events are not
	// lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !busy.CompareAndSwap(false, true) {
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer busy.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				slog.Error("rebuild failed", "error", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil {
			localTimer.Stop()
		}
		if err := w.fsw.Close(); err != nil {
			slog.Warn("closing fsnotify watcher", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			if w.isIgnored(rel) || !w.matches(rel) {
				// New directories still extend the watch even when the
				// directory path itself matches no pattern.
				if evt.Has(fsnotify.Create) {
					w.maybeAddDir(evt.Name)
				}
				continue
			}
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			slog.Warn("fsnotify error", "error", err)
		}
	}
}

// addDirectories walks BaseDir and registers every non-ignored directory.
// Pattern filtering happens per event; directories are watched wholesale.
func (w *Watcher) addDirectories() error {
	return filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			slog.Warn("skipping inaccessible path", "path", path, "error", walkErr)
			return nil //nolint:nilerr // inaccessible paths are skipped
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}
		if w.isIgnored(rel) || w.isIgnored(rel+"/") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
}

// maybeAddDir extends the watch to a directory created after startup.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil {
		return
	}
	if w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		slog.Warn("adding new directory to watch", "path", path, "error", err)
	}
}

func (w *Watcher) isIgnored(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Watcher) matches(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.cfg.Patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if _, err := doublestar.Match(pat, ""); err != nil {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, err)
		}
	}
	return nil
}
