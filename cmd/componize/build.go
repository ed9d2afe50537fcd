// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"componize/internal/config"
	"componize/internal/issue"
	"componize/internal/pipeline"
	"componize/internal/watch"

	"github.com/spf13/cobra"
)

var (
	outputDir  string
	watchFlag  bool
	watchDelay time.Duration

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Discover, validate and bundle the site's components",
		Long: `Runs the full pipeline: discover components, scan templates and front
matter for usage, resolve transitive requirements, validate, and write
the CSS and JS bundles for the needed components only.`,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVarP(&outputDir, "output", "o", "dist", "output directory for bundles")
	buildCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "rebuild when site files change")
	buildCmd.Flags().DurationVar(&watchDelay, "debounce", 0, "quiet period before a watched rebuild")
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		reportFatal(err)
		return &ExitError{Code: 1, Err: err}
	}

	if err := buildOnce(cmd.Context(), opts); err != nil {
		if !watchFlag {
			reportFatal(err)
			return &ExitError{Code: 1, Err: err}
		}
		// In watch mode a failed first build is not fatal; the next
		// change gets another chance.
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Build failed: ")+formatErrorForDisplay(err, verbose))
	}

	if !watchFlag {
		return nil
	}
	return runWatch(cmd.Context(), opts)
}

func buildOnce(ctx context.Context, opts *config.Options) error {
	start := time.Now()

	bctx, err := pipeline.Before(ctx, opts)
	if err != nil {
		if errors.Is(err, pipeline.ErrValidation) {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Validation failed"))
			for _, msg := range bctx.Missing {
				fmt.Fprintln(os.Stderr, "  "+WarningStyle.Render(msg))
			}
			for _, d := range bctx.Diagnostics {
				fmt.Fprintln(os.Stderr, "  "+WarningStyle.Render(d.Message))
			}
			if len(bctx.Missing) > 0 {
				renderIssue(issue.Get(issue.MissingRequirementId))
			}
			if len(bctx.Diagnostics) > 0 {
				renderIssue(issue.Get(issue.SchemaViolationId))
			}
		}
		return err
	}

	if err := pipeline.After(bctx, outputDir); err != nil {
		return err
	}

	fmt.Println(SuccessStyle.Render("✓ ") + bctx.Summary() +
		SubtitleStyle.Render(fmt.Sprintf(" (%s)", time.Since(start).Round(time.Millisecond))))
	return nil
}

func runWatch(ctx context.Context, opts *config.Options) error {
	patterns, ignore := watch.PatternsFor(opts)
	// Never rebuild because of our own bundle writes.
	ignore = append(ignore, outputDir+"/**", "**/"+outputDir+"/**")

	w, err := watch.New(watch.Config{
		BaseDir:  opts.BasePath,
		Patterns: patterns,
		Ignore:   ignore,
		Debounce: watchDelay,
		OnChange: func(ctx context.Context, changed []string) error {
			slog.Info("change detected", "files", len(changed))
			if err := buildOnce(ctx, opts); err != nil {
				fmt.Fprintln(os.Stderr, ErrorStyle.Render("Build failed: ")+formatErrorForDisplay(err, verbose))
			}
			return nil
		},
	})
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Println(SubtitleStyle.Render("Watching for changes. Press Ctrl+C to stop."))
	if err := w.Run(ctx); err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}
