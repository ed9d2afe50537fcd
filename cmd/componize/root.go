// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for componize.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"componize/internal/config"
	"componize/internal/issue"

	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Global flag values, merged over the loaded config in loadOptions.
	verbose  bool
	strict   bool
	minify   bool
	cfgFile  string
	basePath string

	// rootCmd represents the base command when called without subcommands.
	rootCmd = &cobra.Command{
		Use:   "componize",
		Short: "Component discovery and bundling for static sites",
		Long: TitleStyle.Render("componize") + SubtitleStyle.Render(" - component discovery and bundling for static sites") + `

componize scans a static site's templates and front matter to find which
front-end components are actually used, resolves their transitive
requirements, validates each page section's data against the component's
declared rules, and bundles only the needed CSS and JS.

Components live in per-directory trees (partials and sections), each
optionally carrying a component.json manifest.

` + SubtitleStyle.Render("Examples:") + `
  componize build               Run the full pipeline into dist/
  componize build --watch       Rebuild on file changes
  componize list                Show discovered components
  componize check               Validate without writing bundles`,
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./componize.json)")
	rootCmd.PersistentFlags().StringVar(&basePath, "base", "", "site base path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "treat validation problems as build failures")
	rootCmd.PersistentFlags().BoolVar(&minify, "minify", false, "minify bundle output")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(issuesCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initLogging installs the charm log handler as the slog default so every
// package's slog calls share one styled output.
func initLogging() {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	slog.SetDefault(slog.New(handler))
}

// loadOptions merges the config file, environment, and the global flags
// that were explicitly set on the command line.
func loadOptions(cmd *cobra.Command) (*config.Options, error) {
	opts, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("base") {
		opts.BasePath = basePath
	}
	if cmd.Flags().Changed("strict") {
		opts.Strict = strict
	}
	if cmd.Flags().Changed("minify") {
		opts.Minify = minify
	}
	if cmd.Flags().Changed("verbose") {
		opts.Verbose = verbose
	}
	return opts, nil
}

// formatErrorForDisplay formats an error for user display. ActionableError
// values render their suggestions; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
