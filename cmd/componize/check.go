// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"componize/internal/pipeline"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate components and section data without writing bundles",
	Long: `Runs discovery, usage scanning, requirement resolution and both
validators, then prints every problem found. Exits non-zero in strict
mode when anything failed.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		reportFatal(err)
		return &ExitError{Code: 1, Err: err}
	}

	bctx, err := pipeline.Before(cmd.Context(), opts)
	if err != nil && !errors.Is(err, pipeline.ErrValidation) {
		reportFatal(err)
		return &ExitError{Code: 1, Err: err}
	}

	clean := len(bctx.Missing) == 0 && len(bctx.Diagnostics) == 0
	if clean {
		fmt.Println(SuccessStyle.Render("✓ ") + bctx.Summary())
		return nil
	}

	for _, msg := range bctx.Missing {
		fmt.Println(ErrorStyle.Render("✗ ") + msg)
	}
	for _, d := range bctx.Diagnostics {
		fmt.Println(WarningStyle.Render("! ") + d.Message)
	}
	fmt.Println(SubtitleStyle.Render(bctx.Summary()))

	if opts.Strict {
		return &ExitError{Code: 1, Err: pipeline.ErrValidation}
	}
	return nil
}
