// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"componize/internal/issue"
	"componize/internal/pipeline"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered components and their usage",
	Long: `Discovers both component trees and scans the site, then prints each
component with its type, requirements, declared assets, and whether the
current site needs it.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		reportFatal(err)
		return &ExitError{Code: 1, Err: err}
	}
	// Listing never fails on validation problems; they are shown inline.
	opts.Strict = false

	bctx, err := pipeline.Before(cmd.Context(), opts)
	if err != nil {
		reportFatal(err)
		return &ExitError{Code: 1, Err: err}
	}

	if len(bctx.Components) == 0 {
		fmt.Println(SubtitleStyle.Render("No components discovered under " + opts.ComponentsPath))
		if _, err := os.Stat(filepath.Join(opts.BasePath, opts.ComponentsPath)); os.IsNotExist(err) {
			renderIssue(issue.Get(issue.ComponentsDirNotFoundId))
		}
		return nil
	}

	fmt.Println(TitleStyle.Render("Components") + SubtitleStyle.Render(fmt.Sprintf(" (%d discovered)", len(bctx.Components))))
	for _, c := range bctx.Components {
		marker := SubtitleStyle.Render("·")
		if bctx.Needed[c.Name] {
			marker = SuccessStyle.Render("✓")
		}
		line := fmt.Sprintf("%s %s", marker, NameStyle.Render(fmt.Sprintf("%-20s", c.Name)))
		if c.Type != "" {
			line += SubtitleStyle.Render(fmt.Sprintf(" [%s]", c.Type))
		}
		if reqs := c.Requirements(); len(reqs) > 0 {
			line += " requires " + strings.Join(reqs, ", ")
		}
		if n := len(c.Styles) + len(c.Scripts); n > 0 {
			line += SubtitleStyle.Render(fmt.Sprintf(" (%d asset(s))", n))
		}
		fmt.Println(line)
	}

	for _, msg := range bctx.Missing {
		fmt.Println(WarningStyle.Render("! ") + msg)
	}
	return nil
}
