// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"componize/internal/config"
	"componize/internal/issue"
	"componize/internal/pipeline"
	"componize/pkg/component"

	"github.com/spf13/cobra"
)

// issueFor maps a fatal error to its remediation catalog entry. Errors
// outside the catalog return nil and are reported plainly.
func issueFor(err error) *issue.Issue {
	switch {
	case errors.Is(err, component.ErrDuplicateName):
		return issue.Get(issue.DuplicateComponentId)
	case errors.Is(err, config.ErrLoad):
		return issue.Get(issue.ConfigLoadFailedId)
	case errors.Is(err, pipeline.ErrBundle):
		return issue.Get(issue.BundleCompileFailedId)
	}
	return nil
}

// reportFatal prints the error and, when the catalog knows this failure
// mode, its rendered remediation text.
func reportFatal(err error) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	renderIssue(issueFor(err))
}

// renderIssue writes the glamour-rendered markdown for an issue to
// stderr. A nil issue or a render failure produces no output; the plain
// error text has already been printed.
func renderIssue(iss *issue.Issue) {
	if iss == nil {
		return
	}
	out, err := iss.Render("auto")
	if err != nil {
		return
	}
	fmt.Fprint(os.Stderr, out)
}

// issuesCmd prints the remediation docs for every failure mode the CLI
// can report.
var issuesCmd = &cobra.Command{
	Use:    "issues",
	Short:  "Show remediation docs for every known failure mode",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, iss := range issue.Values() {
			out, err := iss.Render("auto")
			if err != nil {
				return err
			}
			fmt.Print(out)
		}
		return nil
	},
}
