// SPDX-License-Identifier: MPL-2.0

package scanner

import "regexp"

// The two reference forms recognized in template markup:
//
//	{% from "components/partials/button/button.njk" import button %}
//	{% include 'components/sections/banner/banner.njk' %}
//
// Single and double quotes are both accepted and whitespace around the
// keywords and delimiters is insignificant, including the fully compact
// form. Matching lives behind extractReferencePaths alone so the strategy
// can be swapped without touching name extraction or the set union.
var (
	importRe  = regexp.MustCompile(`\{%\s*from\s*['"]([^'"]+)['"]\s*import[^%]+%\}`)
	includeRe = regexp.MustCompile(`\{%\s*include\s*['"]([^'"]+)['"]\s*%\}`)
)

// extractReferencePaths returns every path literal referenced by an import
// or include form in the template text, in document order per form.
func extractReferencePaths(body string) []string {
	var paths []string
	for _, re := range []*regexp.Regexp{importRe, includeRe} {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			paths = append(paths, m[1])
		}
	}
	return paths
}
