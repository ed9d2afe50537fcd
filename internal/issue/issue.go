// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ComponentsDirNotFoundId Id = iota + 1
	DuplicateComponentId
	ManifestParseErrorId
	MissingRequirementId
	SchemaViolationId
	BundleCompileFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links, may be empty
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	componentsDirNotFoundIssue = &Issue{
		id: ComponentsDirNotFoundId,
		mdMsg: `
# No components directory found!

We looked for component trees but the configured directory does not exist.

## Directories we look in (relative to basePath):
1. components/partials
2. components/sections

## Things you can try:
- Create the directories and add a component:
~~~
$ mkdir -p components/partials/button
$ touch components/partials/button/button.njk
~~~

- Or point componize at the right place in componize.json:
~~~json
{
  "basePath": "site",
  "componentsPath": "ui"
}
~~~`,
	}

	duplicateComponentIssue = &Issue{
		id: DuplicateComponentId,
		mdMsg: `
# Duplicate component name!

Two component directories declare the same name. Names are the keys
everything else resolves against, so they must be unique across both
the partials and sections trees.

## Things you can try:
- Rename one of the directories
- If one declares a "name" in component.json, pick a distinct value:
~~~json
{
  "name": "hero-banner"
}
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse a component.json!

A component manifest contains syntax errors or invalid fields. The
component is skipped; the rest of the build continues.

## Common issues:
- Trailing commas or unquoted keys (the file must be strict JSON)
- A "requires" value that is not a list of strings
- A "validation" rule with an unknown constraint shape

## Example of a valid manifest:
~~~json
{
  "name": "banner",
  "requires": ["button"],
  "styles": ["banner.css"],
  "validation": {
    "required": ["title"],
    "properties": {
      "title": { "type": "string" }
    }
  }
}
~~~`,
	}

	missingRequirementIssue = &Issue{
		id: MissingRequirementId,
		mdMsg: `
# Missing component requirement!

A component used on this site requires another component that was not
discovered in any component tree.

## Things you can try:
- List what was discovered and what is needed:
~~~
$ componize list
~~~

- Check for typos in the "requires" list of the component's manifest
- Create the missing component directory under components/partials or
  components/sections`,
	}

	schemaViolationIssue = &Issue{
		id: SchemaViolationId,
		mdMsg: `
# Section data failed validation!

A page declares a section whose front-matter data does not satisfy the
component's validation rule. The message above names the file, the
section index, and each failing field.

## Things you can try:
- Fix the named fields in the page's front matter
- Watch for YAML coercion: an unquoted ` + "`true`" + ` is a boolean, not the
  string "true"
- Inspect the component's rule:
~~~
$ componize check
~~~`,
	}

	bundleCompileFailedIssue = &Issue{
		id: BundleCompileFailedId,
		mdMsg: `
# Asset bundle failed to compile!

Collecting or writing the CSS/JS bundle failed. In strict mode this
fails the build; otherwise the bundle is skipped with a warning.

## Common causes:
- A manifest lists a style or script file that does not exist
- The output directory is not writable

## Things you can try:
- Check the paths in each component's "styles" and "scripts" lists
- Run with verbose logging:
~~~
$ componize --verbose build
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not read or decode the componize config file.

## Things you can try:
- Check that componize.json is strict JSON
- Remove the file to fall back to defaults:
~~~
$ rm componize.json
~~~

## Example configuration:
~~~json
{
  "basePath": ".",
  "extensions": [".njk", ".md", ".html"],
  "minify": true
}
~~~`,
	}

	issues = map[Id]*Issue{
		componentsDirNotFoundIssue.Id(): componentsDirNotFoundIssue,
		duplicateComponentIssue.Id():    duplicateComponentIssue,
		manifestParseErrorIssue.Id():    manifestParseErrorIssue,
		missingRequirementIssue.Id():    missingRequirementIssue,
		schemaViolationIssue.Id():       schemaViolationIssue,
		bundleCompileFailedIssue.Id():   bundleCompileFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
