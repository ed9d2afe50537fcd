// SPDX-License-Identifier: MPL-2.0

package schema

import "fmt"

type (
	// RuleLookup resolves a sectionType to the validation rule its component
	// manifest declares. Implementations return an error for unknown
	// components and a nil rule for components without a validation block;
	// both cases cause ValidateSections to skip the section.
	RuleLookup func(sectionType string) (*Rule, error)

	// Diagnostic is one failed section from a batch validation pass.
	Diagnostic struct {
		// Message is the full, context-prefixed failure text.
		Message string
		// SectionType is the component name the section named.
		SectionType string
		// SectionIndex is the section's position in the sections array.
		SectionIndex int
	}
)

// ValidateSections validates every element of a front-matter sections array
// against the rule its sectionType resolves to. Elements that are not
// objects, lack a sectionType, resolve to an unknown component, or resolve
// to a component without validation rules are skipped silently. A nil
// sections slice yields no diagnostics.
//
// Each diagnostic message is prefixed with its context:
// "Section <i> (<type>) in <file>:" when fileName is supplied, else
// "Section <i> (<type>):".
func ValidateSections(sections []any, lookup RuleLookup, fileName string) []Diagnostic {
	if len(sections) == 0 || lookup == nil {
		return nil
	}

	var diags []Diagnostic
	for i, elem := range sections {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		sectionType, ok := obj["sectionType"].(string)
		if !ok || sectionType == "" {
			continue
		}
		rule, err := lookup(sectionType)
		if err != nil || rule.Empty() {
			continue
		}

		result := Validate(obj, rule)
		if result.Valid() {
			continue
		}

		var prefix string
		if fileName != "" {
			prefix = fmt.Sprintf("Section %d (%s) in %s:", i, sectionType, fileName)
		} else {
			prefix = fmt.Sprintf("Section %d (%s):", i, sectionType)
		}
		diags = append(diags, Diagnostic{
			Message:      prefix + "\n" + result.Message(),
			SectionType:  sectionType,
			SectionIndex: i,
		})
	}
	return diags
}
