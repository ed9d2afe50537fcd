// SPDX-License-Identifier: MPL-2.0

package component

import (
	"errors"
	"fmt"

	"componize/pkg/schema"
)

// TypeAuto tags components whose manifest was synthesized because the
// directory carried no component.json.
const TypeAuto = "auto"

var (
	// ErrDuplicateName is the sentinel wrapped by DuplicateNameError.
	ErrDuplicateName = errors.New("duplicate component name")
)

type (
	// Component is a named unit of reusable front-end markup and assets,
	// loaded once per build from one component directory.
	Component struct {
		// Name is the unique key downstream stages address the component by.
		Name string
		// Path is the absolute path of the component's directory.
		Path string
		// Type is the origin tag: TypeAuto when synthesized, otherwise
		// whatever string the manifest declared.
		Type string
		// Description is free-form manifest text, used by listings only.
		Description string
		// Styles holds sanitized stylesheet paths relative to Path.
		Styles []string
		// Scripts holds sanitized script paths relative to Path.
		Scripts []string
		// Requires names the components this one depends on. Order carries
		// no meaning; only existence is ever checked.
		Requires []string
		// Dependencies is the legacy alias for Requires. Consumers read
		// Requires first and fall back to this, via Requirements.
		Dependencies []string
		// Validation is the optional rule for section data supplied when
		// this component is used as a page section.
		Validation *schema.Rule
	}

	// Map indexes components by name. It is built once per discovery pass
	// and read-only for the remainder of the pipeline.
	Map map[string]*Component

	// DuplicateNameError is returned by NewMap when two discovered
	// components claim the same name. It wraps ErrDuplicateName.
	DuplicateNameError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate component name %q: component names must be unique", e.Name)
}

// Unwrap returns ErrDuplicateName for errors.Is checks.
func (e *DuplicateNameError) Unwrap() error {
	return ErrDuplicateName
}

// Requirements returns the component's requirement list: Requires when the
// manifest declared one (even explicitly empty), else Dependencies. The
// alias resolution happens here, once, so no other code re-checks it.
func (c *Component) Requirements() []string {
	if c.Requires != nil {
		return c.Requires
	}
	return c.Dependencies
}

// NewMap builds a name-keyed Map from a discovered component sequence.
// A duplicate name is fatal: the component tree is ambiguous and the build
// cannot safely reason about it.
func NewMap(components []*Component) (Map, error) {
	m := make(Map, len(components))
	for _, c := range components {
		if _, exists := m[c.Name]; exists {
			return nil, &DuplicateNameError{Name: c.Name}
		}
		m[c.Name] = c
	}
	return m, nil
}

// Filter returns the subsequence of components whose name is in the needed
// set, preserving the original discovery order.
func Filter(components []*Component, needed map[string]bool) []*Component {
	var kept []*Component
	for _, c := range components {
		if needed[c.Name] {
			kept = append(kept, c)
		}
	}
	return kept
}
