// SPDX-License-Identifier: MPL-2.0

package schema

const (
	// TypeBoolean matches bool values.
	TypeBoolean = "boolean"
	// TypeString matches string values.
	TypeString = "string"
	// TypeNumber matches integer and floating point values.
	TypeNumber = "number"
	// TypeArray matches list values.
	TypeArray = "array"
	// TypeObject matches map values. Arrays are not objects.
	TypeObject = "object"
)

type (
	// Rule is the validation block a component manifest declares for the
	// section data it expects. Required lists dot-paths that must be present
	// (a null value still counts as present). Properties maps dot-paths to
	// the constraints applied to the value at that path, when one exists.
	Rule struct {
		Required   []string                 `json:"required,omitempty"`
		Properties map[string]*PropertyRule `json:"properties,omitempty"`
	}

	// PropertyRule is the constraint object for a single dot-path. Every
	// field is optional; the constraints present are applied independently.
	PropertyRule struct {
		// Type is one of boolean, string, number, array, object.
		Type string `json:"type,omitempty"`
		// Const requires the value to equal this constant exactly.
		Const any `json:"const,omitempty"`
		// Enum requires the value to be a member of this list.
		Enum []any `json:"enum,omitempty"`
		// Items constrains each element of an array-valued property.
		Items *ItemsRule `json:"items,omitempty"`
	}

	// ItemsRule constrains array elements: either a nested Properties map
	// applied to each element, or a direct Type/Enum constraint applied to
	// each element's value.
	ItemsRule struct {
		Type       string                   `json:"type,omitempty"`
		Enum       []any                    `json:"enum,omitempty"`
		Properties map[string]*PropertyRule `json:"properties,omitempty"`
	}
)

// Empty reports whether the rule carries no constraints at all.
func (r *Rule) Empty() bool {
	return r == nil || (len(r.Required) == 0 && len(r.Properties) == 0)
}
