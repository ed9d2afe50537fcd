// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var headingTagRe = regexp.MustCompile(`^h[1-6]$`)

// headingMisspellings are section-data values that authors commonly supply
// where a heading tag (h1..h6) is expected.
var headingMisspellings = map[string]bool{
	"header":  true,
	"heading": true,
	"title":   true,
}

type (
	// Violation is a single failed check against a section object.
	Violation struct {
		// Path is the dot-path of the offending value.
		Path string
		// Message describes the failed check.
		Message string
		// Tip is an optional advisory hint appended to the message.
		Tip string
	}

	// Result collects every violation found in one section object.
	// All checks run to completion; nothing stops at the first failure.
	Result struct {
		Violations []Violation
	}
)

// String renders the violation as "<path>: <message>" with the tip, if any,
// appended.
func (v Violation) String() string {
	s := v.Path + ": " + v.Message
	if v.Tip != "" {
		s += " " + v.Tip
	}
	return s
}

// Valid reports whether the section passed every check.
func (r *Result) Valid() bool {
	return len(r.Violations) == 0
}

// Message returns the combined failure message, one violation per line.
// Empty string when the section is valid.
func (r *Result) Message() string {
	if r.Valid() {
		return ""
	}
	lines := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		lines[i] = v.String()
	}
	return strings.Join(lines, "\n")
}

// Validate checks a section object against a component's validation rule.
// The required list is checked first, then every constraint of every entry
// in the properties map. A nil or empty rule always passes.
func Validate(section map[string]any, rule *Rule) *Result {
	res := &Result{}
	if rule.Empty() {
		return res
	}

	for _, path := range rule.Required {
		if _, present := resolvePath(section, path); !present {
			res.add(path, "required property is missing", "")
		}
	}

	for _, path := range sortedKeys(rule.Properties) {
		prop := rule.Properties[path]
		if prop == nil {
			continue
		}
		value, present := resolvePath(section, path)
		if !present || value == nil {
			// Absence is the required list's concern, not a constraint failure.
			continue
		}
		res.checkProperty(path, value, prop)
	}

	res.keepFirstTip()
	return res
}

// checkProperty applies every constraint present on prop to value,
// independently. A value can violate type, const and enum at once.
func (r *Result) checkProperty(path string, value any, prop *PropertyRule) {
	if prop.Type != "" {
		actual := kindOf(value)
		if actual != prop.Type {
			r.add(path,
				fmt.Sprintf("expected %s, got %s", prop.Type, actual),
				typeMismatchTip(prop.Type, value))
		}
	}

	if prop.Const != nil {
		if !looseEqual(value, prop.Const) {
			r.add(path, fmt.Sprintf("expected %q, got %q", display(prop.Const), display(value)), "")
		}
	}

	if len(prop.Enum) > 0 {
		if !enumContains(prop.Enum, value) {
			r.add(path,
				fmt.Sprintf("%q is invalid. Must be one of: %s", display(value), joinEnum(prop.Enum)),
				headingTip(prop.Enum, value))
		}
	}

	if prop.Items != nil {
		if arr, ok := value.([]any); ok {
			r.checkItems(path, arr, prop.Items)
		}
	}
}

// checkItems applies an items rule to each element of an array value. Paths
// gain the element index in bracket notation.
func (r *Result) checkItems(path string, arr []any, items *ItemsRule) {
	if len(items.Properties) > 0 {
		for i, elem := range arr {
			obj, ok := elem.(map[string]any)
			if !ok {
				continue
			}
			for _, propPath := range sortedKeys(items.Properties) {
				prop := items.Properties[propPath]
				if prop == nil {
					continue
				}
				value, present := resolvePath(obj, propPath)
				if !present || value == nil {
					continue
				}
				r.checkProperty(fmt.Sprintf("%s[%d].%s", path, i, propPath), value, prop)
			}
		}
		return
	}

	// Direct type/enum constraints apply to each element's value.
	elemRule := &PropertyRule{Type: items.Type, Enum: items.Enum}
	for i, elem := range arr {
		if elem == nil {
			continue
		}
		r.checkProperty(fmt.Sprintf("%s[%d]", path, i), elem, elemRule)
	}
}

func (r *Result) add(path, message, tip string) {
	r.Violations = append(r.Violations, Violation{Path: path, Message: message, Tip: tip})
}

// keepFirstTip drops every tip except the first. Tips are advisory and one
// per result is enough; repeating the same hint per violation is noise.
func (r *Result) keepFirstTip() {
	seen := false
	for i := range r.Violations {
		if r.Violations[i].Tip == "" {
			continue
		}
		if seen {
			r.Violations[i].Tip = ""
			continue
		}
		seen = true
	}
}

// resolvePath descends one dot-path segment at a time. The second return
// reports presence: the final segment existing as a key is enough, even when
// its value is nil. Presence fails when an intermediate segment is missing
// or not an object.
func resolvePath(obj map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	current := any(obj)
	for i, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		value, exists := m[seg]
		if !exists {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}
		current = value
	}
	return nil, false
}

// kindOf maps a runtime value to the rule type vocabulary. Arrays are
// distinguished from plain objects.
func kindOf(value any) string {
	switch value.(type) {
	case bool:
		return TypeBoolean
	case string:
		return TypeString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return TypeNumber
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	case nil:
		return "null"
	}
	// Front matter decoding can surface other concrete slice/map types.
	switch reflect.TypeOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.Map:
		return TypeObject
	default:
		return fmt.Sprintf("%T", value)
	}
}

// looseEqual compares two values, treating all numeric types as one domain
// so an int64 from a manifest equals a float64 from front matter.
func looseEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func enumContains(enum []any, value any) bool {
	for _, allowed := range enum {
		if looseEqual(value, allowed) {
			return true
		}
	}
	return false
}

func joinEnum(enum []any) string {
	parts := make([]string, len(enum))
	for i, v := range enum {
		parts[i] = display(v)
	}
	return strings.Join(parts, ", ")
}

// display renders a value for inclusion in a message without Go-specific
// formatting artifacts.
func display(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%v", v)
}

// typeMismatchTip returns an advisory hint for the two stringly-typed
// mistakes that template authors hit constantly: quoted booleans (which are
// always truthy in template conditionals) and quoted numbers.
func typeMismatchTip(expected string, value any) string {
	s, isString := value.(string)
	if !isString {
		return ""
	}
	switch expected {
	case TypeBoolean:
		if s == "false" || s == "true" {
			return fmt.Sprintf("(tip: the string %q always evaluates as truthy in template logic; use the boolean %s instead)", s, s)
		}
	case TypeNumber:
		if isNumericString(s) {
			return "(tip: remove the quotes to supply a number)"
		}
	}
	return ""
}

// headingTip suggests valid heading tags when an enum of h1..h6 is failed
// with a common misspelling such as "header" or "title".
func headingTip(enum []any, value any) string {
	s, isString := value.(string)
	if !isString || !headingMisspellings[strings.ToLower(s)] {
		return ""
	}
	if len(enum) == 0 {
		return ""
	}
	for _, allowed := range enum {
		tag, ok := allowed.(string)
		if !ok || !headingTagRe.MatchString(tag) {
			return ""
		}
	}
	return fmt.Sprintf("(tip: use a heading tag instead: %s)", joinEnum(enum))
}

func isNumericString(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
