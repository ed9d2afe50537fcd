// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"strings"
	"testing"
)

func TestValidate_RequiredPaths(t *testing.T) {
	t.Parallel()

	rule := &Rule{Required: []string{"title", "cta.label", "cta.href"}}

	t.Run("all present passes", func(t *testing.T) {
		section := map[string]any{
			"title": "Hello",
			"cta":   map[string]any{"label": "Go", "href": "/go"},
		}
		res := Validate(section, rule)
		if !res.Valid() {
			t.Errorf("expected pass, got %q", res.Message())
		}
	})

	t.Run("null value still counts as present", func(t *testing.T) {
		section := map[string]any{
			"title": nil,
			"cta":   map[string]any{"label": nil, "href": "/go"},
		}
		res := Validate(section, rule)
		if !res.Valid() {
			t.Errorf("expected pass, got %q", res.Message())
		}
	})

	t.Run("missing leaf reports one violation per path", func(t *testing.T) {
		section := map[string]any{
			"cta": map[string]any{"label": "Go"},
		}
		res := Validate(section, rule)
		if len(res.Violations) != 2 {
			t.Fatalf("expected 2 violations, got %d: %q", len(res.Violations), res.Message())
		}
		if !strings.Contains(res.Message(), "title: required property is missing") {
			t.Errorf("missing title violation in %q", res.Message())
		}
		if !strings.Contains(res.Message(), "cta.href: required property is missing") {
			t.Errorf("missing cta.href violation in %q", res.Message())
		}
	})

	t.Run("intermediate segment not an object fails", func(t *testing.T) {
		section := map[string]any{"title": "x", "cta": "not-an-object"}
		res := Validate(section, rule)
		if res.Valid() {
			t.Error("expected failure when intermediate segment is a scalar")
		}
	})
}

func TestValidate_TypeConstraint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		declared string
		value    any
		valid    bool
		wantMsg  string
	}{
		{name: "bool matches boolean", declared: TypeBoolean, value: true, valid: true},
		{name: "string matches string", declared: TypeString, value: "x", valid: true},
		{name: "int matches number", declared: TypeNumber, value: 3, valid: true},
		{name: "float matches number", declared: TypeNumber, value: 3.5, valid: true},
		{name: "slice matches array", declared: TypeArray, value: []any{1}, valid: true},
		{name: "map matches object", declared: TypeObject, value: map[string]any{}, valid: true},
		{name: "array is not object", declared: TypeObject, value: []any{}, valid: false, wantMsg: "expected object, got array"},
		{name: "string is not boolean", declared: TypeBoolean, value: "yes", valid: false, wantMsg: "expected boolean, got string"},
		{name: "number is not string", declared: TypeString, value: 1, valid: false, wantMsg: "expected string, got number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := &Rule{Properties: map[string]*PropertyRule{"field": {Type: tt.declared}}}
			res := Validate(map[string]any{"field": tt.value}, rule)
			if res.Valid() != tt.valid {
				t.Fatalf("valid = %v, want %v (message %q)", res.Valid(), tt.valid, res.Message())
			}
			if tt.wantMsg != "" && !strings.Contains(res.Message(), tt.wantMsg) {
				t.Errorf("message %q does not contain %q", res.Message(), tt.wantMsg)
			}
		})
	}
}

func TestValidate_AbsentAndNullValuesSkipConstraints(t *testing.T) {
	t.Parallel()

	rule := &Rule{Properties: map[string]*PropertyRule{
		"theme":        {Type: TypeString},
		"nested.count": {Type: TypeNumber},
	}}

	res := Validate(map[string]any{"theme": nil}, rule)
	if !res.Valid() {
		t.Errorf("absent/null values must skip constraint checks, got %q", res.Message())
	}
}

func TestValidate_ConstConstraint(t *testing.T) {
	t.Parallel()

	rule := &Rule{Properties: map[string]*PropertyRule{"variant": {Const: "hero"}}}

	if res := Validate(map[string]any{"variant": "hero"}, rule); !res.Valid() {
		t.Errorf("expected pass, got %q", res.Message())
	}

	res := Validate(map[string]any{"variant": "plain"}, rule)
	if res.Valid() {
		t.Fatal("expected const mismatch")
	}
	if !strings.Contains(res.Message(), `expected "hero", got "plain"`) {
		t.Errorf("unexpected message %q", res.Message())
	}
}

func TestValidate_ConstNumericCrossTypes(t *testing.T) {
	t.Parallel()

	// Manifest decoding yields int64 constants; front matter yields ints or
	// floats. The numeric domains must compare as one.
	rule := &Rule{Properties: map[string]*PropertyRule{"columns": {Const: int64(3)}}}
	if res := Validate(map[string]any{"columns": 3}, rule); !res.Valid() {
		t.Errorf("int 3 should satisfy const int64(3), got %q", res.Message())
	}
	if res := Validate(map[string]any{"columns": 3.0}, rule); !res.Valid() {
		t.Errorf("float 3.0 should satisfy const int64(3), got %q", res.Message())
	}
}

func TestValidate_EnumConstraint(t *testing.T) {
	t.Parallel()

	rule := &Rule{Properties: map[string]*PropertyRule{
		"align": {Enum: []any{"left", "center", "right"}},
	}}

	if res := Validate(map[string]any{"align": "center"}, rule); !res.Valid() {
		t.Errorf("expected pass, got %q", res.Message())
	}

	res := Validate(map[string]any{"align": "middle"}, rule)
	if res.Valid() {
		t.Fatal("expected enum violation")
	}
	want := `"middle" is invalid. Must be one of: left, center, right`
	if !strings.Contains(res.Message(), want) {
		t.Errorf("message %q does not contain %q", res.Message(), want)
	}
}

func TestValidate_IndependentConstraintsAllApply(t *testing.T) {
	t.Parallel()

	rule := &Rule{Properties: map[string]*PropertyRule{
		"size": {Type: TypeNumber, Enum: []any{1, 2, 3}},
	}}
	res := Validate(map[string]any{"size": "big"}, rule)
	if len(res.Violations) != 2 {
		t.Fatalf("expected type and enum violations, got %d: %q", len(res.Violations), res.Message())
	}
}

func TestValidate_ItemsNestedProperties(t *testing.T) {
	t.Parallel()

	rule := &Rule{Properties: map[string]*PropertyRule{
		"links": {
			Type: TypeArray,
			Items: &ItemsRule{Properties: map[string]*PropertyRule{
				"href": {Type: TypeString},
			}},
		},
	}}

	section := map[string]any{"links": []any{
		map[string]any{"href": "/ok"},
		map[string]any{"href": 42},
		"not-an-object", // silently ignored
	}}
	res := Validate(section, rule)
	if len(res.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d: %q", len(res.Violations), res.Message())
	}
	if res.Violations[0].Path != "links[1].href" {
		t.Errorf("path = %q, want links[1].href", res.Violations[0].Path)
	}
}

func TestValidate_ItemsDirectConstraint(t *testing.T) {
	t.Parallel()

	rule := &Rule{Properties: map[string]*PropertyRule{
		"tags": {Items: &ItemsRule{Type: TypeString}},
	}}

	res := Validate(map[string]any{"tags": []any{"a", 1, "b"}}, rule)
	if len(res.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d: %q", len(res.Violations), res.Message())
	}
	if res.Violations[0].Path != "tags[1]" {
		t.Errorf("path = %q, want tags[1]", res.Violations[0].Path)
	}
}

func TestValidate_BooleanStringTip(t *testing.T) {
	t.Parallel()

	rule := &Rule{Properties: map[string]*PropertyRule{"isAnimated": {Type: TypeBoolean}}}
	res := Validate(map[string]any{"isAnimated": "false"}, rule)
	if res.Valid() {
		t.Fatal("expected violation")
	}
	msg := res.Message()
	if !strings.Contains(msg, "expected boolean, got string") {
		t.Errorf("message %q lacks type mismatch text", msg)
	}
	if !strings.Contains(msg, "truthy") {
		t.Errorf("message %q lacks the truthy-string tip", msg)
	}
}

func TestValidate_NumericStringTip(t *testing.T) {
	t.Parallel()

	rule := &Rule{Properties: map[string]*PropertyRule{"columns": {Type: TypeNumber}}}
	res := Validate(map[string]any{"columns": "4"}, rule)
	if res.Valid() {
		t.Fatal("expected violation")
	}
	if !strings.Contains(res.Message(), "remove the quotes") {
		t.Errorf("message %q lacks the quoted-number tip", res.Message())
	}
}

func TestValidate_HeadingTagTip(t *testing.T) {
	t.Parallel()

	rule := &Rule{Properties: map[string]*PropertyRule{
		"titleTag": {Enum: []any{"h1", "h2", "h3", "h4", "h5", "h6"}},
	}}
	res := Validate(map[string]any{"titleTag": "header"}, rule)
	if res.Valid() {
		t.Fatal("expected violation")
	}
	msg := res.Message()
	if !strings.Contains(msg, "heading tag") {
		t.Errorf("message %q lacks the heading tag tip", msg)
	}
	if !strings.Contains(msg, "h1, h2, h3, h4, h5, h6") {
		t.Errorf("message %q does not list the valid tags", msg)
	}
}

func TestValidate_TipAppearsOnce(t *testing.T) {
	t.Parallel()

	rule := &Rule{Properties: map[string]*PropertyRule{
		"a": {Type: TypeBoolean},
		"b": {Type: TypeBoolean},
	}}
	res := Validate(map[string]any{"a": "true", "b": "false"}, rule)
	if len(res.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(res.Violations))
	}
	if strings.Count(res.Message(), "tip:") != 1 {
		t.Errorf("tip must appear exactly once, message: %q", res.Message())
	}
}

func TestValidate_EmptyRulePasses(t *testing.T) {
	t.Parallel()

	if res := Validate(map[string]any{"anything": 1}, nil); !res.Valid() {
		t.Error("nil rule must pass")
	}
	if res := Validate(map[string]any{"anything": 1}, &Rule{}); !res.Valid() {
		t.Error("empty rule must pass")
	}
}
