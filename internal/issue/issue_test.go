// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGetReturnsMatchingIssue(t *testing.T) {
	ids := []Id{
		ComponentsDirNotFoundId,
		DuplicateComponentId,
		ManifestParseErrorId,
		MissingRequirementId,
		SchemaViolationId,
		BundleCompileFailedId,
		ConfigLoadFailedId,
	}

	for _, id := range ids {
		got := Get(id)
		if got == nil {
			t.Errorf("Get(%d) = nil, want an issue", id)
			continue
		}
		if got.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, got.Id())
		}
		if got.MarkdownMsg() == "" {
			t.Errorf("Get(%d) has an empty message", id)
		}
	}
}

func TestGetUnknownId(t *testing.T) {
	if got := Get(Id(999)); got != nil {
		t.Errorf("Get(999) = %v, want nil", got)
	}
}

func TestValuesCoversCatalog(t *testing.T) {
	if got := len(Values()); got != len(issues) {
		t.Errorf("len(Values()) = %d, want %d", got, len(issues))
	}
}

func TestRenderIncludesDocLinks(t *testing.T) {
	orig := render
	defer func() { render = orig }()

	var rendered string
	render = func(in string, stylePath string) (string, error) {
		rendered = in
		return in, nil
	}

	iss := &Issue{
		id:       Id(42),
		mdMsg:    "# Oops",
		docLinks: []HttpLink{"https://example.com/docs"},
	}

	out, err := iss.Render("auto")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "# Oops") {
		t.Errorf("Render() = %q, missing message", out)
	}
	if !strings.Contains(rendered, "https://example.com/docs") {
		t.Errorf("rendered input %q missing doc link", rendered)
	}
}

func TestDocLinksReturnsClone(t *testing.T) {
	iss := &Issue{
		id:       Id(7),
		mdMsg:    "msg",
		docLinks: []HttpLink{"https://example.com"},
	}

	links := iss.DocLinks()
	links[0] = "mutated"

	if iss.docLinks[0] != "https://example.com" {
		t.Error("DocLinks() must not expose the internal slice")
	}
}
