// SPDX-License-Identifier: MPL-2.0

package bundler

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"componize/pkg/component"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	components := []*component.Component{
		{Name: "banner", Path: "/c/banner", Styles: []string{"banner.css"}, Scripts: []string{"banner.js"}},
		{Name: "button", Path: "/c/button", Styles: []string{"button.css", "button.css"}},
	}

	a := Collect(components)
	wantCSS := []string{
		filepath.Join("/c/banner", "banner.css"),
		filepath.Join("/c/button", "button.css"),
	}
	if !slices.Equal(a.CSS, wantCSS) {
		t.Errorf("CSS = %v, want %v", a.CSS, wantCSS)
	}
	if len(a.JS) != 1 || a.JS[0] != filepath.Join("/c/banner", "banner.js") {
		t.Errorf("JS = %v, want the single banner script", a.JS)
	}
}

func TestCompileCSS_Concatenates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.css"), ".a { color: red; }")
	writeFile(t, filepath.Join(dir, "b.css"), ".b { color: blue; }")

	out, err := New().CompileCSS([]string{
		filepath.Join(dir, "a.css"),
		filepath.Join(dir, "b.css"),
	}, Options{})
	if err != nil {
		t.Fatalf("CompileCSS: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, ".a") || !strings.Contains(text, ".b") {
		t.Errorf("output %q lacks one of the inputs", text)
	}
	if strings.Index(text, ".a") > strings.Index(text, ".b") {
		t.Error("inputs are out of order")
	}
}

func TestCompileCSS_SharedContentAppearsOnce(t *testing.T) {
	t.Parallel()

	// Two components ship byte-identical copies of the same stylesheet.
	dir := t.TempDir()
	shared := ".shared { margin: 0; }"
	writeFile(t, filepath.Join(dir, "banner", "shared.css"), shared)
	writeFile(t, filepath.Join(dir, "button", "shared.css"), shared)

	out, err := New().CompileCSS([]string{
		filepath.Join(dir, "banner", "shared.css"),
		filepath.Join(dir, "button", "shared.css"),
	}, Options{})
	if err != nil {
		t.Fatalf("CompileCSS: %v", err)
	}
	if got := strings.Count(string(out), ".shared"); got != 1 {
		t.Errorf("shared rule appears %d times, want 1", got)
	}
}

func TestCompileCSS_InlinesImports(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "vars.css"), ":root { --x: 1; }")
	writeFile(t, filepath.Join(dir, "main.css"), `@import "vars.css";
.main {}`)

	out, err := New().CompileCSS([]string{filepath.Join(dir, "main.css")}, Options{})
	if err != nil {
		t.Fatalf("CompileCSS: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "--x: 1") {
		t.Errorf("imported content missing from %q", text)
	}
	if strings.Contains(text, "@import") {
		t.Errorf("@import statement left in %q", text)
	}
}

func TestCompileCSS_RemoteImportsPassThrough(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.css"),
		`@import "https://example.com/font.css";`)

	out, err := New().CompileCSS([]string{filepath.Join(dir, "main.css")}, Options{})
	if err != nil {
		t.Fatalf("CompileCSS: %v", err)
	}
	if !strings.Contains(string(out), "@import") {
		t.Errorf("remote import was rewritten: %q", out)
	}
}

func TestCompileCSS_Minify(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.css"), ".a {\n  color: red;\n}\n")

	out, err := New().CompileCSS([]string{filepath.Join(dir, "a.css")}, Options{Minify: true})
	if err != nil {
		t.Fatalf("CompileCSS: %v", err)
	}
	if strings.Contains(string(out), "\n") {
		t.Errorf("minified output still has newlines: %q", out)
	}
}

func TestCompileCSS_NoInputsYieldsNil(t *testing.T) {
	t.Parallel()

	out, err := New().CompileCSS(nil, Options{})
	if err != nil {
		t.Fatalf("CompileCSS: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil for no inputs, got %q", out)
	}
}

func TestCompileCSS_MissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := New().CompileCSS([]string{filepath.Join(t.TempDir(), "nope.css")}, Options{})
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestCompileJS(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "function a() { return 1; }")
	writeFile(t, filepath.Join(dir, "b.js"), "function b() { return 2; }")

	out, err := New().CompileJS([]string{
		filepath.Join(dir, "a.js"),
		filepath.Join(dir, "b.js"),
	}, Options{})
	if err != nil {
		t.Fatalf("CompileJS: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "function a") || !strings.Contains(text, "function b") {
		t.Errorf("output %q lacks one of the inputs", text)
	}
}
