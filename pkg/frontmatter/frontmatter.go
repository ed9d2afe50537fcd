// SPDX-License-Identifier: MPL-2.0

// Package frontmatter splits template and markdown files into structured
// front matter and body text.
//
// Two fence styles are recognized at the very start of a file: YAML between
// "---" lines and TOML between "+++" lines. A file with no opening fence
// has empty front matter and the whole text as body.
package frontmatter

import (
	"bytes"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	yamlFence = "---"
	tomlFence = "+++"
)

// Document is a parsed template source: its front matter (nil when the file
// declares none) and the body that follows the closing fence.
type Document struct {
	FrontMatter map[string]any
	Body        []byte
}

// Parse splits data into front matter and body and decodes the front
// matter. An unterminated fence or undecodable front matter is an error;
// callers decide whether that skips the file or aborts.
func Parse(data []byte) (*Document, error) {
	fence, rest, ok := openingFence(data)
	if !ok {
		return &Document{Body: data}, nil
	}

	raw, body, err := splitAtClosingFence(rest, fence)
	if err != nil {
		return nil, err
	}

	fm := make(map[string]any)
	switch fence {
	case tomlFence:
		if err := toml.Unmarshal(raw, &fm); err != nil {
			return nil, fmt.Errorf("parsing TOML front matter: %w", err)
		}
	default:
		if err := yaml.Unmarshal(raw, &fm); err != nil {
			return nil, fmt.Errorf("parsing YAML front matter: %w", err)
		}
	}

	return &Document{FrontMatter: fm, Body: body}, nil
}

// Sections returns the document's front-matter sections array, or nil when
// the document declares none or the field is not an array.
func (d *Document) Sections() []any {
	if d.FrontMatter == nil {
		return nil
	}
	sections, _ := d.FrontMatter["sections"].([]any)
	return sections
}

// openingFence reports whether data starts with a recognized fence line and
// returns the fence marker plus the content after that line.
func openingFence(data []byte) (fence string, rest []byte, ok bool) {
	for _, f := range []string{yamlFence, tomlFence} {
		if !bytes.HasPrefix(data, []byte(f)) {
			continue
		}
		after := data[len(f):]
		// The fence must be the whole line.
		if len(after) == 0 {
			return f, nil, true
		}
		if after[0] == '\n' {
			return f, after[1:], true
		}
		if len(after) >= 2 && after[0] == '\r' && after[1] == '\n' {
			return f, after[2:], true
		}
	}
	return "", nil, false
}

// splitAtClosingFence scans line by line for the closing fence and returns
// the raw front-matter bytes and the remaining body.
func splitAtClosingFence(data []byte, fence string) (raw, body []byte, err error) {
	offset := 0
	for offset <= len(data) {
		lineEnd := bytes.IndexByte(data[offset:], '\n')
		var line []byte
		next := len(data) + 1
		if lineEnd >= 0 {
			line = data[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		} else {
			line = data[offset:]
		}
		if string(bytes.TrimRight(line, "\r")) == fence {
			if next > len(data) {
				return data[:offset], nil, nil
			}
			return data[:offset], data[next:], nil
		}
		offset = next
	}
	return nil, nil, fmt.Errorf("front matter opened with %q but never closed", fence)
}
