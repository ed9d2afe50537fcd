// SPDX-License-Identifier: MPL-2.0

package component

import (
	_ "embed"
	"fmt"
	"os"

	"componize/pkg/cueutil"
	"componize/pkg/schema"
)

// ManifestName is the manifest file looked for in each component directory.
const ManifestName = "component.json"

//go:embed component_schema.cue
var manifestSchema string

// Manifest is the decoded shape of a component.json file. Field presence
// matters: a nil Requires is "not declared" and falls back to Dependencies,
// while an empty non-nil Requires is an explicit empty declaration.
type Manifest struct {
	Name         string       `json:"name,omitempty"`
	Type         string       `json:"type,omitempty"`
	Description  string       `json:"description,omitempty"`
	Styles       []string     `json:"styles,omitempty"`
	Scripts      []string     `json:"scripts,omitempty"`
	Requires     []string     `json:"requires,omitempty"`
	Dependencies []string     `json:"dependencies,omitempty"`
	Validation   *schema.Rule `json:"validation,omitempty"`
}

// ParseManifest reads and parses a component.json file.
func ParseManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest at %s: %w", path, err)
	}
	return ParseManifestBytes(data, path)
}

// ParseManifestBytes parses manifest content from bytes. JSON is a subset
// of CUE, so the bytes ride the shared 3-step cueutil flow: compile the
// embedded schema, compile the manifest, unify, validate, decode.
func ParseManifestBytes(data []byte, path string) (*Manifest, error) {
	return cueutil.ParseAndDecodeString[Manifest](
		manifestSchema,
		data,
		"#Manifest",
		cueutil.WithFilename(path),
	)
}

// fromManifest normalizes a parsed manifest into a Component rooted at the
// given absolute directory. Declared asset paths pass the sanitizer; the
// requires/dependencies arrays are preserved verbatim for Requirements to
// resolve.
func fromManifest(m *Manifest, dir string) *Component {
	return &Component{
		Name:         m.Name,
		Path:         dir,
		Type:         m.Type,
		Description:  m.Description,
		Styles:       SanitizeAssetPaths(dir, m.Styles),
		Scripts:      SanitizeAssetPaths(dir, m.Scripts),
		Requires:     m.Requires,
		Dependencies: m.Dependencies,
		Validation:   m.Validation,
	}
}
