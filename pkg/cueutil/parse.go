// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseAndDecode performs the 3-step CUE parsing flow:
//
//  1. Compile the embedded schema
//  2. Compile user data (CUE or JSON) and unify with schema
//  3. Validate and decode to Go struct
//
// Validation is non-concrete: manifests leave most fields unset and the
// schema provides no defaults for them.
//
// Parameters:
//   - schema: the embedded CUE schema bytes (from //go:embed)
//   - data: the user-provided file bytes
//   - schemaPath: the path to the root definition (e.g., "#Manifest")
//   - opts: optional configuration
//
// Returns the decoded struct, or an error carrying JSON-path information
// when validation fails.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*T, error) {
	var options parseOptions
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, MaxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	// Step 1: Compile the schema
	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	// Step 2: Compile the user data
	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)

	// Step 3: Validate and decode
	if err := unified.Validate(); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &result, nil
}

// ParseAndDecodeString is a convenience wrapper that accepts the schema as a
// string, for schemas embedded as string constants rather than bytes.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*T, error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}
