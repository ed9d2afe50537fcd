// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the 3-step parsing pattern used for component
// manifests:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// Because JSON is a syntactic subset of CUE, plain JSON manifest files ride
// the same pipeline as CUE configuration files without a separate decoder.
//
// # Usage
//
//	//go:embed component_schema.cue
//	var schemaBytes []byte
//
//	m, err := cueutil.ParseAndDecode[Manifest](
//	    schemaBytes,
//	    manifestBytes,
//	    "#Manifest",
//	    cueutil.WithFilename("component.json"),
//	)
//	if err != nil {
//	    return nil, err // Error includes the offending JSON path
//	}
package cueutil
