// SPDX-License-Identifier: MPL-2.0

// Package component models front-end components and loads them from a
// component tree on disk.
//
// A component is one directory: its manifest (component.json) declares the
// styles, scripts and requirements the component carries. Directories
// without a manifest get one synthesized by probing for a stylesheet and a
// script named after the directory. Declared asset paths pass a sanitizer
// that drops anything resolving outside the component's own directory.
//
// Discovery is tolerant: a malformed or nameless manifest skips that one
// component and the pass continues. The only fatal condition is two
// components claiming the same name, which makes the tree ambiguous.
package component
