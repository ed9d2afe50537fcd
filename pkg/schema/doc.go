// SPDX-License-Identifier: MPL-2.0

// Package schema validates page-author-supplied section data against the
// validation rules a component declares in its manifest.
//
// A rule names required dot-paths and per-path constraints (type, const,
// enum, and per-element item rules for arrays). Validation never stops at
// the first problem: every violation found is collected into a single
// result so authors can fix a section in one pass. Where a violation has a
// well-known cause (a boolean written as a quoted string, a number in
// quotes, a misspelled heading tag) an advisory tip is appended to the
// first violation it applies to.
package schema
