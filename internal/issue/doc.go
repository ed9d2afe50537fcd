// SPDX-License-Identifier: MPL-2.0

// Package issue holds the catalog of user-facing problem reports and the
// actionable error type the CLI renders them with.
package issue
