// SPDX-License-Identifier: MPL-2.0

package cueutil

// MaxFileSize is the maximum input size accepted for parsing (1MB).
// Component manifests and config files are small; the limit guards against
// accidentally pointing the parser at a bundle or binary blob.
const MaxFileSize int64 = 1 * 1024 * 1024

type (
	// parseOptions holds configuration for CUE parsing.
	parseOptions struct {
		filename string
	}

	// Option configures parsing behavior.
	Option func(*parseOptions)
)

// WithFilename sets the filename for error messages.
// This appears in CUE error output to help users locate issues.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		o.filename = name
	}
}
