// SPDX-License-Identifier: MPL-2.0

package scanner

import (
	"slices"
	"testing"
)

func TestExtractReferencePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "import with double quotes",
			body: `{% from "components/partials/button/button.njk" import button %}`,
			want: []string{"components/partials/button/button.njk"},
		},
		{
			name: "import with single quotes",
			body: `{% from 'components/partials/button/button.njk' import button %}`,
			want: []string{"components/partials/button/button.njk"},
		},
		{
			name: "import of several symbols",
			body: `{% from "components/partials/nav/nav.njk" import nav, navItem %}`,
			want: []string{"components/partials/nav/nav.njk"},
		},
		{
			name: "fully compact import",
			body: `{%from"components/partials/button/button.njk"import button%}`,
			want: []string{"components/partials/button/button.njk"},
		},
		{
			name: "include with double quotes",
			body: `{% include "components/sections/banner/banner.njk" %}`,
			want: []string{"components/sections/banner/banner.njk"},
		},
		{
			name: "fully compact include",
			body: `{%include'components/sections/banner/banner.njk'%}`,
			want: []string{"components/sections/banner/banner.njk"},
		},
		{
			name: "mixed forms in one body",
			body: `{% from "a/partials/x/x.njk" import x %}
text
{% include "a/sections/y/y.njk" %}`,
			want: []string{"a/partials/x/x.njk", "a/sections/y/y.njk"},
		},
		{
			name: "plain text yields nothing",
			body: `<p>from "x" import nothing</p>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractReferencePaths(tt.body)
			if !slices.Equal(got, tt.want) {
				t.Errorf("extractReferencePaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComponentNameFromPath(t *testing.T) {
	t.Parallel()

	markers := []string{"partials", "sections"}

	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{name: "partials marker", path: "components/partials/button/button.njk", want: "button", wantOK: true},
		{name: "sections marker", path: "components/sections/banner/banner.njk", want: "banner", wantOK: true},
		{name: "marker at path start", path: "partials/card/card.njk", want: "card", wantOK: true},
		{name: "no marker", path: "layouts/base.njk", wantOK: false},
		{name: "marker is final segment", path: "components/partials", wantOK: false},
		{name: "empty path", path: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := componentNameFromPath(tt.path, markers)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("componentNameFromPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
