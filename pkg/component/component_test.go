// SPDX-License-Identifier: MPL-2.0

package component

import (
	"errors"
	"slices"
	"testing"
)

func TestNewMap(t *testing.T) {
	t.Parallel()

	t.Run("indexes by name", func(t *testing.T) {
		m, err := NewMap([]*Component{{Name: "banner"}, {Name: "button"}})
		if err != nil {
			t.Fatalf("NewMap returned error: %v", err)
		}
		if len(m) != 2 {
			t.Errorf("len = %d, want 2", len(m))
		}
		if m["banner"] == nil || m["button"] == nil {
			t.Error("components missing from map")
		}
	})

	t.Run("duplicate name is fatal and names the offender", func(t *testing.T) {
		_, err := NewMap([]*Component{{Name: "banner"}, {Name: "banner"}})
		if err == nil {
			t.Fatal("expected error for duplicate name")
		}
		if !errors.Is(err, ErrDuplicateName) {
			t.Errorf("error %v does not wrap ErrDuplicateName", err)
		}
		var dup *DuplicateNameError
		if !errors.As(err, &dup) {
			t.Fatalf("error %v is not a DuplicateNameError", err)
		}
		if dup.Name != "banner" {
			t.Errorf("Name = %q, want banner", dup.Name)
		}
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		m, err := NewMap(nil)
		if err != nil {
			t.Fatalf("NewMap returned error: %v", err)
		}
		if len(m) != 0 {
			t.Errorf("len = %d, want 0", len(m))
		}
	})
}

func TestRequirements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    Component
		want []string
	}{
		{
			name: "requires preferred over dependencies",
			c:    Component{Requires: []string{"a"}, Dependencies: []string{"b"}},
			want: []string{"a"},
		},
		{
			name: "explicitly empty requires does not fall back",
			c:    Component{Requires: []string{}, Dependencies: []string{"b"}},
			want: []string{},
		},
		{
			name: "absent requires falls back to dependencies",
			c:    Component{Dependencies: []string{"b"}},
			want: []string{"b"},
		},
		{
			name: "neither declared",
			c:    Component{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Requirements()
			if !slices.Equal(got, tt.want) {
				t.Errorf("Requirements() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	discovered := []*Component{
		{Name: "banner"}, {Name: "button"}, {Name: "card"}, {Name: "footer"},
	}

	t.Run("preserves discovery order", func(t *testing.T) {
		kept := Filter(discovered, map[string]bool{"footer": true, "button": true})
		var names []string
		for _, c := range kept {
			names = append(names, c.Name)
		}
		if !slices.Equal(names, []string{"button", "footer"}) {
			t.Errorf("got %v, want [button footer]", names)
		}
	})

	t.Run("needed names without components are ignored", func(t *testing.T) {
		kept := Filter(discovered, map[string]bool{"ghost": true, "card": true})
		if len(kept) != 1 || kept[0].Name != "card" {
			t.Errorf("got %v, want exactly card", kept)
		}
	})

	t.Run("empty set keeps nothing", func(t *testing.T) {
		if kept := Filter(discovered, nil); kept != nil {
			t.Errorf("got %v, want nil", kept)
		}
	})
}
