// SPDX-License-Identifier: MPL-2.0

// Package resolver expands the set of used component names into the
// transitive closure over requirement edges and checks that every
// requirement resolves to a discovered component.
//
// Resolution is deliberately cycle-tolerant: a name is visited once, so
// self-references and mutual requirements terminate with both members in
// the result. Names without a discovered component stay in the set too —
// they were reached, and whether they exist is the validator's concern,
// not the resolver's.
package resolver

import (
	"fmt"
	"sort"

	"componize/pkg/component"
)

// ResolveAll computes the needed-component set: a breadth-first closure of
// the used names over each component's requirement edges. Visiting a name
// enqueues its requirements; revisiting is a no-op, which is what makes
// circular graphs terminate. Unknown names contribute no expansion but
// remain members of the result.
func ResolveAll(used map[string]bool, components component.Map) map[string]bool {
	needed := make(map[string]bool, len(used))
	queue := make([]string, 0, len(used))
	for name := range used {
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if needed[name] {
			continue
		}
		needed[name] = true

		c, ok := components[name]
		if !ok {
			continue
		}
		for _, req := range c.Requirements() {
			if !needed[req] {
				queue = append(queue, req)
			}
		}
	}
	return needed
}

// ValidateRequirements checks every requirement edge reachable from the
// needed set and returns one human-readable error string per requirement
// that names no discovered component. Needed names that themselves resolve
// to nothing are skipped: their absence is implicit and they carry no
// further requirements to check.
//
// The result is ordinary data. Whether a non-empty result aborts the build
// is the caller's strict policy, not this function's.
func ValidateRequirements(needed map[string]bool, components component.Map) []string {
	names := make([]string, 0, len(needed))
	for name := range needed {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		c, ok := components[name]
		if !ok {
			continue
		}
		for _, req := range c.Requirements() {
			if _, found := components[req]; !found {
				errs = append(errs, fmt.Sprintf("component %q requires %q, which was not found", name, req))
			}
		}
	}
	return errs
}
