package domain

import "sort"

// Set is an unordered collection of distinct strings. The nil Set is empty.
type Set map[string]struct{}

// NewSet builds a Set from values, dropping duplicates
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Toggle returns a copy of s with v added if absent or removed if present
func (s Set) Toggle(v string) Set {
	out := s.Clone()
	if out.Has(v) {
		delete(out, v)
	} else {
		out[v] = struct{}{}
	}
	return out
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Values returns the members in sorted order
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same members
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for v := range s {
		if !other.Has(v) {
			return false
		}
	}
	return true
}
