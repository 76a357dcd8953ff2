// Package lineset provides a set of source line numbers with genuine
// set semantics: inserting a line that is already present is a no-op,
// so a line observed any number of times is counted exactly once.
package lineset

import "sort"

// Set is an unordered set of 1-based line numbers.
type Set map[int]struct{}

// New builds a Set from the given line numbers.
func New(lines ...int) Set {
	s := make(Set, len(lines))
	for _, n := range lines {
		s[n] = struct{}{}
	}

	return s
}

// Add inserts a line number. Adding an existing line is a no-op.
func (s Set) Add(n int) {
	s[n] = struct{}{}
}

// AddRange inserts every line number from lo through hi inclusive.
func (s Set) AddRange(lo, hi int) {
	for n := lo; n <= hi; n++ {
		s[n] = struct{}{}
	}
}

// Has reports whether the line number is in the set.
func (s Set) Has(n int) bool {
	_, ok := s[n]
	return ok
}

// Len returns the number of distinct lines in the set.
func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for n := range s {
		out[n] = struct{}{}
	}

	return out
}

// Union returns a new set holding every line present in either set.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	for n := range other {
		out[n] = struct{}{}
	}

	return out
}

// Diff returns a new set holding the lines of s not present in other.
func (s Set) Diff(other Set) Set {
	out := make(Set)

	for n := range s {
		if !other.Has(n) {
			out[n] = struct{}{}
		}
	}

	return out
}

// Intersect returns a new set holding the lines present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set)

	for n := range s {
		if other.Has(n) {
			out[n] = struct{}{}
		}
	}

	return out
}

// Sorted returns the lines in ascending order.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}

	sort.Ints(out)

	return out
}
