// Package category defines the closed set of waste categories and
// set operations over them.
package category

import (
	"fmt"
	"sort"
	"strings"
)

// Category is one of the three waste-sorting labels.
type Category string

// The closed category set. No other values are valid.
const (
	Trash     Category = "trash"
	Recycling Category = "recycling"
	Compost   Category = "compost"
)

// All lists every valid category in display order.
func All() []Category {
	return []Category{Trash, Recycling, Compost}
}

// Count is the size of the closed category set.
const Count = 3

// Parse converts a string to a Category. Matching is case-insensitive.
func Parse(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case Trash:
		return Trash, nil
	case Recycling:
		return Recycling, nil
	case Compost:
		return Compost, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Set is a set of categories. The zero value is an empty, usable set.
type Set map[Category]struct{}

// NewSet builds a Set from the given categories.
func NewSet(cats ...Category) Set {
	s := make(Set, len(cats))
	for _, c := range cats {
		s[c] = struct{}{}
	}
	return s
}

// ParseSet converts a slice of strings to a Set. Any unknown category
// fails the whole conversion.
func ParseSet(names []string) (Set, error) {
	s := make(Set, len(names))
	for _, n := range names {
		c, err := Parse(n)
		if err != nil {
			return nil, err
		}
		s[c] = struct{}{}
	}
	return s, nil
}

// Add inserts c into the set.
func (s Set) Add(c Category) {
	s[c] = struct{}{}
}

// Contains reports whether c is in the set.
func (s Set) Contains(c Category) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of categories in the set.
func (s Set) Len() int {
	return len(s)
}

// IsEmpty reports whether the set has no categories.
func (s Set) IsEmpty() bool {
	return len(s) == 0
}

// Intersect returns the categories present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for c := range s {
		if other.Contains(c) {
			out[c] = struct{}{}
		}
	}
	return out
}

// Diff returns the categories present in s but not in other.
func (s Set) Diff(other Set) Set {
	out := make(Set)
	for c := range s {
		if !other.Contains(c) {
			out[c] = struct{}{}
		}
	}
	return out
}

// Equal reports whether both sets contain the same categories.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// Sorted returns the set's categories as a name-sorted slice. The
// deterministic order keeps API responses and log lines stable.
func (s Set) Sorted() []Category {
	out := make([]Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the sorted set as plain strings, for JSON payloads.
func (s Set) Strings() []string {
	cats := s.Sorted()
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}

// String renders the set as a comma-separated list.
func (s Set) String() string {
	return strings.Join(s.Strings(), ", ")
}
