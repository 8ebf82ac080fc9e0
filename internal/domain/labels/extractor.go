// Package labels derives category label sets from classifier free text.
//
// The classifier oracle answers in natural language. Its prompt asks it
// to name the applicable categories verbatim, so extraction is a
// case-insensitive substring scan over a small fixed trigger
// vocabulary. The scan is deliberately NOT word-boundary aware: the
// oracle's phrasing conventions (e.g. "recyclable") are expected to
// trigger the matching category, and downstream tests depend on that.
package labels

import (
	"strings"

	"github.com/ecoperks/ecosort/internal/domain/category"
)

// triggers maps each category to the substrings that signal it.
var triggers = map[category.Category][]string{
	category.Compost:   {"compost"},
	category.Recycling: {"recycling", "recycle"},
	category.Trash:     {"trash", "garbage"},
}

// Extract scans text for category trigger substrings and returns the
// matched set. It is a pure function: any input, including the empty
// string, yields a set (possibly empty) and never an error. Absence of
// every trigger is a valid outcome, not a failure.
func Extract(text string) category.Set {
	lower := strings.ToLower(text)
	found := make(category.Set)
	for cat, words := range triggers {
		for _, w := range words {
			if strings.Contains(lower, w) {
				found.Add(cat)
				break
			}
		}
	}
	return found
}
