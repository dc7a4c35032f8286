package vcard

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Terms is a one-or-many list of category names as given by a caller.
// Each item may itself hold several names separated by ',' or ';', so
// Terms{"a,b"} and Terms{"a", "b"} are the same filter.
//
// In JSON, Terms accepts either a single string or an array of strings.
type Terms []string

// UnmarshalJSON accepts "a,b", ["a", "b"], or null.
func (t *Terms) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*t = Terms{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("categories must be a string or an array of strings: %w", err)
	}
	*t = Terms(many)
	return nil
}

// Normalize splits every item on ',' and ';', trims and lower-cases the parts,
// and drops empties. Order is kept and duplicates are not removed.
func (t Terms) Normalize() []string {
	out := []string{}
	for _, item := range t {
		out = append(out, splitTerms(item)...)
	}
	return out
}

// Set returns the normalized terms as a set.
func (t Terms) Set() map[string]struct{} {
	norm := t.Normalize()
	set := make(map[string]struct{}, len(norm))
	for _, term := range norm {
		set[term] = struct{}{}
	}
	return set
}

// Fold returns s trimmed and case-folded, for case-insensitive name comparison.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
