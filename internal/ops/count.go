package ops

import (
	"fmt"
	"io"
	"slices"

	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

// CategoryCounts maps a lower-cased category to the number of times it occurs
// across a set of cards.
type CategoryCounts map[string]int

// CategoryCount is one entry of a sorted count report.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Tally counts category occurrences. A card that lists a category twice
// contributes two.
func Tally(cards []vcard.Card) CategoryCounts {
	counts := make(CategoryCounts)
	for _, c := range cards {
		for _, cat := range c.Categories() {
			counts[cat]++
		}
	}
	return counts
}

// Sorted returns the counts ordered by category name.
func (c CategoryCounts) Sorted() []CategoryCount {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]CategoryCount, len(names))
	for i, name := range names {
		out[i] = CategoryCount{Name: name, Count: c[name]}
	}
	return out
}

// WriteReport writes a "Category counts:" header followed by one
// "  name: count" line per category in name order, or a single
// "No category counts available" line when there are none.
func (c CategoryCounts) WriteReport(w io.Writer) error {
	if len(c) == 0 {
		_, err := fmt.Fprintln(w, "No category counts available")
		return err
	}
	if _, err := fmt.Fprintln(w, "Category counts:"); err != nil {
		return err
	}
	for _, entry := range c.Sorted() {
		if _, err := fmt.Fprintf(w, "  %s: %d\n", entry.Name, entry.Count); err != nil {
			return err
		}
	}
	return nil
}

// CountInput contains parameters for the CountCategories operation.
type CountInput struct {
	Files []string // may be empty, yielding no counts
}

// CountOutput contains the result of the CountCategories operation.
type CountOutput struct {
	Counts     CategoryCounts  `json:"-"`
	Categories []CategoryCount `json:"categories"`
	Cards      int             `json:"cards"`
	Skipped    []string        `json:"skipped"`
}

// CountCategories tallies category occurrences across input.Files.
// Every call computes fresh counts; nothing carries over between calls.
func CountCategories(cfg *config.Config, input CountInput) (*CountOutput, error) {
	corpus, err := LoadCorpus(cfg, input.Files)
	if err != nil {
		return nil, err
	}

	counts := Tally(corpus.Cards)
	return &CountOutput{
		Counts:     counts,
		Categories: counts.Sorted(),
		Cards:      len(corpus.Cards),
		Skipped:    corpus.Skipped,
	}, nil
}
