package ops

import (
	"strings"

	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/errors"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

// DiffInput contains parameters for the Diff operation.
type DiffInput struct {
	A     string   // required: category the card must have
	B     string   // required: category the card must not have
	Files []string // required
}

// DiffOutput contains the result of the Diff operation.
type DiffOutput struct {
	Cards      []vcard.Card    `json:"-"`
	Matched    int             `json:"matched"`
	CountA     int             `json:"count_a"`
	CountB     int             `json:"count_b"`
	Counts     CategoryCounts  `json:"-"`
	Categories []CategoryCount `json:"categories"`
	Skipped    []string        `json:"skipped"`
}

// Diff returns the cards that carry category A but not category B, together
// with the occurrence counts of A, of B, and of every category in the scanned files.
func Diff(cfg *config.Config, input DiffInput) (*DiffOutput, error) {
	a := strings.ToLower(strings.TrimSpace(input.A))
	b := strings.ToLower(strings.TrimSpace(input.B))
	if a == "" || b == "" {
		return nil, errors.NewInvalidRequest("both categories are required")
	}
	if len(input.Files) == 0 {
		return nil, errors.NewInvalidRequest("at least one file is required")
	}

	corpus, err := LoadCorpus(cfg, input.Files)
	if err != nil {
		return nil, err
	}

	counts := Tally(corpus.Cards)
	matches := []vcard.Card{}
	for _, c := range corpus.Cards {
		cats := c.CategorySet()
		_, hasA := cats[a]
		_, hasB := cats[b]
		if hasA && !hasB {
			matches = append(matches, c)
		}
	}

	return &DiffOutput{
		Cards:      matches,
		Matched:    len(matches),
		CountA:     counts[a],
		CountB:     counts[b],
		Counts:     counts,
		Categories: counts.Sorted(),
		Skipped:    corpus.Skipped,
	}, nil
}
