package ops

import (
	"strings"

	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/errors"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

// QueryInput contains parameters for the Query operation.
// Every configured criterion must hold; Include and SearchNames are each
// satisfied by any one of their entries.
type QueryInput struct {
	Files       []string    // required
	Include     vcard.Terms // any-of; empty means no include filter
	Required    vcard.Terms // all-of
	Exclude     vcard.Terms // none-of, checked first
	SearchNames []string    // name substrings (case-folded); items may be comma-separated
	Names       []string    // exact-name allow-list
	NameFile    string      // newline-delimited allow-list file
}

// QueryOutput contains the result of the Query operation.
type QueryOutput struct {
	Cards   []vcard.Card `json:"-"`
	Matched int          `json:"matched"`
	Scanned int          `json:"scanned"`
	Skipped []string     `json:"skipped"`
}

// Query returns the cards from input.Files that satisfy the input's filters,
// in scan order. Missing files are skipped and listed in the output.
func Query(cfg *config.Config, input QueryInput) (*QueryOutput, error) {
	if len(input.Files) == 0 {
		return nil, errors.NewInvalidRequest("at least one file is required")
	}

	f, err := newFilter(cfg, input)
	if err != nil {
		return nil, err
	}

	corpus, err := LoadCorpus(cfg, input.Files)
	if err != nil {
		return nil, err
	}

	matches := []vcard.Card{}
	for _, c := range corpus.Cards {
		if f.match(c) {
			matches = append(matches, c)
		}
	}

	return &QueryOutput{
		Cards:   matches,
		Matched: len(matches),
		Scanned: len(corpus.Cards),
		Skipped: corpus.Skipped,
	}, nil
}

// filter is a compiled QueryInput.
type filter struct {
	include  map[string]struct{}
	required map[string]struct{}
	exclude  map[string]struct{}
	search   []string
	names    nameSet // nil when no allow-list was supplied
}

func newFilter(cfg *config.Config, input QueryInput) (*filter, error) {
	f := &filter{
		include:  input.Include.Set(),
		required: input.Required.Set(),
		exclude:  input.Exclude.Set(),
		search:   splitSearchTerms(input.SearchNames),
	}

	if len(input.Names) > 0 || input.NameFile != "" {
		names, err := resolveNames(cfg, input.Names, input.NameFile)
		if err != nil {
			return nil, err
		}
		f.names = names
	}

	return f, nil
}

// match reports whether c passes every configured criterion.
func (f *filter) match(c vcard.Card) bool {
	cats := c.CategorySet()

	if intersects(cats, f.exclude) {
		return false
	}
	if len(f.include) > 0 && !intersects(cats, f.include) {
		return false
	}
	for cat := range f.required {
		if _, ok := cats[cat]; !ok {
			return false
		}
	}

	if len(f.search) == 0 && f.names == nil {
		return true
	}
	name := c.Name()
	if len(f.search) > 0 && !containsAny(vcard.Fold(name), f.search) {
		return false
	}
	if f.names != nil && !f.names.has(name) {
		return false
	}
	return true
}

func intersects(a, b map[string]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
