package ops

import (
	"strings"

	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

// nameSet is a set of case-folded contact names.
type nameSet map[string]struct{}

func (s nameSet) has(name string) bool {
	_, ok := s[vcard.Fold(name)]
	return ok
}

// resolveNames folds and de-duplicates the union of the inline names and the
// lines of nameFile. Blank entries are ignored. A nameFile that does not exist
// is a FILE_NOT_FOUND error.
func resolveNames(cfg *config.Config, names []string, nameFile string) (nameSet, error) {
	set := make(nameSet)
	for _, n := range names {
		if f := vcard.Fold(n); f != "" {
			set[f] = struct{}{}
		}
	}

	if nameFile == "" {
		return set, nil
	}
	raw, err := readRequired(nameFile)
	if err != nil {
		return nil, err
	}
	text := decoderFor(cfg).Decode(raw)
	for line := range strings.SplitSeq(text, "\n") {
		if f := vcard.Fold(line); f != "" {
			set[f] = struct{}{}
		}
	}
	return set, nil
}

// splitSearchTerms splits each item on ',' and folds the parts, dropping empties.
func splitSearchTerms(items []string) []string {
	var terms []string
	for _, item := range items {
		for part := range strings.SplitSeq(item, ",") {
			if f := vcard.Fold(part); f != "" {
				terms = append(terms, f)
			}
		}
	}
	return terms
}
