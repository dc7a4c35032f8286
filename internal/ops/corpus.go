package ops

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/errors"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

// Corpus is every card read from a list of input files, in file order and then
// in order of appearance within each file.
type Corpus struct {
	Cards   []vcard.Card
	Files   []string // files that were read
	Skipped []string // files that did not exist
}

// LoadCorpus reads, decodes, unfolds and segments each file in turn.
// Files that do not exist are recorded in Skipped and otherwise ignored;
// any other read failure is returned as an internal error.
func LoadCorpus(cfg *config.Config, files []string) (*Corpus, error) {
	dec := decoderFor(cfg)
	corpus := &Corpus{
		Cards:   []vcard.Card{},
		Files:   []string{},
		Skipped: []string{},
	}

	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				corpus.Skipped = append(corpus.Skipped, path)
				continue
			}
			return nil, errors.NewInternal(fmt.Errorf("failed to read %s: %w", path, err))
		}
		corpus.Files = append(corpus.Files, path)
		corpus.Cards = slices.AppendSeq(corpus.Cards, vcard.Parse(raw, dec))
	}

	return corpus, nil
}

// readRequired reads a file that must exist.
func readRequired(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewFileNotFound(path)
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to read %s: %w", path, err))
	}
	return raw, nil
}
