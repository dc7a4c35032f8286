package ops

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/errors"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	Path     string   // required: source file
	Names    []string // target names (matched case-insensitively against the card name)
	NameFile string   // optional newline-delimited file of target names
	All      bool     // target every card
	Keep     []string // optional keep-field tokens; when set, targets are stripped instead of removed
	Out      string   // optional destination, default: Path
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Path     string `json:"path"`
	Deleted  int    `json:"deleted"`
	Stripped int    `json:"stripped"`
	Total    int    `json:"total"`
	Written  bool   `json:"written"`
	Message  string `json:"message"`
}

// Delete rewrites a vCard file without the targeted cards.
//
// Targets are cards whose name matches one of the resolved names (or every card
// when All is set). With no keep fields a target is removed and counted in
// Deleted; with keep fields it is reduced to its markers, VERSION, FN/N and the
// kept properties, and counted in Stripped. Other cards are written unchanged.
//
// When the names and name file resolve to no non-blank name and All is unset,
// nothing is touched and nothing is written. A missing source or name file fails before anything is written.
func Delete(cfg *config.Config, input DeleteInput) (*DeleteOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	keep, err := parseKeep(input.Keep)
	if err != nil {
		return nil, err
	}

	raw, err := readRequired(input.Path)
	if err != nil {
		return nil, err
	}
	targets, err := resolveNames(cfg, input.Names, input.NameFile)
	if err != nil {
		return nil, err
	}

	dest := input.Out
	if dest == "" {
		// In-place rewrites follow a symlinked source to the file it names.
		if dest, err = filepath.EvalSymlinks(input.Path); err != nil {
			return nil, errors.NewInternal(err)
		}
	}
	cards := slices.Collect(vcard.Parse(raw, decoderFor(cfg)))
	out := &DeleteOutput{Path: dest, Total: len(cards)}

	if len(targets) == 0 && !input.All {
		out.Message = "No names given; nothing deleted"
		return out, nil
	}

	result := make([]vcard.Card, 0, len(cards))
	for _, c := range cards {
		if !input.All && !targets.has(c.Name()) {
			result = append(result, c)
			continue
		}
		if len(keep) == 0 {
			out.Deleted++
			continue
		}
		result = append(result, c.Keep(keep.retains))
		out.Stripped++
	}

	if err := WriteFile(dest, []byte(vcard.Join(result))); err != nil {
		return nil, err
	}
	out.Written = true
	out.Message = formatDeleteMessage(out)
	return out, nil
}

// keepSet is a parsed set of keep-field tokens.
type keepSet map[string]bool

func parseKeep(tokens []string) (keepSet, error) {
	keep := make(keepSet)
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if !slices.Contains(KeepFields, t) {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown keep field %q (valid: %s)", t, strings.Join(KeepFields, ", ")))
		}
		keep[t] = true
	}
	return keep, nil
}

// retains reports whether a line survives stripping.
func (k keepSet) retains(line string) bool {
	switch vcard.Property(line) {
	case "VERSION", "FN", "N":
		return true
	case "TEL":
		return k[KeepNumber]
	case "PHOTO":
		return k[KeepPhoto]
	case "CATEGORIES", "CATEGORY":
		return k[KeepCategory]
	}
	return false
}

// formatDeleteMessage creates a human-readable summary of a Delete result.
func formatDeleteMessage(out *DeleteOutput) string {
	if out.Deleted == 0 && out.Stripped == 0 {
		return fmt.Sprintf("No contacts matched; %s rewritten without deletions", out.Path)
	}

	msg := fmt.Sprintf("Deleted %d %s", out.Deleted, plural(out.Deleted, "contact", "contacts"))
	if out.Stripped > 0 {
		msg += fmt.Sprintf(", stripped %d %s", out.Stripped, plural(out.Stripped, "contact", "contacts"))
	}
	return msg + " in " + out.Path
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
