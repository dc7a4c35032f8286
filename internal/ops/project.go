package ops

import (
	"strings"

	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

// Projection selects the columns written instead of full cards.
// Columns always appear in the order name, numbers, categories.
type Projection struct {
	Name       bool
	Number     bool
	Categories bool
}

// Enabled reports whether any column is selected.
func (p Projection) Enabled() bool {
	return p.Name || p.Number || p.Categories
}

// Render writes cards as a record stream, or as one delimited row per card
// when p selects columns. Output ends with a newline only when non-empty.
func Render(cfg *config.Config, cards []vcard.Card, p Projection) string {
	if !p.Enabled() {
		return vcard.Join(cards)
	}
	cfg = orDefault(cfg)

	var b strings.Builder
	for _, c := range cards {
		cols := make([]string, 0, 3)
		if p.Name {
			cols = append(cols, c.Name())
		}
		if p.Number {
			cols = append(cols, strings.Join(c.Numbers(), cfg.NumberSeparator))
		}
		if p.Categories {
			cols = append(cols, strings.Join(c.Categories(), cfg.CategorySeparator))
		}
		b.WriteString(strings.Join(cols, cfg.Delimiter))
		b.WriteByte('\n')
	}
	return b.String()
}

// Contact is the JSON view of a card.
type Contact struct {
	Name       string   `json:"name"`
	Numbers    []string `json:"numbers"`
	Categories []string `json:"categories"`
	VCard      string   `json:"vcard,omitempty"`
}

// Contacts converts cards to their JSON view. The raw card text is included
// only when includeText is true.
func Contacts(cards []vcard.Card, includeText bool) []Contact {
	out := make([]Contact, len(cards))
	for i, c := range cards {
		out[i] = Contact{
			Name:       c.Name(),
			Numbers:    c.Numbers(),
			Categories: c.Categories(),
		}
		if includeText {
			out[i].VCard = c.Text()
		}
	}
	return out
}
