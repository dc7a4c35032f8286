// Package vcard turns raw vCard files into logical contact records and extracts
// the handful of fields the rest of the tool works with.
//
// The pipeline is strictly one-way: bytes are decoded (Decoder), folded lines are
// joined (Unfold), and the resulting text is segmented into Cards (Cards). A Card is
// never modified in place; Card.Keep returns a new Card.
package vcard

import (
	"iter"
	"strings"
)

const (
	beginMarker = "BEGIN:VCARD"
	endMarker   = "END:VCARD"
)

// Card is one contact record: its logical lines, including the BEGIN:VCARD and
// END:VCARD marker lines, exactly as they appeared after unfolding.
type Card struct {
	Lines []string
}

// Text returns the card's lines joined with "\n" (no trailing newline).
func (c Card) Text() string {
	return strings.Join(c.Lines, "\n")
}

// Keep returns a new card holding the begin/end markers and every inner line
// for which keep reports true. The receiver is not modified.
func (c Card) Keep(keep func(line string) bool) Card {
	if len(c.Lines) < 2 {
		return Card{Lines: append([]string(nil), c.Lines...)}
	}
	lines := make([]string, 0, len(c.Lines))
	lines = append(lines, c.Lines[0])
	for _, line := range c.Lines[1 : len(c.Lines)-1] {
		if keep(line) {
			lines = append(lines, line)
		}
	}
	lines = append(lines, c.Lines[len(c.Lines)-1])
	return Card{Lines: lines}
}

// Join renders cards as a record stream: card texts separated by "\n", with a
// trailing newline only when there is at least one card.
func Join(cards []Card) string {
	if len(cards) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Text())
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse decodes raw bytes with dec, unfolds the text, and segments it into cards.
// A nil dec uses the default encoding order.
func Parse(raw []byte, dec *Decoder) iter.Seq[Card] {
	if dec == nil {
		dec = NewDecoder()
	}
	return Cards(Unfold(dec.Decode(raw)))
}
