package vcard

import (
	"iter"
	"strings"
)

// Cards returns a lazy sequence of the cards found in unfolded text.
//
// A line whose trimmed, upper-cased content is BEGIN:VCARD opens a card, discarding
// any card still open. END:VCARD closes the open card and yields it. Lines outside
// a card are dropped, as is a card left open at the end of the text.
//
// The sequence holds no cursor: ranging over it again rescans text from the start.
func Cards(text string) iter.Seq[Card] {
	return func(yield func(Card) bool) {
		var lines []string
		open := false
		for line := range strings.SplitSeq(text, "\n") {
			switch strings.ToUpper(strings.TrimSpace(line)) {
			case beginMarker:
				open = true
				lines = []string{line}
			case endMarker:
				if !open {
					continue
				}
				lines = append(lines, line)
				if !yield(Card{Lines: lines}) {
					return
				}
				open = false
				lines = nil
			default:
				if open {
					lines = append(lines, line)
				}
			}
		}
	}
}
