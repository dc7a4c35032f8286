package vcard

import "strings"

var (
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	folds       = strings.NewReplacer("\n ", "", "\n\t", "")
)

// NormalizeLineEndings converts CRLF and bare CR line endings to LF.
func NormalizeLineEndings(s string) string {
	return lineEndings.Replace(s)
}

// Unfold joins folded continuation lines: every LF followed by a single space
// or tab is removed together with that whitespace character.
// Line endings are normalized first so folded CRLF input is handled too.
func Unfold(s string) string {
	return folds.Replace(NormalizeLineEndings(s))
}
