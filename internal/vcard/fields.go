package vcard

import (
	"regexp"
	"strings"
)

var (
	fnRegex         = regexp.MustCompile(`(?i)^FN:\s*(.+)$`)
	nRegex          = regexp.MustCompile(`(?i)^N:\s*(.+)$`)
	categoriesRegex = regexp.MustCompile(`(?i)^(?:CATEGORIES|CATEGORY):\s*(.+)$`)
	telRegex        = regexp.MustCompile(`(?i)^TEL(?:;[^:]*)?:\s*(.+)$`)
	termSplitRegex  = regexp.MustCompile(`[;,]`)
)

// Name returns the card's display name.
// FN wins; otherwise N is rendered as "<given> <family>" (either part may be
// missing); a card with neither yields "".
func (c Card) Name() string {
	for _, line := range c.Lines {
		if m := fnRegex.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	for _, line := range c.Lines {
		m := nRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		parts := strings.Split(m[1], ";")
		family := strings.TrimSpace(parts[0])
		given := ""
		if len(parts) > 1 {
			given = strings.TrimSpace(parts[1])
		}
		names := make([]string, 0, 2)
		for _, p := range []string{given, family} {
			if p != "" {
				names = append(names, p)
			}
		}
		return strings.Join(names, " ")
	}
	return ""
}

// Categories returns the lower-cased categories from the first CATEGORIES (or
// CATEGORY) line, in order. Duplicates are kept; empty entries are dropped.
func (c Card) Categories() []string {
	for _, line := range c.Lines {
		if m := categoriesRegex.FindStringSubmatch(line); m != nil {
			return splitTerms(m[1])
		}
	}
	return []string{}
}

// CategorySet returns Categories as a set.
func (c Card) CategorySet() map[string]struct{} {
	cats := c.Categories()
	set := make(map[string]struct{}, len(cats))
	for _, cat := range cats {
		set[cat] = struct{}{}
	}
	return set
}

// Numbers returns the values of every TEL line, in order. Parameters between
// TEL and the colon (e.g. ";TYPE=cell") are ignored; empty values are dropped.
func (c Card) Numbers() []string {
	nums := []string{}
	for _, line := range c.Lines {
		m := telRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(m[1]); v != "" {
			nums = append(nums, v)
		}
	}
	return nums
}

// Property returns the upper-cased property name of a content line: the text
// before the first ':' or ';', without any "group." prefix.
// "item1.TEL;TYPE=cell:+1 555" yields "TEL". Lines without a colon yield "".
func Property(line string) string {
	if !strings.Contains(line, ":") {
		return ""
	}
	end := strings.IndexAny(line, ":;")
	name := strings.ToUpper(strings.TrimSpace(line[:end]))
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		name = name[dot+1:]
	}
	return name
}

// splitTerms splits on ',' and ';', trims and lower-cases each part, and drops empties.
func splitTerms(s string) []string {
	parts := termSplitRegex.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
