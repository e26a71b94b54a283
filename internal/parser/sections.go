package parser

import (
	"strings"
	"unicode"
)

// segmentSections splits resume text into named regions. A line opens a new
// region when, after trimming, it starts with a known heading synonym
// (case-insensitive) followed by a word boundary. Lines before the first
// heading are discarded; when a heading repeats, the later body replaces the
// earlier one.
func segmentSections(text string) map[string]string {
	sections := make(map[string]string)
	var current string
	var buf []string

	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(strings.Join(buf, "\n"))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if key := matchHeading(strings.TrimSpace(line)); key != "" {
			flush()
			current = key
			buf = buf[:0]
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()
	return sections
}

// matchHeading returns the lower-cased synonym a line opens with, or "".
// Boundary checking is done on runes rather than \b: Go's regexp word
// boundaries are ASCII-only and mishandle Vietnamese letters like "ữ".
func matchHeading(line string) string {
	if line == "" {
		return ""
	}
	lower := strings.ToLower(line)
	for _, alias := range headingAliases {
		if !strings.HasPrefix(lower, alias) {
			continue
		}
		rest := lower[len(alias):]
		if rest == "" {
			return alias
		}
		r := []rune(rest)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return alias
		}
	}
	return ""
}

// sectionFor returns the first non-empty body stored under any of the
// group's synonyms.
func sectionFor(sections map[string]string, g headingGroup) string {
	for _, alias := range g.aliases {
		if body := sections[alias]; body != "" {
			return body
		}
	}
	return ""
}
