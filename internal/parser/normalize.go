package parser

import (
	"regexp"
	"strings"
)

var (
	reStrictEmail = regexp.MustCompile(`[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	rePhoneJunk   = regexp.MustCompile(`[^\d+]`)
	reMultiSpace  = regexp.MustCompile(`\s{2,}`)
)

// NormalizeEmail lowercases and re-validates against a strict pattern.
// Anything that doesn't contain a plausible address normalizes to "".
func NormalizeEmail(s string) string {
	return reStrictEmail.FindString(strings.ToLower(strings.TrimSpace(s)))
}

// NormalizePhone strips everything but digits and "+" and applies the
// Vietnamese trunk rules: a bare "84" country code gains "+", a leading "0"
// becomes "+84". No further validation happens; malformed input can still
// normalize to a plausible-looking but invalid number.
func NormalizePhone(s string) string {
	s = rePhoneJunk.ReplaceAllString(strings.TrimSpace(s), "")
	if strings.HasPrefix(s, "84") {
		s = "+" + s
	}
	if strings.HasPrefix(s, "0") {
		s = "+84" + s[1:]
	}
	return s
}

// CleanLocation collapses runs of whitespace to a single space.
func CleanLocation(s string) string {
	return reMultiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// JoinSkills produces a single comma-joined, case-insensitively
// de-duplicated string preserving first-seen order and casing. Paired with
// entity.FlexStrings this accepts either a list or a delimiter-bearing
// string.
func JoinSkills(skills []string) string {
	var cleaned []string
	for _, s := range skills {
		if t := strings.TrimSpace(s); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(dedupeFold(cleaned), ", ")
}

// DedupeFold is the shared list invariant: case-insensitive de-duplication
// preserving first-seen order and casing.
func DedupeFold(in []string) []string {
	return dedupeFold(in)
}
