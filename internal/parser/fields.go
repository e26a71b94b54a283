package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/recruitflow/resume-parser/internal/entity"
)

const (
	summaryMaxChars = 1000
	descMaxChars    = 800
	skillMaxChars   = 60
)

var (
	reBullet     = regexp.MustCompile(`^[\s•\-*]+`)
	reURL        = regexp.MustCompile(`https?://\S+`)
	reSkillSep   = regexp.MustCompile(`[,;/·]`)
	reInnerSpace = regexp.MustCompile(`\s+`)
	reEmail      = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	rePhone      = regexp.MustCompile(`(?:\+?\d{1,3})?[\s\-]?(?:\(?\d{2,4}\)?[\s\-]?)?\d{3,4}[\s\-]?\d{3,4}`)
)

func stripBullet(line string) string {
	return strings.TrimSpace(reBullet.ReplaceAllString(line, ""))
}

// nonEmptyLines returns the block's lines, bullet-stripped, blanks removed.
func nonEmptyLines(block string) []string {
	var out []string
	for _, ln := range strings.Split(block, "\n") {
		if s := stripBullet(ln); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// parseAbout turns the about-section body into a headline (first non-empty
// line) and a summary (the rest, joined).
func parseAbout(sec string) (headline, summary string) {
	lines := nonEmptyLines(sec)
	if len(lines) == 0 {
		return "", ""
	}
	headline = lines[0]
	if len(lines) > 1 {
		summary = truncateRunes(strings.Join(lines[1:], " "), summaryMaxChars)
	}
	return headline, summary
}

// parseSkills splits the skills section into tokens. A label before ":" is
// discarded ("Back-End: Node.js, Golang" keeps only the list); tokens longer
// than 60 characters are dropped as line noise.
func parseSkills(sec string) []string {
	var out []string
	for _, ln := range strings.Split(sec, "\n") {
		s := stripBullet(ln)
		if s == "" {
			continue
		}
		if i := strings.Index(s, ":"); i >= 0 {
			s = s[i+1:]
		}
		for _, part := range reSkillSep.Split(s, -1) {
			t := strings.TrimSpace(reInnerSpace.ReplaceAllString(part, " "))
			if t != "" && len([]rune(t)) <= skillMaxChars {
				out = append(out, t)
			}
		}
	}
	return dedupeFold(out)
}

// parseLanguages keeps one entry per non-empty line.
func parseLanguages(sec string) []string {
	return dedupeFold(nonEmptyLines(sec))
}

// guessLocation scans the first 60 lines for an address-keyword hit and
// returns that line verbatim.
func guessLocation(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 60 {
		lines = lines[:60]
	}
	for _, ln := range lines {
		lower := strings.ToLower(ln)
		for _, hint := range locationHints {
			if strings.Contains(lower, hint) {
				return strings.TrimSpace(ln)
			}
		}
	}
	return ""
}

// extractLinks classifies every URL-shaped token in the document into the
// LinkSet slots by domain substring. First match per slot wins.
func extractLinks(text string) entity.LinkSet {
	var links entity.LinkSet
	for _, u := range reURL.FindAllString(text, -1) {
		u = cleanLink(u)
		low := strings.ToLower(u)
		switch {
		case strings.Contains(low, "linkedin.com"):
			if links.LinkedIn == "" {
				links.LinkedIn = u
			}
		case strings.Contains(low, "github.com"):
			if links.GitHub == "" {
				links.GitHub = u
			}
		case strings.Contains(low, "facebook.com"):
			if links.Facebook == "" {
				links.Facebook = u
			}
		case strings.Contains(low, "vercel.app"),
			strings.Contains(low, "portfolio"),
			strings.Contains(low, "movie"):
			if links.PortfolioDemo == "" {
				links.PortfolioDemo = u
			}
		}
	}
	return links
}

// cleanLink drops trailing punctuation that regularly rides along with URLs
// in prose.
func cleanLink(u string) string {
	return strings.TrimRight(u, ").,];:")
}

// extractBasicContact pulls email, phone, and full name with loose regexes.
// The name heuristic (first early line of >= 2 capitalized words without
// digits or "@") is Latin-script-oriented and best-effort by design.
func extractBasicContact(text string) (fullName, email, phone string) {
	email = reEmail.FindString(text)
	phone = strings.TrimSpace(rePhone.FindString(text))

	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, ln := range lines {
		s := strings.TrimSpace(ln)
		words := strings.Fields(s)
		if len(words) < 2 || strings.ContainsAny(s, "@0123456789") {
			continue
		}
		allUpper := true
		for _, w := range words {
			if r := []rune(w)[0]; !unicode.IsUpper(r) {
				allUpper = false
				break
			}
		}
		if allUpper {
			fullName = s
			break
		}
	}
	return fullName, email, phone
}

// dedupeFold removes case-insensitive duplicates while preserving first-seen
// order and casing.
func dedupeFold(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
