package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// positionRules map diacritic-folded keywords from an email subject to a
// canonical job title. Order matters: more specific keywords come first so
// "machine learning" is not swallowed by "ai".
var positionRules = []struct {
	keyword string
	title   string
}{
	{"machine learning", "Machine Learning Engineer"},
	{"business analyst", "Business Analyst"},
	{"customer service", "Customer Service"},
	{"human resource", "HR Executive"},
	{"system admin", "System Administrator"},
	{"it helpdesk", "IT Helpdesk"},
	{"front end", "Frontend Developer"},
	{"frontend", "Frontend Developer"},
	{"backend", "Backend Developer"},
	{"fullstack", "Fullstack Developer"},
	{"mobile", "Mobile Developer"},
	{"ios", "iOS Developer"},
	{"android", "Android Developer"},
	{"flutter", "Flutter Developer"},
	{"react", "React Developer"},
	{"node", "NodeJS Developer"},
	{"golang", "Golang Developer"},
	{"python", "Python Developer"},
	{"java", "Java Developer"},
	{"php", "PHP Developer"},
	{"devops", "DevOps Engineer"},
	{"data", "Data Engineer"},
	{"ai", "AI Engineer"},
	{"qa", "QA/QC Tester"},
	{"tester", "QA/QC Tester"},
	{"test", "QA/QC Tester"},
	{"designer", "UI/UX Designer"},
	{"ui ux", "UI/UX Designer"},
	{"product", "Product Manager"},
	{"project", "Project Manager"},
	{"pm", "Project Manager"},
	{"hr", "HR Executive"},
	{"accountant", "Accountant"},
	{"ke toan", "Accountant"},
	{"marketing", "Marketing Executive"},
	{"sales", "Sales Executive"},
	{"sale", "Sales Executive"},
	{"support", "Customer Support"},
	{"ba", "Business Analyst"},
	{"intern", "Intern"},
	{"thuc tap", "Intern"},
	{"content", "Content Writer"},
	{"copywriter", "Copywriter"},
	{"operation", "Operation Executive"},
	{"security", "Security Engineer"},
	{"network", "Network Engineer"},
	{"r&d", "R&D Engineer"},
}

var reGenericRole = regexp.MustCompile(`developer|engineer|programmer`)

// PositionUnmatched is returned when a subject maps to no known role.
const PositionUnmatched = "Nằm ngoài tuyển dụng"

// ExtractPosition maps an email subject to a canonical job title, tolerant
// of casing and Vietnamese diacritics.
func ExtractPosition(subject string) string {
	folded := foldDiacritics(strings.ToLower(strings.TrimSpace(subject)))
	for _, rule := range positionRules {
		if matchKeyword(folded, rule.keyword) {
			return rule.title
		}
	}
	if reGenericRole.MatchString(folded) {
		return "Software Engineer"
	}
	return PositionUnmatched
}

// matchKeyword requires word boundaries so "ba" doesn't fire inside "bank".
func matchKeyword(s, kw string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], kw)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordByte(s[i-1])
		afterIdx := i + len(kw)
		after := afterIdx == len(s) || !isWordByte(s[afterIdx])
		if before && after {
			return true
		}
		idx = i + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// foldDiacritics strips combining marks: "kế toán" -> "ke toan".
func foldDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		// NFD does not decompose the Vietnamese đ
		if r == 'đ' {
			r = 'd'
		}
		b.WriteRune(r)
	}
	return b.String()
}
