package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseSkillsDropsLabelsAndDuplicates(t *testing.T) {
	sec := "Back-End: Node.js, Golang, Node.js\nDatabase: MySQL; MongoDB"
	got := parseSkills(sec)
	want := []string{"Node.js", "Golang", "MySQL", "MongoDB"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseSkills: got %v, want %v", got, want)
	}
}

func TestParseSkillsDropsOverlongTokens(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'x'
	}
	got := parseSkills("Golang, " + string(long))
	if !reflect.DeepEqual(got, []string{"Golang"}) {
		t.Errorf("got %v", got)
	}
}

// Re-running extraction over an already-extracted list must be a no-op.
func TestParseSkillsIdempotent(t *testing.T) {
	sec := "Back-End: Node.js, Golang,  Node.js\nDatabase: MySQL; MongoDB / Redis"
	once := parseSkills(sec)
	again := parseSkills(strings.Join(once, ", "))
	if !reflect.DeepEqual(again, once) {
		t.Errorf("second pass changed the list: got %v, want %v", again, once)
	}
}

func TestDedupeFoldIdempotent(t *testing.T) {
	once := dedupeFold([]string{"Go", "go", "SQL", "Go"})
	again := dedupeFold(once)
	if !reflect.DeepEqual(again, once) {
		t.Errorf("got %v, want %v", again, once)
	}
}

func TestParseAbout(t *testing.T) {
	headline, summary := parseAbout("• Lập trình viên Backend\nMong muốn học hỏi.\nPhát triển sản phẩm.")
	if headline != "Lập trình viên Backend" {
		t.Errorf("headline: got %q", headline)
	}
	if summary != "Mong muốn học hỏi. Phát triển sản phẩm." {
		t.Errorf("summary: got %q", summary)
	}
}

func TestGuessLocation(t *testing.T) {
	if got := guessLocation("Nguyễn Văn An\nHà Nội, Việt Nam\n"); got != "Hà Nội, Việt Nam" {
		t.Errorf("got %q", got)
	}
	if got := guessLocation("no address anywhere"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestExtractLinksFirstMatchWins(t *testing.T) {
	text := "https://github.com/first\n" +
		"see https://github.com/second.\n" +
		"https://www.linkedin.com/in/an,\n" +
		"https://movie-web.vercel.app/\n"
	links := extractLinks(text)
	if links.GitHub != "https://github.com/first" {
		t.Errorf("github: got %q", links.GitHub)
	}
	if links.LinkedIn != "https://www.linkedin.com/in/an" {
		t.Errorf("linkedin (trailing comma should be trimmed): got %q", links.LinkedIn)
	}
	if links.PortfolioDemo != "https://movie-web.vercel.app/" {
		t.Errorf("portfolio: got %q", links.PortfolioDemo)
	}
	if links.Facebook != "" {
		t.Errorf("facebook: got %q, want empty", links.Facebook)
	}
}

func TestExtractBasicContact(t *testing.T) {
	text := "NGUYỄN VĂN AN\nEmail: an.nguyen@example.com\nSĐT: 0912 345 678\n"
	name, email, phone := extractBasicContact(text)
	if name != "NGUYỄN VĂN AN" {
		t.Errorf("name: got %q", name)
	}
	if email != "an.nguyen@example.com" {
		t.Errorf("email: got %q", email)
	}
	if NormalizePhone(phone) != "+84912345678" {
		t.Errorf("phone: got %q (normalized %q)", phone, NormalizePhone(phone))
	}
}

func TestExtractBasicContactNoName(t *testing.T) {
	name, _, _ := extractBasicContact("line with 123 digits\nan@example.com\n")
	if name != "" {
		t.Errorf("got %q, want empty", name)
	}
}
