package parser

import (
	"regexp"
	"strings"

	"github.com/recruitflow/resume-parser/internal/entity"
)

var reBlankLine = regexp.MustCompile(`\n\s*\n`)

func splitBlocks(sec string) []string {
	return reBlankLine.Split(strings.TrimSpace(sec), -1)
}

// parseEducation splits the education section into blank-line blocks. The
// first line of a block is the school; a GPA-keyword line fills gpa with the
// text after its separator; the first degree-keyword line fills degree.
func parseEducation(sec string) []entity.EducationItem {
	items := []entity.EducationItem{}
	if strings.TrimSpace(sec) == "" {
		return items
	}
	for _, blk := range splitBlocks(sec) {
		lines := nonEmptyLines(blk)
		if len(lines) == 0 {
			continue
		}
		item := entity.EducationItem{School: lines[0]}
		for _, l := range lines[1:] {
			lower := strings.ToLower(l)
			if strings.Contains(lower, gpaHint) {
				item.GPA = strings.TrimSpace(afterColon(l))
			}
			if item.Degree == "" && containsAnyFold(lower, degreeHints) {
				item.Degree = l
			}
		}
		items = append(items, item)
	}
	return items
}

// afterColon returns the text after the first ":", or the whole string when
// there is none.
func afterColon(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}

func containsAnyFold(lower string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}
