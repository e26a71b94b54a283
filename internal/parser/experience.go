package parser

import (
	"strings"

	"github.com/recruitflow/resume-parser/internal/entity"
)

const maxHighlights = 8

// parseExperiences merges the experience-shaped sections (internship,
// project involvement, work experience) and block-splits each the same way
// projects are. The first line of a block is recorded as the company; the
// source material does not reliably separate company from title, so title is
// left empty. Up to eight subsequent lines longer than two characters become
// highlights.
func parseExperiences(secs []string) []entity.ExperienceItem {
	items := []entity.ExperienceItem{}
	for _, sec := range secs {
		if strings.TrimSpace(sec) == "" {
			continue
		}
		for _, blk := range splitBlocks(sec) {
			lines := nonEmptyLines(blk)
			if len(lines) == 0 {
				continue
			}
			start, end := parseDateRange(blk)
			item := entity.ExperienceItem{
				Company:    lines[0],
				StartDate:  start,
				EndDate:    end,
				Highlights: []string{},
				Skills:     []string{},
			}
			for _, l := range lines[1:] {
				if len([]rune(l)) > 2 {
					item.Highlights = append(item.Highlights, l)
					if len(item.Highlights) == maxHighlights {
						break
					}
				}
			}
			items = append(items, item)
		}
	}
	return items
}
