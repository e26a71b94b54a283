package parser

import (
	"strings"

	"github.com/recruitflow/resume-parser/internal/entity"
)

// parseProjects splits the projects section into blank-line blocks. Per
// block: first line is the name; the first date-range anywhere in the block
// sets the dates; technology-keyword lines feed tech, source/demo-keyword
// lines feed links, everything else becomes the description.
func parseProjects(sec string) []entity.ProjectItem {
	items := []entity.ProjectItem{}
	if strings.TrimSpace(sec) == "" {
		return items
	}
	for _, blk := range splitBlocks(sec) {
		lines := nonEmptyLines(blk)
		if len(lines) == 0 {
			continue
		}
		start, end := parseDateRange(blk)
		item := entity.ProjectItem{
			Name:      lines[0],
			StartDate: start,
			EndDate:   end,
			Links:     []string{},
			Tech:      []string{},
		}
		var descLines []string
		for _, l := range lines[1:] {
			lower := strings.ToLower(l)
			switch {
			case containsAnyFold(lower, techHints):
				for _, part := range reSkillSep.Split(afterColon(l), -1) {
					if t := strings.TrimSpace(part); t != "" {
						item.Tech = append(item.Tech, t)
					}
				}
			case containsAnyFold(lower, linkHints):
				for _, u := range reURL.FindAllString(l, -1) {
					item.Links = append(item.Links, cleanLink(u))
				}
			default:
				descLines = append(descLines, l)
			}
		}
		if len(descLines) > 0 {
			item.Desc = truncateRunes(strings.Join(descLines, " "), descMaxChars)
		}
		items = append(items, item)
	}
	return items
}
