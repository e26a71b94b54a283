package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Date ranges appear as "01/03/2021 - 15/08/2022", "01/2020 – hiện tại",
// with either a hyphen or an en-dash between the two sides. Each side is
// D/M/Y or M/Y; "present" markers in either language mean an open end.
var reDateRange = regexp.MustCompile(
	`(?i)(\d{1,2}(?:[/-]\d{1,2})?[/-]\d{2,4})\s*[-–]\s*` +
		`(\d{1,2}(?:[/-]\d{1,2})?[/-]\d{2,4}|hiện tại|hien tai|present)`)

var presentMarkers = []string{"hiện tại", "hien tai", "present"}

var reDateSep = regexp.MustCompile(`[/-]`)

// parseDateRange extracts the first date range from a block. An open-ended
// range yields an empty end date.
func parseDateRange(block string) (start, end string) {
	m := reDateRange.FindStringSubmatch(block)
	if m == nil {
		return "", ""
	}
	start = toYearMonth(m[1])
	to := strings.ToLower(m[2])
	for _, marker := range presentMarkers {
		if strings.Contains(to, marker) {
			return start, ""
		}
	}
	return start, toYearMonth(m[2])
}

// toYearMonth normalizes a D/M/Y or M/Y token to "YYYY-MM". Two-digit years
// fold to 20xx below 70 and 19xx otherwise.
func toYearMonth(d string) string {
	parts := reDateSep.Split(d, -1)
	var mm, yy string
	switch len(parts) {
	case 3:
		mm, yy = parts[1], parts[2]
	case 2:
		mm, yy = parts[0], parts[1]
	default:
		return ""
	}
	if len(yy) == 2 {
		n, err := strconv.Atoi(yy)
		if err != nil {
			return ""
		}
		if n < 70 {
			yy = "20" + yy
		} else {
			yy = "19" + yy
		}
	}
	month, err := strconv.Atoi(mm)
	if err != nil || month < 1 || month > 12 {
		return ""
	}
	return fmt.Sprintf("%s-%02d", yy, month)
}
