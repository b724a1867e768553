package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order against the trimmed cell. Covers the
// formats form backends and spreadsheet exports actually emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
	"2006/01/02",
}

// dateFragment matches a YYYY-M-D or YYYY/M/D substring anywhere in the
// cell, which survives locale decorations layout parsing chokes on.
var dateFragment = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)

// NormalizeDate reduces a free-form timestamp cell to YYYY-MM-DD. Layout
// parsing is tried first; failing that, the first date fragment embedded in
// the cell is taken. Unusable cells normalize to the empty string — parse
// failures never surface as errors.
func NormalizeDate(cell string) string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	m := dateFragment.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
