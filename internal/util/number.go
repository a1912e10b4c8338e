package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reDotThousands   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	reCommaThousands = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
)

// ParseCount parses a population cell as a whole number. Census
// exports carry counts with thousand separators ("3.811.234", "1,000",
// "1 000") or as float-rendered cells ("570.0"). An empty cell counts as
// zero; anything else non-numeric is an error.
func ParseCount(cell string) (int, error) {
	s := strings.TrimSpace(strings.ReplaceAll(cell, " ", " "))
	if s == "" {
		return 0, nil
	}
	compact := strings.ReplaceAll(s, " ", "")
	switch {
	case reDotThousands.MatchString(compact):
		compact = strings.ReplaceAll(compact, ".", "")
	case reCommaThousands.MatchString(compact):
		compact = strings.ReplaceAll(compact, ",", "")
	default:
		compact = strings.ReplaceAll(compact, ",", ".")
	}
	parsed, err := strconv.ParseFloat(compact, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	if parsed != float64(int(parsed)) {
		return 0, fmt.Errorf("not a whole count: %q", cell)
	}
	return int(parsed), nil
}
