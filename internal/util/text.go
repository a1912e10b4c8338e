package util

import (
	"regexp"
	"strings"
)

var (
	reSeparators = regexp.MustCompile(`[\s_\-.]+`)
	accents      = strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
		"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u",
		"ñ", "n", "Ñ", "n",
	)
)

// NormalizeColumn flattens a spreadsheet column header for keyword
// matching: lowercase, Spanish accents folded, separators removed.
// "Población 2018" and "POBLACION_2018" normalize identically.
func NormalizeColumn(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	s = accents.Replace(s)
	return reSeparators.ReplaceAllString(s, "")
}

// MatchColumn returns the index of the first column whose normalized header
// contains one of the keywords, or -1. Keywords are tried in order, so more
// specific patterns go first.
func MatchColumn(headers []string, keywords ...string) int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeColumn(h)
	}
	for _, key := range keywords {
		keyNorm := NormalizeColumn(key)
		for i, norm := range normalized {
			if keyNorm != "" && strings.Contains(norm, keyNorm) {
				return i
			}
		}
	}
	return -1
}
