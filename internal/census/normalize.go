package census

import (
	"regexp"
	"strings"
)

// KeySeparator joins department and municipality into a composite key. The
// pipe does not occur in DANE department or municipality names.
const KeySeparator = "|"

var reParenSuffix = regexp.MustCompile(`\s*\([^()]*\)$`)

// CleanMunicipality strips the trailing "(DEPARTMENT)" qualifier the DANE
// extract appends to ambiguous municipality names, e.g.
// "Cumaribo (Vichada)" -> "Cumaribo". Parentheses that are part of the
// proper name are only removed when they close the string.
func CleanMunicipality(raw string) string {
	return strings.TrimSpace(reParenSuffix.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// MunicipalityKey builds the composite identifier used as the sole group
// identity for municipality-level operations. Same department plus same
// clean municipality always yields the same key.
func MunicipalityKey(department, cleanMunicipality string) string {
	return strings.TrimSpace(department) + KeySeparator + cleanMunicipality
}

// SplitMunicipalityKey is the inverse of MunicipalityKey, for presentation
// layers that only carry the key.
func SplitMunicipalityKey(key string) (department, municipality string) {
	department, municipality, _ = strings.Cut(key, KeySeparator)
	return department, municipality
}
