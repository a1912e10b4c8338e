package census

import (
	"math"

	"cnpv/internal"
)

// Diversity computes the concentration and diversity indices over a
// population distribution:
//
//	HHI     = Σ p², where p is each group's share of the total
//	Simpson = 1 − HHI
//	Shannon = −Σ p·ln(p), zero-share terms contributing nothing
//
// A zero or empty total yields all-zero indices rather than NaN, so
// callers never special-case municipalities with no population under the
// current selection.
func Diversity(populations []int) internal.DiversityIndices {
	total := 0
	for _, p := range populations {
		total += p
	}
	if total <= 0 {
		return internal.DiversityIndices{}
	}

	var hhi, shannon float64
	for _, p := range populations {
		if p <= 0 {
			continue
		}
		share := float64(p) / float64(total)
		hhi += share * share
		shannon -= share * math.Log(share)
	}
	return internal.DiversityIndices{HHI: hhi, Simpson: 1 - hhi, Shannon: shannon}
}

// GroupPopulations extracts the population distribution of a record set,
// one value per record. Feeding a department- or selection-filtered set
// into Diversity gives indices at that level.
func GroupPopulations(records []internal.CanonicalRecord) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.Population)
	}
	return out
}
