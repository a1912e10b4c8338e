package census

import (
	"sort"

	"cnpv/internal"
)

// Pivot materializes the dense municipality×group matrix over the filtered
// selection: the full cross product of distinct municipality keys and
// distinct group codes, with zero population for absent combinations.
// Cells are ordered by municipality key ascending, then group code
// ascending.
func Pivot(records []internal.CanonicalRecord, sel internal.Selection) []internal.PivotCell {
	filtered := Filter(records, sel)

	keySet := map[string]struct{}{}
	codeSet := map[int]struct{}{}
	observed := map[string]map[int]int{}
	for _, r := range filtered {
		keySet[r.MunicipalityKey] = struct{}{}
		codeSet[r.GroupCode] = struct{}{}
		if observed[r.MunicipalityKey] == nil {
			observed[r.MunicipalityKey] = map[int]int{}
		}
		observed[r.MunicipalityKey][r.GroupCode] += r.Population
	}

	keys := sortedKeys(keySet)
	codes := make([]int, 0, len(codeSet))
	for code := range codeSet {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	out := make([]internal.PivotCell, 0, len(keys)*len(codes))
	for _, key := range keys {
		for _, code := range codes {
			out = append(out, internal.PivotCell{
				MunicipalityKey: key,
				GroupCode:       code,
				Population:      observed[key][code],
			})
		}
	}
	return out
}
