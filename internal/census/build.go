package census

import (
	"sort"
	"strings"

	"cnpv/internal"
)

// BuildDataset turns the raw extract into the canonical municipality×group
// table: municipality names cleaned, composite keys built, and duplicate
// group rows within a municipality collapsed into one record with summed
// population. A group code resolves to one canonical name for the whole
// dataset, the first non-empty name seen in input order; the fold is
// explicit so the result never depends on map iteration.
//
// The whole batch is rejected on the first broken row: a *DataError for a
// missing field, a *ValidationError for a negative population or a group
// code that never resolves to a name. No partial dataset is ever returned.
func BuildDataset(raw []internal.RawRecord) ([]internal.CanonicalRecord, error) {
	type pairKey struct {
		municipality string
		group        int
	}

	merged := map[pairKey]*internal.CanonicalRecord{}
	order := make([]pairKey, 0, len(raw))
	firstRow := map[pairKey]int{}
	names := map[int]string{}

	for i, row := range raw {
		dept := strings.TrimSpace(row.Department)
		if dept == "" {
			return nil, &DataError{Row: i, Field: "department", Msg: "missing department name"}
		}
		if strings.TrimSpace(row.RawMunicipality) == "" {
			return nil, &DataError{Row: i, Field: "municipality", Msg: "missing municipality name"}
		}
		if row.GroupCode <= 0 {
			return nil, &DataError{Row: i, Field: "groupCode", Msg: "missing or invalid group code"}
		}
		if row.Population < 0 {
			return nil, &ValidationError{Row: i, Field: "population", Msg: "negative population"}
		}

		if name := strings.TrimSpace(row.GroupName); name != "" && names[row.GroupCode] == "" {
			names[row.GroupCode] = name
		}

		clean := CleanMunicipality(row.RawMunicipality)
		key := pairKey{municipality: MunicipalityKey(dept, clean), group: row.GroupCode}

		rec, ok := merged[key]
		if !ok {
			rec = &internal.CanonicalRecord{
				Department:        dept,
				CleanMunicipality: clean,
				MunicipalityKey:   key.municipality,
				GroupCode:         row.GroupCode,
			}
			merged[key] = rec
			order = append(order, key)
			firstRow[key] = i
		}
		rec.Population += row.Population
	}

	out := make([]internal.CanonicalRecord, 0, len(order))
	for _, key := range order {
		rec := merged[key]
		rec.GroupName = names[key.group]
		if rec.GroupName == "" {
			return nil, &ValidationError{Row: firstRow[key], Field: "groupName", Msg: "no resolvable name for group code"}
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MunicipalityKey != out[j].MunicipalityKey {
			return out[i].MunicipalityKey < out[j].MunicipalityKey
		}
		return out[i].GroupCode < out[j].GroupCode
	})
	return out, nil
}
