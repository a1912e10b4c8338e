package census

import (
	"sort"

	"cnpv/internal"
)

// Aggregate filters the dataset and computes indicators at municipality and
// department level. An empty filtered set yields empty indicator slices,
// never an error, so an unknown group code or department renders as a
// "no data" state downstream.
func Aggregate(records []internal.CanonicalRecord, sel internal.Selection) internal.Aggregation {
	filtered := Filter(records, sel)
	return internal.Aggregation{
		Municipalities: AggregateMunicipalities(filtered),
		Departments:    AggregateDepartments(filtered),
	}
}

// AggregateMunicipalities groups records by municipality key and computes
// per-municipality totals, positive-population group counts, the full
// ranking of groups (population descending, code ascending on ties) and
// diversity indices. The result is ordered by municipality key.
func AggregateMunicipalities(records []internal.CanonicalRecord) []internal.MunicipalityIndicator {
	byKey := map[string]*internal.MunicipalityIndicator{}
	keys := []string{}

	for _, r := range records {
		ind, ok := byKey[r.MunicipalityKey]
		if !ok {
			ind = &internal.MunicipalityIndicator{
				MunicipalityKey:   r.MunicipalityKey,
				Department:        r.Department,
				CleanMunicipality: r.CleanMunicipality,
				TopGroups:         []internal.GroupRank{},
			}
			byKey[r.MunicipalityKey] = ind
			keys = append(keys, r.MunicipalityKey)
		}
		ind.TotalPopulation += r.Population
		if r.Population > 0 {
			ind.GroupCount++
		}
		ind.TopGroups = append(ind.TopGroups, internal.GroupRank{GroupCode: r.GroupCode, Population: r.Population})
	}

	sort.Strings(keys)
	out := make([]internal.MunicipalityIndicator, 0, len(keys))
	for _, key := range keys {
		ind := byKey[key]
		sort.Slice(ind.TopGroups, func(i, j int) bool {
			if ind.TopGroups[i].Population != ind.TopGroups[j].Population {
				return ind.TopGroups[i].Population > ind.TopGroups[j].Population
			}
			return ind.TopGroups[i].GroupCode < ind.TopGroups[j].GroupCode
		})
		populations := make([]int, 0, len(ind.TopGroups))
		for _, g := range ind.TopGroups {
			populations = append(populations, g.Population)
		}
		ind.Diversity = Diversity(populations)
		out = append(out, *ind)
	}
	return out
}

// AggregateDepartments groups records by department: total population,
// distinct groups with positive population, and municipalities with a
// positive total. Ordered by department name. Diversity is not computed at
// this level; callers wanting it run Diversity over GroupPopulations of a
// department-filtered set.
func AggregateDepartments(records []internal.CanonicalRecord) []internal.DepartmentIndicator {
	type deptState struct {
		total          int
		groups         map[int]struct{}
		municipalities map[string]int
	}

	byDept := map[string]*deptState{}
	names := []string{}
	for _, r := range records {
		st, ok := byDept[r.Department]
		if !ok {
			st = &deptState{groups: map[int]struct{}{}, municipalities: map[string]int{}}
			byDept[r.Department] = st
			names = append(names, r.Department)
		}
		st.total += r.Population
		if r.Population > 0 {
			st.groups[r.GroupCode] = struct{}{}
		}
		st.municipalities[r.MunicipalityKey] += r.Population
	}

	sort.Strings(names)
	out := make([]internal.DepartmentIndicator, 0, len(names))
	for _, name := range names {
		st := byDept[name]
		present := 0
		for _, pop := range st.municipalities {
			if pop > 0 {
				present++
			}
		}
		out = append(out, internal.DepartmentIndicator{
			Department:        name,
			TotalPopulation:   st.total,
			GroupCount:        len(st.groups),
			MunicipalityCount: present,
		})
	}
	return out
}

// ByGroup sums the filtered selection per group and reports each group's
// share of the selection total, ordered by population descending and group
// code ascending on ties.
func ByGroup(records []internal.CanonicalRecord, sel internal.Selection) []internal.GroupShare {
	filtered := Filter(records, sel)

	totals := map[int]*internal.GroupShare{}
	codes := []int{}
	grandTotal := 0
	for _, r := range filtered {
		share, ok := totals[r.GroupCode]
		if !ok {
			share = &internal.GroupShare{GroupCode: r.GroupCode, GroupName: r.GroupName}
			totals[r.GroupCode] = share
			codes = append(codes, r.GroupCode)
		}
		share.Population += r.Population
		grandTotal += r.Population
	}

	out := make([]internal.GroupShare, 0, len(codes))
	for _, code := range codes {
		share := totals[code]
		if grandTotal > 0 {
			share.Share = float64(share.Population) / float64(grandTotal)
		}
		out = append(out, *share)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Population != out[j].Population {
			return out[i].Population > out[j].Population
		}
		return out[i].GroupCode < out[j].GroupCode
	})
	return out
}
