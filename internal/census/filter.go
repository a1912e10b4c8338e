package census

import (
	"sort"
	"strings"

	"cnpv/internal"
)

// Filter returns the subset of records matching every restricted dimension
// of the selection. An empty dimension passes all values; string dimensions
// compare case-insensitively. The input is never mutated and the result is
// always a fresh slice, so an unrestricted selection returns an equal copy.
func Filter(records []internal.CanonicalRecord, sel internal.Selection) []internal.CanonicalRecord {
	groups := map[int]struct{}{}
	for _, code := range sel.GroupCodes {
		groups[code] = struct{}{}
	}
	keys := upperSet(sel.MunicipalityKeys)
	departments := upperSet(sel.Departments)

	out := make([]internal.CanonicalRecord, 0, len(records))
	for _, r := range records {
		if len(groups) > 0 {
			if _, ok := groups[r.GroupCode]; !ok {
				continue
			}
		}
		if len(keys) > 0 {
			if _, ok := keys[strings.ToUpper(r.MunicipalityKey)]; !ok {
				continue
			}
		}
		if len(departments) > 0 {
			if _, ok := departments[strings.ToUpper(r.Department)]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Options lists the selectable values present in a dataset: distinct group
// codes with their canonical names, municipality keys, and departments,
// each sorted ascending.
func Options(records []internal.CanonicalRecord) internal.DatasetOptions {
	groupNames := map[int]string{}
	keys := map[string]struct{}{}
	departments := map[string]struct{}{}
	for _, r := range records {
		if _, ok := groupNames[r.GroupCode]; !ok {
			groupNames[r.GroupCode] = r.GroupName
		}
		keys[r.MunicipalityKey] = struct{}{}
		departments[r.Department] = struct{}{}
	}

	opts := internal.DatasetOptions{
		Groups:         make([]internal.GroupOption, 0, len(groupNames)),
		Municipalities: sortedKeys(keys),
		Departments:    sortedKeys(departments),
	}
	for code, name := range groupNames {
		opts.Groups = append(opts.Groups, internal.GroupOption{GroupCode: code, GroupName: name})
	}
	sort.Slice(opts.Groups, func(i, j int) bool { return opts.Groups[i].GroupCode < opts.Groups[j].GroupCode })
	return opts
}

func upperSet(values []string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out[strings.ToUpper(v)] = struct{}{}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
