package census

import (
	"errors"
	"testing"

	"cnpv/internal"
)

func TestBuildDatasetMergesDuplicateGroups(t *testing.T) {
	raw := []internal.RawRecord{
		{Department: "Meta", RawMunicipality: "Cumaribo (Meta)", GroupCode: 570, GroupName: "Sáliva", Population: 100},
		{Department: "Meta", RawMunicipality: "Cumaribo (Meta)", GroupCode: 570, GroupName: "Saliva", Population: 50},
	}

	records, err := BuildDataset(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("len=%d", len(records))
	}
	rec := records[0]
	if rec.Department != "Meta" || rec.CleanMunicipality != "Cumaribo" || rec.MunicipalityKey != "Meta|Cumaribo" {
		t.Fatalf("unexpected identity: %+v", rec)
	}
	if rec.GroupCode != 570 || rec.GroupName != "Sáliva" || rec.Population != 150 {
		t.Fatalf("unexpected merge: %+v", rec)
	}
}

func TestBuildDatasetFirstNonEmptyNameWins(t *testing.T) {
	raw := []internal.RawRecord{
		{Department: "Meta", RawMunicipality: "Cumaribo", GroupCode: 570, GroupName: "", Population: 10},
		{Department: "Meta", RawMunicipality: "Cumaribo", GroupCode: 570, GroupName: "Sáliva", Population: 5},
		{Department: "Vichada", RawMunicipality: "Puerto Carreño", GroupCode: 570, GroupName: "Saliba", Population: 7},
	}

	records, err := BuildDataset(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len=%d", len(records))
	}
	for _, rec := range records {
		if rec.GroupName != "Sáliva" {
			t.Fatalf("name not canonical: %+v", rec)
		}
	}
}

func TestBuildDatasetUniquenessInvariant(t *testing.T) {
	raw := []internal.RawRecord{
		{Department: "Meta", RawMunicipality: "Cumaribo (Meta)", GroupCode: 570, GroupName: "Sáliva", Population: 1},
		{Department: "Meta", RawMunicipality: "Cumaribo", GroupCode: 570, GroupName: "Sáliva", Population: 2},
		{Department: "Meta", RawMunicipality: "Cumaribo", GroupCode: 571, GroupName: "Sikuani", Population: 3},
		{Department: "Vichada", RawMunicipality: "Cumaribo (Vichada)", GroupCode: 570, GroupName: "Sáliva", Population: 4},
	}

	records, err := BuildDataset(raw)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[[2]string]bool{}
	for _, rec := range records {
		pair := [2]string{rec.MunicipalityKey, rec.GroupName}
		if seen[pair] {
			t.Fatalf("duplicate pair: %+v", rec)
		}
		seen[pair] = true
	}
	if len(records) != 3 {
		t.Fatalf("len=%d", len(records))
	}
}

func TestBuildDatasetSortedOutput(t *testing.T) {
	raw := []internal.RawRecord{
		{Department: "Vichada", RawMunicipality: "Cumaribo", GroupCode: 571, GroupName: "Sikuani", Population: 1},
		{Department: "Meta", RawMunicipality: "Puerto López", GroupCode: 570, GroupName: "Sáliva", Population: 2},
		{Department: "Vichada", RawMunicipality: "Cumaribo", GroupCode: 570, GroupName: "Sáliva", Population: 3},
	}

	records, err := BuildDataset(raw)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if prev.MunicipalityKey > cur.MunicipalityKey {
			t.Fatalf("keys out of order: %q > %q", prev.MunicipalityKey, cur.MunicipalityKey)
		}
		if prev.MunicipalityKey == cur.MunicipalityKey && prev.GroupCode >= cur.GroupCode {
			t.Fatalf("codes out of order within %q", cur.MunicipalityKey)
		}
	}
}

func TestBuildDatasetErrors(t *testing.T) {
	cases := []struct {
		name      string
		raw       []internal.RawRecord
		wantData  bool
		wantValid bool
		wantRow   int
		wantField string
	}{
		{
			name:      "missing department",
			raw:       []internal.RawRecord{{RawMunicipality: "Cumaribo", GroupCode: 570, GroupName: "Sáliva", Population: 1}},
			wantData:  true,
			wantField: "department",
		},
		{
			name:      "missing municipality",
			raw:       []internal.RawRecord{{Department: "Meta", GroupCode: 570, GroupName: "Sáliva", Population: 1}},
			wantData:  true,
			wantField: "municipality",
		},
		{
			name:      "missing group code",
			raw:       []internal.RawRecord{{Department: "Meta", RawMunicipality: "Cumaribo", GroupName: "Sáliva", Population: 1}},
			wantData:  true,
			wantField: "groupCode",
		},
		{
			name: "negative population",
			raw: []internal.RawRecord{
				{Department: "Meta", RawMunicipality: "Cumaribo", GroupCode: 570, GroupName: "Sáliva", Population: 1},
				{Department: "Meta", RawMunicipality: "Cumaribo", GroupCode: 570, GroupName: "Sáliva", Population: -1},
			},
			wantValid: true,
			wantRow:   1,
			wantField: "population",
		},
		{
			name:      "unnamed group",
			raw:       []internal.RawRecord{{Department: "Meta", RawMunicipality: "Cumaribo", GroupCode: 570, Population: 1}},
			wantValid: true,
			wantField: "groupName",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildDataset(tc.raw)
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.wantData {
				var dataErr *DataError
				if !errors.As(err, &dataErr) {
					t.Fatalf("want DataError, got %T: %v", err, err)
				}
				if dataErr.Field != tc.wantField || dataErr.Row != tc.wantRow {
					t.Fatalf("unexpected error detail: %+v", dataErr)
				}
			}
			if tc.wantValid {
				var validErr *ValidationError
				if !errors.As(err, &validErr) {
					t.Fatalf("want ValidationError, got %T: %v", err, err)
				}
				if validErr.Field != tc.wantField || validErr.Row != tc.wantRow {
					t.Fatalf("unexpected error detail: %+v", validErr)
				}
			}
		})
	}
}

func TestBuildDatasetEmptyInput(t *testing.T) {
	records, err := BuildDataset(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("len=%d", len(records))
	}
}
