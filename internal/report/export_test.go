package report

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"cnpv/internal"
)

func reportRecords() []internal.CanonicalRecord {
	return []internal.CanonicalRecord{
		{Department: "Meta", CleanMunicipality: "Cumaribo", MunicipalityKey: "Meta|Cumaribo", GroupCode: 570, GroupName: "Sáliva", Population: 100},
		{Department: "Meta", CleanMunicipality: "Cumaribo", MunicipalityKey: "Meta|Cumaribo", GroupCode: 571, GroupName: "Sikuani", Population: 20},
		{Department: "Vichada", CleanMunicipality: "Cumaribo", MunicipalityKey: "Vichada|Cumaribo", GroupCode: 571, GroupName: "Sikuani", Population: 30},
	}
}

func TestWriteReportSheets(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "report.xlsx")
	if err := WriteReport(reportRecords(), internal.Selection{}, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := []string{sheetBase, sheetMunicipality, sheetDepartment, sheetMatrix, sheetDictionary}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("sheets=%v", got)
	}

	rows, err := f.GetRows(sheetBase)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("base rows=%d", len(rows))
	}
	if rows[1][2] != "Meta|Cumaribo" || rows[1][5] != "100" {
		t.Fatalf("base row: %v", rows[1])
	}
}

func TestWriteReportMatrixIsDense(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteReport(reportRecords(), internal.Selection{}, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetMatrix)
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per municipality; two group columns after the
	// two name columns.
	if len(rows) != 3 {
		t.Fatalf("matrix rows=%d", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []string{"Departamento", "Municipio_limpio", "570", "571"}) {
		t.Fatalf("matrix header: %v", rows[0])
	}
	// Vichada|Cumaribo has no 570 presence; the cell is zero-filled.
	if rows[2][0] != "Vichada" || rows[2][2] != "0" || rows[2][3] != "30" {
		t.Fatalf("matrix row: %v", rows[2])
	}
}

func TestWriteReportAppliesSelection(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.xlsx")
	sel := internal.Selection{Departments: []string{"Meta"}}
	if err := WriteReport(reportRecords(), sel, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetDepartment)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("department rows=%d", len(rows))
	}
	if rows[1][0] != "Meta" || rows[1][1] != "120" {
		t.Fatalf("department row: %v", rows[1])
	}
}

func TestWriteReportIndicators(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteReport(reportRecords(), internal.Selection{}, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetMunicipality)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("municipality rows=%d", len(rows))
	}
	// Meta|Cumaribo sorts first: 120 total, groups ranked 570 then 571.
	if rows[1][1] != "Cumaribo" || rows[1][2] != "120" || rows[1][3] != "2" {
		t.Fatalf("indicator row: %v", rows[1])
	}
	if rows[1][4] != "570:100; 571:20" {
		t.Fatalf("ranking cell: %v", rows[1][4])
	}
}
