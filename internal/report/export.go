package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"cnpv/internal"
	"cnpv/internal/census"
)

// Sheet names follow the original visor report so downstream spreadsheet
// consumers keep working.
const (
	sheetBase         = "base_municipal_pueblo"
	sheetMunicipality = "indicadores_municipio"
	sheetDepartment   = "indicadores_departamento"
	sheetMatrix       = "matriz_mpio_x_pueblo"
	sheetDictionary   = "diccionario"
)

// WriteReport builds the five-sheet workbook over the filtered selection:
// the filtered base table, municipality and department indicators, the
// dense municipality×group matrix and a variable dictionary.
func WriteReport(records []internal.CanonicalRecord, sel internal.Selection, outputPath string) error {
	filtered := census.Filter(records, sel)

	f := excelize.NewFile()
	base := f.GetSheetName(0)
	if err := f.SetSheetName(base, sheetBase); err != nil {
		return err
	}
	for _, name := range []string{sheetMunicipality, sheetDepartment, sheetMatrix, sheetDictionary} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	writeBase(f, filtered)
	writeMunicipalityIndicators(f, census.AggregateMunicipalities(filtered))
	writeDepartmentIndicators(f, census.AggregateDepartments(filtered))
	writeMatrix(f, filtered)
	writeDictionary(f)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeBase(f *excelize.File, records []internal.CanonicalRecord) {
	setRow(f, sheetBase, 1, "Departamento", "Municipio_limpio", "KeyMpio", "PA11_COD_ETNIA", "Pueblo", "POBLACION_2018")
	for i, r := range records {
		setRow(f, sheetBase, i+2, r.Department, r.CleanMunicipality, r.MunicipalityKey, r.GroupCode, r.GroupName, r.Population)
	}
}

func writeMunicipalityIndicators(f *excelize.File, indicators []internal.MunicipalityIndicator) {
	setRow(f, sheetMunicipality, 1,
		"Departamento", "Municipio_limpio", "poblacion_indigena_total", "num_pueblos",
		"pueblos_y_poblacion", "HHI", "Simpson (1-HHI)", "Shannon")
	for i, ind := range indicators {
		ranking := make([]string, 0, len(ind.TopGroups))
		for _, g := range ind.TopGroups {
			ranking = append(ranking, fmt.Sprintf("%d:%d", g.GroupCode, g.Population))
		}
		setRow(f, sheetMunicipality, i+2,
			ind.Department, ind.CleanMunicipality, ind.TotalPopulation, ind.GroupCount,
			strings.Join(ranking, "; "), ind.Diversity.HHI, ind.Diversity.Simpson, ind.Diversity.Shannon)
	}
}

func writeDepartmentIndicators(f *excelize.File, indicators []internal.DepartmentIndicator) {
	setRow(f, sheetDepartment, 1, "Departamento", "poblacion_indigena_total", "num_pueblos", "num_municipios")
	for i, ind := range indicators {
		setRow(f, sheetDepartment, i+2, ind.Department, ind.TotalPopulation, ind.GroupCount, ind.MunicipalityCount)
	}
}

// writeMatrix lays the dense pivot out in wide form: one row per
// municipality, one column per group code.
func writeMatrix(f *excelize.File, records []internal.CanonicalRecord) {
	cells := census.Pivot(records, internal.Selection{})

	codes := []int{}
	seenCodes := map[int]struct{}{}
	keys := []string{}
	seenKeys := map[string]struct{}{}
	byPair := map[string]map[int]int{}
	for _, c := range cells {
		if _, ok := seenCodes[c.GroupCode]; !ok {
			seenCodes[c.GroupCode] = struct{}{}
			codes = append(codes, c.GroupCode)
		}
		if _, ok := seenKeys[c.MunicipalityKey]; !ok {
			seenKeys[c.MunicipalityKey] = struct{}{}
			keys = append(keys, c.MunicipalityKey)
		}
		if byPair[c.MunicipalityKey] == nil {
			byPair[c.MunicipalityKey] = map[int]int{}
		}
		byPair[c.MunicipalityKey][c.GroupCode] = c.Population
	}
	sort.Ints(codes)
	sort.Strings(keys)

	header := []any{"Departamento", "Municipio_limpio"}
	for _, code := range codes {
		header = append(header, code)
	}
	setRow(f, sheetMatrix, 1, header...)

	for i, key := range keys {
		department, municipality := census.SplitMunicipalityKey(key)
		row := []any{department, municipality}
		for _, code := range codes {
			row = append(row, byPair[key][code])
		}
		setRow(f, sheetMatrix, i+2, row...)
	}
}

func writeDictionary(f *excelize.File) {
	entries := [][2]string{
		{"Departamento", "Nombre del departamento"},
		{"Municipio_limpio", "Nombre del municipio sin sufijo del departamento"},
		{"KeyMpio", "Clave compuesta Departamento|Municipio"},
		{"PA11_COD_ETNIA", "Código del pueblo indígena según el microdato CNPV-2018"},
		{"Pueblo", "Nombre del pueblo indígena"},
		{"POBLACION_2018", "Población censada en 2018 que pertenece a ese pueblo en ese municipio"},
		{"poblacion_indigena_total", "Población indígena total en el municipio o departamento"},
		{"num_pueblos", "Número de pueblos diferentes presentes"},
		{"pueblos_y_poblacion", "Cadena con cada pueblo y su población en el municipio"},
		{"HHI", "Índice de Herfindahl-Hirschman de concentración por pueblos (0=diverso, 1=un solo pueblo)"},
		{"Simpson (1-HHI)", "Índice de diversidad de Simpson (1 - HHI)"},
		{"Shannon", "Índice de diversidad de Shannon (entropía)"},
		{"num_municipios", "Número de municipios con presencia indígena en el departamento"},
	}
	setRow(f, sheetDictionary, 1, "variable", "descripcion")
	for i, entry := range entries {
		setRow(f, sheetDictionary, i+2, entry[0], entry[1])
	}
}

func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
