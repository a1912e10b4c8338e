package ingest

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"cnpv/internal"
	"cnpv/internal/config"
	"cnpv/internal/util"
)

// LoadWorkbook reads the DANE visor workbook and returns raw
// municipality×group rows ready for census.BuildDataset. The base sheet
// holds one row per department, municipality, group code and population;
// the catalog sheet maps group codes to people names and fills rows whose
// base name column is absent or blank. Column positions vary between
// workbook versions, so columns are detected by keyword over normalized
// headers.
func LoadWorkbook(path string, cfg config.Config) ([]internal.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	return readBase(f, cfg.BaseSheet, readCatalog(f, cfg.CatalogSheet))
}

func readBase(f *excelize.File, sheet string, catalog map[int]string) ([]internal.RawRecord, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read base sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("base sheet %q has no data rows", sheet)
	}

	headers := rows[0]
	deptIdx := util.MatchColumn(headers, "departamento")
	muniIdx := util.MatchColumn(headers, "municipio")
	codeIdx := util.MatchColumn(headers, "pa11codetnia", "codetnia", "codpueblo")
	popIdx := util.MatchColumn(headers, "poblacion", "total", "cnt")
	nameIdx := util.MatchColumn(headers, "pueblo", "nombre", "etnia")
	if nameIdx == codeIdx {
		// "PA11_COD_ETNIA" itself contains "etnia"; the code column never
		// doubles as the name column.
		nameIdx = -1
	}
	if deptIdx < 0 || muniIdx < 0 || codeIdx < 0 || popIdx < 0 {
		return nil, fmt.Errorf(
			"base sheet %q is missing key columns (departamento=%d municipio=%d codigo=%d poblacion=%d)",
			sheet, deptIdx, muniIdx, codeIdx, popIdx)
	}

	out := make([]internal.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		code, err := util.ParseCount(cell(row, codeIdx))
		if err != nil {
			return nil, fmt.Errorf("base sheet %q row %d: group code: %w", sheet, i+2, err)
		}
		pop, err := util.ParseCount(cell(row, popIdx))
		if err != nil {
			return nil, fmt.Errorf("base sheet %q row %d: population: %w", sheet, i+2, err)
		}

		name := ""
		if nameIdx >= 0 {
			name = strings.TrimSpace(cell(row, nameIdx))
		}
		if name == "" {
			name = catalog[code]
		}

		out = append(out, internal.RawRecord{
			Department:      strings.TrimSpace(cell(row, deptIdx)),
			RawMunicipality: strings.TrimSpace(cell(row, muniIdx)),
			GroupCode:       code,
			GroupName:       name,
			Population:      pop,
		})
	}
	return out, nil
}

// readCatalog reads the code→name catalog sheet; the first occurrence of a
// code wins. A missing catalog sheet is tolerated when the base sheet
// carries its own name column.
func readCatalog(f *excelize.File, sheet string) map[int]string {
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return map[int]string{}
	}

	headers := rows[0]
	codeIdx := util.MatchColumn(headers, "pa11codetnia", "codetnia", "codigo")
	nameIdx := util.MatchColumn(headers, "pueblo", "nombre", "etnia")
	if codeIdx < 0 || nameIdx < 0 || nameIdx == codeIdx {
		return map[int]string{}
	}

	catalog := map[int]string{}
	for _, row := range rows[1:] {
		code, err := util.ParseCount(cell(row, codeIdx))
		if err != nil || code <= 0 {
			continue
		}
		name := strings.TrimSpace(cell(row, nameIdx))
		if name == "" {
			continue
		}
		if _, ok := catalog[code]; !ok {
			catalog[code] = name
		}
	}
	return catalog
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
