package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cnpv/internal"
	"cnpv/internal/census"
)

// datasetHeader matches the column names of the original visor dataset so
// exported files stay interchangeable with other consumers of it.
var datasetHeader = []string{
	"Departamento", "Municipio_limpio", "KeyMpio",
	"PA11_COD_ETNIA", "Pueblo", "POBLACION_2018",
}

// WriteDatasetCSV stores the canonical dataset at path, creating parent
// directories as needed.
func WriteDatasetCSV(records []internal.CanonicalRecord, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(datasetHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Department, r.CleanMunicipality, r.MunicipalityKey,
			strconv.Itoa(r.GroupCode), r.GroupName, strconv.Itoa(r.Population),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadDatasetCSV loads a canonical dataset produced by WriteDatasetCSV.
// The (key, group) uniqueness invariant is re-checked on load since the
// file may have been edited outside this tool.
func ReadDatasetCSV(path string) ([]internal.CanonicalRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	seen := map[string]struct{}{}
	out := make([]internal.CanonicalRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < len(datasetHeader) {
			return nil, fmt.Errorf("dataset %s row %d: expected %d columns, got %d", path, i+2, len(datasetHeader), len(row))
		}
		code, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("dataset %s row %d: group code: %w", path, i+2, err)
		}
		pop, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, fmt.Errorf("dataset %s row %d: population: %w", path, i+2, err)
		}

		rec := internal.CanonicalRecord{
			Department:        row[0],
			CleanMunicipality: row[1],
			MunicipalityKey:   row[2],
			GroupCode:         code,
			GroupName:         row[4],
			Population:        pop,
		}
		if rec.MunicipalityKey == "" {
			rec.MunicipalityKey = census.MunicipalityKey(rec.Department, rec.CleanMunicipality)
		}

		pair := rec.MunicipalityKey + "\x00" + row[3]
		if _, dup := seen[pair]; dup {
			return nil, fmt.Errorf("dataset %s row %d: duplicate municipality/group pair %s %d", path, i+2, rec.MunicipalityKey, code)
		}
		seen[pair] = struct{}{}
		out = append(out, rec)
	}
	return out, nil
}
