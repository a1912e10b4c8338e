package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cnpv/internal"
	"cnpv/internal/census"
	"cnpv/internal/config"
	"cnpv/internal/ingest"
	"cnpv/internal/report"
	"cnpv/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "dataset:build":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "path to the DANE visor workbook (xlsx)")
		csvOut := fs.String("csv", cfg.DatasetPath, "output csv path (empty to skip)")
		dbOut := fs.String("db", "", "output sqlite path (empty to skip)")
		validate := fs.Bool("validate", true, "check totals against expected values")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		raw, err := ingest.LoadWorkbook(*input, cfg)
		must(err)
		records, err := census.BuildDataset(raw)
		must(err)
		if *validate {
			must(validateDataset(cfg, records))
		}

		if strings.TrimSpace(*csvOut) != "" {
			must(ingest.WriteDatasetCSV(records, *csvOut))
			fmt.Printf("dataset written rows=%d csv=%s\n", len(records), *csvOut)
		}
		if strings.TrimSpace(*dbOut) != "" {
			db, err := storage.Open(*dbOut)
			must(err)
			defer db.Close()
			must(db.SaveDataset(records))
			must(db.SetMetadata("source", *input))
			fmt.Printf("dataset stored rows=%d db=%s\n", len(records), *dbOut)
		}
	case "options":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dataset := fs.String("dataset", cfg.DatasetPath, "canonical dataset csv")
		_ = fs.Parse(os.Args[2:])
		records, err := loadDataset(*dataset)
		must(err)
		printJSON(census.Options(records))
	case "aggregate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dataset := fs.String("dataset", cfg.DatasetPath, "canonical dataset csv")
		sel := selectionFlags(fs)
		_ = fs.Parse(os.Args[2:])
		records, err := loadDataset(*dataset)
		must(err)
		printJSON(census.Aggregate(records, sel()))
	case "by-group":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dataset := fs.String("dataset", cfg.DatasetPath, "canonical dataset csv")
		sel := selectionFlags(fs)
		_ = fs.Parse(os.Args[2:])
		records, err := loadDataset(*dataset)
		must(err)
		printJSON(census.ByGroup(records, sel()))
	case "pivot":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dataset := fs.String("dataset", cfg.DatasetPath, "canonical dataset csv")
		sel := selectionFlags(fs)
		_ = fs.Parse(os.Args[2:])
		records, err := loadDataset(*dataset)
		must(err)
		printJSON(census.Pivot(records, sel()))
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dataset := fs.String("dataset", cfg.DatasetPath, "canonical dataset csv")
		out := fs.String("out", "", "output xlsx path")
		sel := selectionFlags(fs)
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		records, err := loadDataset(*dataset)
		must(err)
		must(report.WriteReport(records, sel(), *out))
		fmt.Printf("report written output=%s\n", *out)
	default:
		usage()
		os.Exit(1)
	}
}

// loadDataset reads the canonical dataset from a csv file or a sqlite
// snapshot, by extension.
func loadDataset(path string) ([]internal.CanonicalRecord, error) {
	if strings.HasSuffix(strings.ToLower(path), ".db") {
		db, err := storage.Open(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.LoadDataset()
	}
	return ingest.ReadDatasetCSV(path)
}

func validateDataset(cfg config.Config, records []internal.CanonicalRecord) error {
	total := 0
	departments := map[string]struct{}{}
	municipalities := map[string]struct{}{}
	for _, r := range records {
		total += r.Population
		departments[r.Department] = struct{}{}
		municipalities[r.MunicipalityKey] = struct{}{}
	}
	if cfg.ExpectedTotalPopulation > 0 && total != cfg.ExpectedTotalPopulation {
		return fmt.Errorf("total population %d does not match expected %d", total, cfg.ExpectedTotalPopulation)
	}
	if cfg.ExpectedDepartments > 0 && len(departments) != cfg.ExpectedDepartments {
		return fmt.Errorf("department count %d does not match expected %d", len(departments), cfg.ExpectedDepartments)
	}
	if cfg.ExpectedMunicipalities > 0 && len(municipalities) != cfg.ExpectedMunicipalities {
		return fmt.Errorf("municipality count %d does not match expected %d", len(municipalities), cfg.ExpectedMunicipalities)
	}
	return nil
}

// selectionFlags registers the shared selection flags and returns a closure
// that builds the Selection after the flag set is parsed.
func selectionFlags(fs *flag.FlagSet) func() internal.Selection {
	groups := fs.String("groups", "", "comma-separated group codes")
	municipalities := fs.String("municipalities", "", "comma-separated municipality keys (DEPT|MUNICIPALITY)")
	departments := fs.String("departments", "", "comma-separated department names")
	return func() internal.Selection {
		sel := internal.Selection{
			MunicipalityKeys: splitList(*municipalities),
			Departments:      splitList(*departments),
		}
		for _, part := range splitList(*groups) {
			code, err := strconv.Atoi(part)
			if err != nil {
				must(fmt.Errorf("invalid group code %q", part))
			}
			sel.GroupCodes = append(sel.GroupCodes, code)
		}
		return sel
	}
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	must(enc.Encode(v))
}

func usage() {
	fmt.Println("usage: cnpv <command>")
	fmt.Println("commands:")
	fmt.Println("  dataset:build --input=visor.xlsx [--csv=...] [--db=...] [--validate=false]")
	fmt.Println("  options [--dataset=...]")
	fmt.Println("  aggregate [--dataset=...] [--groups=570,571] [--departments=META] [--municipalities='META|Cumaribo']")
	fmt.Println("  by-group [--dataset=...] [filters]")
	fmt.Println("  pivot [--dataset=...] [filters]")
	fmt.Println("  export:xlsx --out=./out/report.xlsx [--dataset=...] [filters]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
