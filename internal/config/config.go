package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatasetPath string
	DBPath      string
	OutputDir   string

	BaseSheet    string
	CatalogSheet string

	// Consistency checks run after dataset:build when non-zero; the DANE
	// CNPV-2018 visor totals are the defaults. Set to 0 to skip a check.
	ExpectedTotalPopulation int
	ExpectedDepartments     int
	ExpectedMunicipalities  int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DatasetPath: getEnv("DATASET_PATH", filepath.Join(cwd, "data", "base_municipal_pueblo.csv")),
		DBPath:      getEnv("DB_PATH", filepath.Join(cwd, "data", "cnpv.db")),
		OutputDir:   getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		BaseSheet:    getEnv("BASE_SHEET", "3"),
		CatalogSheet: getEnv("CATALOG_SHEET", "1"),

		ExpectedTotalPopulation: getEnvInt("EXPECTED_TOTAL_POPULATION", 3811234),
		ExpectedDepartments:     getEnvInt("EXPECTED_DEPARTMENTS", 34),
		ExpectedMunicipalities:  getEnvInt("EXPECTED_MUNICIPALITIES", 970),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
