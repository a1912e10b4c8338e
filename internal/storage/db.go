package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"cnpv/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS groups (
  code INTEGER PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  department TEXT NOT NULL,
  municipality TEXT NOT NULL,
  municipality_key TEXT NOT NULL,
  group_code INTEGER NOT NULL REFERENCES groups(code),
  population INTEGER NOT NULL,
  UNIQUE(municipality_key, group_code)
);
CREATE INDEX IF NOT EXISTS idx_records_department ON records(department);
CREATE INDEX IF NOT EXISTS idx_records_group ON records(group_code);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// SaveDataset replaces the stored canonical dataset with records. The write
// is transactional: a failed save leaves the previous snapshot intact.
func (d *DB) SaveDataset(records []internal.CanonicalRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM groups`); err != nil {
		return err
	}

	groupStmt, err := tx.Prepare(`
INSERT INTO groups (code, name) VALUES (?, ?)
ON CONFLICT(code) DO NOTHING
`)
	if err != nil {
		return err
	}
	defer groupStmt.Close()

	recordStmt, err := tx.Prepare(`
INSERT INTO records (department, municipality, municipality_key, group_code, population)
VALUES (?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer recordStmt.Close()

	for _, r := range records {
		if _, err := groupStmt.Exec(r.GroupCode, r.GroupName); err != nil {
			return err
		}
		if _, err := recordStmt.Exec(r.Department, r.CleanMunicipality, r.MunicipalityKey, r.GroupCode, r.Population); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadDataset reads the stored canonical dataset ordered by municipality
// key and group code.
func (d *DB) LoadDataset() ([]internal.CanonicalRecord, error) {
	rows, err := d.conn.Query(`
SELECT r.department, r.municipality, r.municipality_key, r.group_code, g.name, r.population
FROM records r
JOIN groups g ON g.code = r.group_code
ORDER BY r.municipality_key, r.group_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.CanonicalRecord
	for rows.Next() {
		var r internal.CanonicalRecord
		if err := rows.Scan(&r.Department, &r.CleanMunicipality, &r.MunicipalityKey, &r.GroupCode, &r.GroupName, &r.Population); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TotalPopulation sums population over the stored dataset.
func (d *DB) TotalPopulation() (int, error) {
	var total sql.NullInt64
	if err := d.conn.QueryRow(`SELECT SUM(population) FROM records`).Scan(&total); err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

// CountDepartments returns the number of distinct departments stored.
func (d *DB) CountDepartments() (int, error) {
	return d.countQuery(`SELECT COUNT(DISTINCT department) FROM records`)
}

// CountMunicipalities returns the number of distinct municipality keys
// stored.
func (d *DB) CountMunicipalities() (int, error) {
	return d.countQuery(`SELECT COUNT(DISTINCT municipality_key) FROM records`)
}

func (d *DB) countQuery(query string) (int, error) {
	var count int
	if err := d.conn.QueryRow(query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updatedAt=CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
