package export

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS classes (
	id        INTEGER PRIMARY KEY,
	name      TEXT NOT NULL,
	embedding BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS relations (
	id        INTEGER PRIMARY KEY,
	name      TEXT NOT NULL,
	embedding BLOB NOT NULL
);
`

// SQLite persists both tables into a sqlite database, one row per entity
// with the embedding stored as a little-endian float32 blob. Checkpoints
// upsert in a single transaction.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the embedding schema exists.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("export: open sqlite: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("export: create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Put(cls, rel [][]float32, clsNames, relNames []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("export: begin: %w", err)
	}
	if err := upsert(tx, "classes", cls, clsNames); err != nil {
		tx.Rollback()
		return err
	}
	if err := upsert(tx, "relations", rel, relNames); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export: commit: %w", err)
	}
	return nil
}

func upsert(tx *sql.Tx, table string, rows [][]float32, names []string) error {
	stmt, err := tx.Prepare(
		"INSERT OR REPLACE INTO " + table + " (id, name, embedding) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("export: prepare %s: %w", table, err)
	}
	defer stmt.Close()
	for i, name := range names {
		if _, err := stmt.Exec(i, name, encodeVector(rows[i])); err != nil {
			return fmt.Errorf("export: insert %s row %d: %w", table, i, err)
		}
	}
	return nil
}

// encodeVector packs a float32 vector as little-endian bytes.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

// DecodeVector unpacks a little-endian float32 blob written by the sqlite
// sink.
func DecodeVector(buf []byte) []float32 {
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return v
}
