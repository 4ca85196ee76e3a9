package tabstore

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	_ "modernc.org/sqlite" // sqlite driver
)

// schema holds every destination table as (table, row, column, value)
// tuples, so table creation never depends on report column layouts.
const schema = `
CREATE TABLE IF NOT EXISTS tables (
	name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS cells (
	table_name TEXT NOT NULL,
	row_idx    INTEGER NOT NULL,
	col_idx    INTEGER NOT NULL,
	value      TEXT NOT NULL,
	PRIMARY KEY (table_name, row_idx, col_idx)
);
`

// SQLiteStore is a Store backed by a local SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (and initializes) the store database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("init store schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// GetOrCreateTable registers the named table if it does not exist yet.
func (s *SQLiteStore) GetOrCreateTable(ctx context.Context, name string) (Table, error) {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO tables (name) VALUES (?)`, name)
	if err != nil {
		return Table{}, fmt.Errorf("create table %q: %w", name, err)
	}

	return Table{Name: name}, nil
}

// Clear removes all cells of the table.
func (s *SQLiteStore) Clear(ctx context.Context, table Table) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cells WHERE table_name = ?`, table.Name)
	if err != nil {
		return fmt.Errorf("clear table %q: %w", table.Name, err)
	}

	return nil
}

// Write inserts rows at the given start cell inside one transaction.
func (s *SQLiteStore) Write(ctx context.Context, table Table, rows [][]string, startCell string) error {
	rowOff, colOff, err := parseStartCell(startCell)
	if err != nil {
		return fmt.Errorf("start cell %q: %w", startCell, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO cells (table_name, row_idx, col_idx, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()

		return fmt.Errorf("prepare write: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		for j, value := range row {
			if _, err := stmt.ExecContext(ctx, table.Name, rowOff+i, colOff+j, value); err != nil {
				tx.Rollback()

				return fmt.Errorf("write cell: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write: %w", err)
	}

	return nil
}

// Upsert merges rows into the table by key columns, degrading to a full
// replace when no key column resolves against the incoming header or the
// stored header differs from it.
func (s *SQLiteStore) Upsert(ctx context.Context, table Table, rows [][]string, keyColumns []string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	header := rows[0]
	keyIdx := keyIndices(header, keyColumns)

	existing, err := s.ReadAll(ctx, table)
	if err != nil {
		return 0, err
	}

	merged := rows
	if len(keyIdx) > 0 && len(existing) > 0 && slices.Equal(existing[0], header) {
		merged = mergeByKey(existing, rows, keyIdx)
	}

	if err := s.Clear(ctx, table); err != nil {
		return 0, err
	}

	if err := s.Write(ctx, table, merged, "A1"); err != nil {
		return 0, err
	}

	return len(merged), nil
}

// ReadAll returns the table contents in row/column order. Used by callers
// that inspect what a publish run produced.
func (s *SQLiteStore) ReadAll(ctx context.Context, table Table) ([][]string, error) {
	result, err := s.db.QueryContext(ctx,
		`SELECT row_idx, col_idx, value FROM cells WHERE table_name = ? ORDER BY row_idx, col_idx`,
		table.Name)
	if err != nil {
		return nil, fmt.Errorf("read table %q: %w", table.Name, err)
	}
	defer result.Close()

	var rows [][]string

	for result.Next() {
		var rowIdx, colIdx int

		var value string

		if err := result.Scan(&rowIdx, &colIdx, &value); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}

		for len(rows) <= rowIdx {
			rows = append(rows, nil)
		}

		for len(rows[rowIdx]) <= colIdx {
			rows[rowIdx] = append(rows[rowIdx], "")
		}

		rows[rowIdx][colIdx] = value
	}

	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read table %q: %w", table.Name, err)
	}

	return rows, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
