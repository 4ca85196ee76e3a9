// Package tabstore defines the tabular data store boundary the publisher
// writes report rows into, plus a SQLite-backed implementation. Destination
// tables are addressed by name; writes land at a spreadsheet-style start
// cell so a store backed by an actual sheet API satisfies the same
// interface.
package tabstore

import (
	"context"
	"errors"
	"strings"
)

// Table is an opaque handle to one destination table.
type Table struct {
	Name string
}

// Store is the tabular data store boundary.
type Store interface {
	// GetOrCreateTable returns a handle to the named table, creating it if
	// absent.
	GetOrCreateTable(ctx context.Context, name string) (Table, error)

	// Clear removes all existing content from the table.
	Clear(ctx context.Context, table Table) error

	// Write writes rows starting at startCell (e.g. "A1"), header row
	// included.
	Write(ctx context.Context, table Table, rows [][]string, startCell string) error

	// Upsert merges rows into the table by the named key columns: a row
	// whose key matches an existing row replaces it in place, new keys
	// append after existing content. When no key column appears in the
	// incoming header, or the existing header differs from it, the merge
	// degrades to a full replace. Returns the row count of the final
	// dataset. The sync publisher performs full replaces instead: the
	// upstream export revises historical rows, so the new file is
	// authoritative.
	Upsert(ctx context.Context, table Table, rows [][]string, keyColumns []string) (int, error)

	// Close releases the underlying connection.
	Close() error
}

// ErrBadStartCell indicates a start cell reference that is not in the
// "A1" letter-then-digits form.
var ErrBadStartCell = errors.New("malformed start cell reference")

// parseStartCell converts an "A1"-style reference into zero-based row and
// column offsets.
func parseStartCell(ref string) (row, col int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A') + 1
		i++
	}

	if i == 0 || i == len(ref) {
		return 0, 0, ErrBadStartCell
	}

	rowNum := 0
	for ; i < len(ref); i++ {
		if ref[i] < '0' || ref[i] > '9' {
			return 0, 0, ErrBadStartCell
		}

		rowNum = rowNum*10 + int(ref[i]-'0')
	}

	if rowNum == 0 {
		return 0, 0, ErrBadStartCell
	}

	return rowNum - 1, col - 1, nil
}

// keyIndices resolves key column names against a header row. Names absent
// from the header are dropped.
func keyIndices(header, keyColumns []string) []int {
	var indices []int

	for _, name := range keyColumns {
		for i, col := range header {
			if col == name {
				indices = append(indices, i)

				break
			}
		}
	}

	return indices
}

// mergeByKey folds incoming data rows into the existing dataset. Both
// slices carry the same header at index 0; existing row order is
// preserved, appended keys keep incoming order.
func mergeByKey(existing, incoming [][]string, keyIdx []int) [][]string {
	merged := make([][]string, len(existing))
	copy(merged, existing)

	position := make(map[string]int, len(existing))
	for i := 1; i < len(existing); i++ {
		position[rowKey(existing[i], keyIdx)] = i
	}

	for _, row := range incoming[1:] {
		key := rowKey(row, keyIdx)

		if at, ok := position[key]; ok {
			merged[at] = row

			continue
		}

		position[key] = len(merged)
		merged = append(merged, row)
	}

	return merged
}

// rowKey joins the key cells with a separator that cannot occur in
// tab-delimited report values.
func rowKey(row []string, keyIdx []int) string {
	parts := make([]string, len(keyIdx))

	for i, idx := range keyIdx {
		if idx < len(row) {
			parts[i] = row[idx]
		}
	}

	return strings.Join(parts, "\x1f")
}
