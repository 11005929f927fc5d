package workbook

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Canonical worksheet names, one per entity table.
const (
	SheetCustomers = "customers"
	SheetPigments  = "pigments"
	SheetRecipes   = "recipes"
	SheetOrders    = "production_orders"
	SheetStock     = "stock_entries"
	SheetPantone   = "pantone_mappings"
)

var (
	// ErrSheetUnavailable signals a connectivity failure to the backing
	// workbook. Operations are aborted without retry.
	ErrSheetUnavailable = errors.New("workbook: sheet unavailable")

	// ErrStaleRevision signals that the worksheet changed since the table
	// was loaded and the rewrite was refused.
	ErrStaleRevision = errors.New("workbook: stale table revision")

	// ErrReadOnly signals a write against a read-only store.
	ErrReadOnly = errors.New("workbook: store is read-only")

	// ErrRowOutOfRange signals a row index outside the table bounds.
	ErrRowOutOfRange = errors.New("workbook: row index out of range")
)

// Table is one worksheet loaded into memory: a header row followed by data
// rows of strings. Revision identifies the worksheet state the table was
// loaded from and guards the whole-table rewrite on save.
type Table struct {
	Sheet    string
	Header   []string
	Rows     [][]string
	Revision uint64
}

// NewTable builds an empty table for the named sheet with the given header.
func NewTable(sheet string, header []string) Table {
	return Table{Sheet: sheet, Header: append([]string(nil), header...)}
}

// ColumnIndex returns the position of the named column, or -1 when absent.
// Column names are matched case-insensitively after trimming.
func (t Table) ColumnIndex(name string) int {
	target := strings.ToLower(strings.TrimSpace(name))
	for i, column := range t.Header {
		if strings.ToLower(strings.TrimSpace(column)) == target {
			return i
		}
	}
	return -1
}

// Cell returns the value at the given row for the named column. Missing
// rows, columns, or short rows yield the empty string.
func (t Table) Cell(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	idx := t.ColumnIndex(column)
	if idx < 0 || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// Append adds a data row to the end of the table.
func (t *Table) Append(row []string) {
	t.Rows = append(t.Rows, row)
}

// ReplaceRow overwrites the row at the given position in full.
func (t *Table) ReplaceRow(index int, row []string) error {
	if index < 0 || index >= len(t.Rows) {
		return fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, index, len(t.Rows))
	}
	t.Rows[index] = row
	return nil
}

// DeleteRow removes exactly the row at the given position; the remaining
// rows stay contiguous.
func (t *Table) DeleteRow(index int) error {
	if index < 0 || index >= len(t.Rows) {
		return fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, index, len(t.Rows))
	}
	t.Rows = append(t.Rows[:index], t.Rows[index+1:]...)
	return nil
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	clone := Table{Sheet: t.Sheet, Revision: t.Revision}
	clone.Header = append([]string(nil), t.Header...)
	clone.Rows = make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		clone.Rows = append(clone.Rows, append([]string(nil), row...))
	}
	return clone
}

// Store reads and writes whole worksheets. Save replaces the entire sheet
// contents and fails with ErrStaleRevision when the sheet moved past the
// table's loaded revision.
type Store interface {
	Load(ctx context.Context, sheet string) (Table, error)
	Save(ctx context.Context, table Table) error
}
