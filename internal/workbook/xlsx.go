package workbook

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	applog "pigmento/internal/log"
)

// XLSXStore persists worksheets in a local .xlsx workbook via excelize. The
// workbook is reopened on every operation; the tool assumes a single actor
// at a time.
type XLSXStore struct {
	path string

	mu        sync.Mutex
	revisions map[string]uint64
}

// NewXLSXStore builds a store over the workbook at path. The file is created
// on the first save if it does not exist yet.
func NewXLSXStore(path string) *XLSXStore {
	return &XLSXStore{path: path, revisions: make(map[string]uint64)}
}

// Load reads the named worksheet into a Table. A missing workbook or
// worksheet yields an empty table so callers can create it on first save.
func (s *XLSXStore) Load(ctx context.Context, sheet string) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := Table{Sheet: sheet, Revision: s.revisions[sheet]}

	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			applog.Debug(ctx, "workbook file absent, returning empty table", "path", s.path, "sheet", sheet)
			return table, nil
		}
		return Table{}, fmt.Errorf("%w: stat %s: %v", ErrSheetUnavailable, s.path, err)
	}

	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return Table{}, fmt.Errorf("%w: open %s: %v", ErrSheetUnavailable, s.path, err)
	}
	defer file.Close()

	if idx, err := file.GetSheetIndex(sheet); err != nil || idx < 0 {
		applog.Debug(ctx, "worksheet absent, returning empty table", "sheet", sheet)
		return table, nil
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("%w: read sheet %s: %v", ErrSheetUnavailable, sheet, err)
	}
	if len(rows) == 0 {
		return table, nil
	}

	table.Header = rows[0]
	table.Rows = rows[1:]
	return table, nil
}

// Save rewrites the entire worksheet from the table: the sheet is cleared
// and rebuilt from the header and data rows. The rewrite is refused when the
// sheet revision moved past the table's loaded revision.
func (s *XLSXStore) Save(ctx context.Context, table Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current := s.revisions[table.Sheet]; current != table.Revision {
		return fmt.Errorf("%w: sheet %s at %d, table loaded at %d", ErrStaleRevision, table.Sheet, current, table.Revision)
	}

	file, err := s.openOrCreate()
	if err != nil {
		return err
	}
	defer file.Close()

	// Drop and recreate the sheet for clear-plus-rewrite semantics.
	if idx, err := file.GetSheetIndex(table.Sheet); err == nil && idx >= 0 {
		if err := file.DeleteSheet(table.Sheet); err != nil {
			return fmt.Errorf("%w: clear sheet %s: %v", ErrSheetUnavailable, table.Sheet, err)
		}
	}
	if _, err := file.NewSheet(table.Sheet); err != nil {
		return fmt.Errorf("%w: create sheet %s: %v", ErrSheetUnavailable, table.Sheet, err)
	}

	if err := writeRow(file, table.Sheet, 1, table.Header); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := writeRow(file, table.Sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := file.SaveAs(s.path); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrSheetUnavailable, s.path, err)
	}

	s.revisions[table.Sheet] = table.Revision + 1
	applog.Debug(ctx, "worksheet rewritten", "sheet", table.Sheet, "rows", len(table.Rows), "revision", s.revisions[table.Sheet])
	return nil
}

func (s *XLSXStore) openOrCreate() (*excelize.File, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return excelize.NewFile(), nil
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrSheetUnavailable, s.path, err)
	}
	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSheetUnavailable, s.path, err)
	}
	return file, nil
}

func writeRow(file *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("%w: row %d: %v", ErrSheetUnavailable, row, err)
	}
	cells := make([]any, len(values))
	for i, value := range values {
		cells[i] = value
	}
	if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("%w: write row %d: %v", ErrSheetUnavailable, row, err)
	}
	return nil
}
