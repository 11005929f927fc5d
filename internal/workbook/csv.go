package workbook

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	applog "pigmento/internal/log"
)

// CSVCache reads worksheets from local CSV snapshots, one file per sheet.
// It is a read-only fallback source used when the primary backend is
// unreachable; writes are refused.
type CSVCache struct {
	dir string
}

// NewCSVCache builds a cache over <dir>/<sheet>.csv files.
func NewCSVCache(dir string) *CSVCache {
	return &CSVCache{dir: dir}
}

// Load reads the cached CSV snapshot for the named sheet.
func (c *CSVCache) Load(ctx context.Context, sheet string) (Table, error) {
	path := filepath.Join(c.dir, sheet+".csv")
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("%w: open cache %s: %v", ErrSheetUnavailable, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: read cache %s: %v", ErrSheetUnavailable, path, err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("%w: cache %s is empty", ErrSheetUnavailable, path)
	}

	return Table{Sheet: sheet, Header: rows[0], Rows: rows[1:]}, nil
}

// Save refuses writes; the cache is a read-only source.
func (c *CSVCache) Save(ctx context.Context, table Table) error {
	return fmt.Errorf("%w: csv cache for sheet %s", ErrReadOnly, table.Sheet)
}

// FallbackStore serves reads from the primary store and falls back to the
// cache for selected sheets when the primary is unreachable. Writes always
// go to the primary.
type FallbackStore struct {
	primary Store
	cache   Store
	sheets  map[string]bool
}

// NewFallbackStore wraps primary with a read-only cache fallback for the
// named sheets.
func NewFallbackStore(primary, cache Store, sheets ...string) *FallbackStore {
	allowed := make(map[string]bool, len(sheets))
	for _, sheet := range sheets {
		allowed[sheet] = true
	}
	return &FallbackStore{primary: primary, cache: cache, sheets: allowed}
}

// Load reads from the primary store, consulting the cache only when the
// primary reports a connectivity failure for a fallback-enabled sheet.
func (f *FallbackStore) Load(ctx context.Context, sheet string) (Table, error) {
	table, err := f.primary.Load(ctx, sheet)
	if err == nil {
		return table, nil
	}
	if !errors.Is(err, ErrSheetUnavailable) || f.cache == nil || !f.sheets[sheet] {
		return Table{}, err
	}
	applog.Error(ctx, "primary worksheet unreachable, serving csv cache", "sheet", sheet, "error", err)
	cached, cacheErr := f.cache.Load(ctx, sheet)
	if cacheErr != nil {
		return Table{}, err
	}
	return cached, nil
}

// Save writes through to the primary store.
func (f *FallbackStore) Save(ctx context.Context, table Table) error {
	return f.primary.Save(ctx, table)
}
