package workbook

import (
	"context"
	"errors"
	"testing"
)

func customerFixture() Table {
	table := NewTable(SheetCustomers, CustomerHeader)
	table.Append([]string{"NORFIL", "Norfil Plastics", ""})
	table.Append([]string{"VELPAK", "Velpak Packaging", "pallet deliveries"})
	table.Append([]string{"ARTEX", "Artex Moulding", ""})
	return table
}

func TestColumnIndexIgnoresCaseAndPadding(t *testing.T) {
	t.Parallel()

	table := Table{Header: []string{"Code", " Short_Name ", "notes"}}

	cases := []struct {
		name string
		want int
	}{
		{"code", 0},
		{"CODE", 0},
		{"short_name", 1},
		{"  notes  ", 2},
		{"missing", -1},
	}
	for _, tc := range cases {
		if got := table.ColumnIndex(tc.name); got != tc.want {
			t.Errorf("ColumnIndex(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestCellToleratesShortAndMissingRows(t *testing.T) {
	t.Parallel()

	table := NewTable(SheetCustomers, CustomerHeader)
	table.Append([]string{"NORFIL"})

	if got := table.Cell(0, "code"); got != "NORFIL" {
		t.Fatalf("Cell(0, code) = %q", got)
	}
	if got := table.Cell(0, "notes"); got != "" {
		t.Fatalf("short row should yield empty cell, got %q", got)
	}
	if got := table.Cell(5, "code"); got != "" {
		t.Fatalf("missing row should yield empty cell, got %q", got)
	}
	if got := table.Cell(0, "nope"); got != "" {
		t.Fatalf("missing column should yield empty cell, got %q", got)
	}
}

func TestDeleteRowKeepsRemainingRowsContiguous(t *testing.T) {
	t.Parallel()

	table := customerFixture()
	if err := table.DeleteRow(1); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("rows after delete = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "NORFIL" || table.Rows[1][0] != "ARTEX" {
		t.Fatalf("unexpected row order after delete: %v", table.Rows)
	}

	if err := table.DeleteRow(7); !errors.Is(err, ErrRowOutOfRange) {
		t.Fatalf("out-of-range delete = %v, want ErrRowOutOfRange", err)
	}
}

func TestReplaceRowBoundsChecked(t *testing.T) {
	t.Parallel()

	table := customerFixture()
	if err := table.ReplaceRow(0, []string{"NORFIL", "Norfil Plastics AB", ""}); err != nil {
		t.Fatalf("ReplaceRow: %v", err)
	}
	if table.Rows[0][1] != "Norfil Plastics AB" {
		t.Fatalf("row not replaced: %v", table.Rows[0])
	}

	if err := table.ReplaceRow(-1, nil); !errors.Is(err, ErrRowOutOfRange) {
		t.Fatalf("negative index = %v, want ErrRowOutOfRange", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	table := customerFixture()
	table.Revision = 3

	clone := table.Clone()
	clone.Rows[0][0] = "CHANGED"
	clone.Header[0] = "changed"

	if table.Rows[0][0] != "NORFIL" {
		t.Fatal("mutating the clone leaked into the original rows")
	}
	if table.Header[0] != "code" {
		t.Fatal("mutating the clone leaked into the original header")
	}
	if clone.Revision != 3 {
		t.Fatalf("clone revision = %d, want 3", clone.Revision)
	}
}

func TestMemoryStoreLoadAbsentSheet(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	table, err := store.Load(context.Background(), SheetPigments)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Sheet != SheetPigments || len(table.Rows) != 0 {
		t.Fatalf("expected empty table for absent sheet, got %+v", table)
	}
}

func TestMemoryStoreSaveEnforcesRevision(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	store.Seed(customerFixture())

	first, err := store.Load(ctx, SheetCustomers)
	if err != nil {
		t.Fatalf("load first: %v", err)
	}
	second, err := store.Load(ctx, SheetCustomers)
	if err != nil {
		t.Fatalf("load second: %v", err)
	}

	first.Append([]string{"NEWCO", "New Works", ""})
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// the second copy still carries the old revision
	second.Append([]string{"OTHER", "Other Works", ""})
	if err := store.Save(ctx, second); !errors.Is(err, ErrStaleRevision) {
		t.Fatalf("stale save = %v, want ErrStaleRevision", err)
	}

	reloaded, err := store.Load(ctx, SheetCustomers)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Rows) != 4 {
		t.Fatalf("rows after refused save = %d, want 4", len(reloaded.Rows))
	}
	if reloaded.Revision != first.Revision+1 {
		t.Fatalf("revision = %d, want %d", reloaded.Revision, first.Revision+1)
	}
}

func TestMemoryStoreLoadReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	store.Seed(customerFixture())

	loaded, err := store.Load(ctx, SheetCustomers)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	loaded.Rows[0][0] = "MUTATED"

	fresh, err := store.Load(ctx, SheetCustomers)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.Rows[0][0] != "NORFIL" {
		t.Fatal("mutating a loaded table leaked into the store")
	}
}
