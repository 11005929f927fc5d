package workbook

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestXLSXStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workshop.xlsx")
	store := NewXLSXStore(path)

	// absent workbook yields an empty table
	table, err := store.Load(ctx, SheetCustomers)
	if err != nil {
		t.Fatalf("load before save: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("expected empty table, got %v", table.Rows)
	}

	table.Header = CustomerHeader
	table.Append([]string{"NORFIL", "Norfil Plastics", "weekly pickup"})
	table.Append([]string{"VELPAK", "Velpak Packaging", ""})
	if err := store.Save(ctx, table); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := store.Load(ctx, SheetCustomers)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(reloaded.Rows))
	}
	if reloaded.Cell(0, "code") != "NORFIL" || reloaded.Cell(1, "short_name") != "Velpak Packaging" {
		t.Fatalf("unexpected rows: %v", reloaded.Rows)
	}
	if reloaded.Revision != table.Revision+1 {
		t.Fatalf("revision = %d, want %d", reloaded.Revision, table.Revision+1)
	}
}

func TestXLSXStoreSaveRefusesStaleRevision(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workshop.xlsx")
	store := NewXLSXStore(path)

	first, err := store.Load(ctx, SheetPigments)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first.Header = PigmentHeader
	first.Append([]string{"118", "PR 101", "Iron Oxide Red", "pigment", "25 kg bag", ""})
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	// replaying the save with the pre-save revision must be refused
	if err := store.Save(ctx, first); !errors.Is(err, ErrStaleRevision) {
		t.Fatalf("stale save = %v, want ErrStaleRevision", err)
	}
}

func TestXLSXStoreRewriteShrinksSheet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workshop.xlsx")
	store := NewXLSXStore(path)

	table, err := store.Load(ctx, SheetCustomers)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	table.Header = CustomerHeader
	table.Append([]string{"NORFIL", "Norfil Plastics", ""})
	table.Append([]string{"VELPAK", "Velpak Packaging", ""})
	table.Append([]string{"ARTEX", "Artex Moulding", ""})
	if err := store.Save(ctx, table); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	current, err := store.Load(ctx, SheetCustomers)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := current.DeleteRow(1); err != nil {
		t.Fatalf("delete row: %v", err)
	}
	if err := store.Save(ctx, current); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	// the removed row must not linger in the rewritten sheet
	final, err := store.Load(ctx, SheetCustomers)
	if err != nil {
		t.Fatalf("final load: %v", err)
	}
	if len(final.Rows) != 2 {
		t.Fatalf("rows after rewrite = %d, want 2", len(final.Rows))
	}
	for _, row := range final.Rows {
		if row[0] == "VELPAK" {
			t.Fatal("deleted row survived the rewrite")
		}
	}
}
