package store

import (
	"context"
	"fmt"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/internal/workbook"
	"pigmento/models"
)

// StockEntries loads the stock worksheet into typed records.
func (r *Repository) StockEntries(ctx context.Context) ([]models.StockEntry, []workbook.RowWarning, error) {
	table, err := r.sheets.Load(ctx, workbook.SheetStock)
	if err != nil {
		return nil, nil, fmt.Errorf("load stock entries: %w", err)
	}
	entries, warnings := workbook.DecodeStockEntries(table)
	return entries, warnings, nil
}

func validateStockEntry(entry *models.StockEntry) error {
	entry.Kind = strings.ToLower(strings.TrimSpace(entry.Kind))
	if !models.ValidStockKind(entry.Kind) {
		return validationFailure(fmt.Sprintf("unknown stock entry kind %q", entry.Kind))
	}
	entry.PigmentID = strings.TrimSpace(entry.PigmentID)
	if entry.PigmentID == "" {
		return validationFailure("stock entry pigment must not be blank")
	}
	entry.Unit = strings.ToLower(strings.TrimSpace(entry.Unit))
	if entry.Unit == "" {
		entry.Unit = "g"
	}
	if entry.Unit != "g" && entry.Unit != "kg" {
		return validationFailure(fmt.Sprintf("unknown stock unit %q", entry.Unit))
	}
	return nil
}

// CreateStockEntry appends a stock movement row.
func (r *Repository) CreateStockEntry(ctx context.Context, entry models.StockEntry) error {
	if err := validateStockEntry(&entry); err != nil {
		return err
	}

	table, err := r.sheets.Load(ctx, workbook.SheetStock)
	if err != nil {
		return fmt.Errorf("load stock entries: %w", err)
	}
	entries, _ := workbook.DecodeStockEntries(table)
	entries = append(entries, entry)
	if err := r.sheets.Save(ctx, workbook.EncodeStockEntries(table, entries)); err != nil {
		return fmt.Errorf("save stock entries: %w", err)
	}
	applog.Debug(ctx, "stock entry created", "kind", entry.Kind, "pigment", entry.PigmentID)
	return nil
}

// UpdateStockEntry overwrites the entry at the given row position in full.
func (r *Repository) UpdateStockEntry(ctx context.Context, row int, entry models.StockEntry) error {
	if err := validateStockEntry(&entry); err != nil {
		return err
	}

	table, err := r.sheets.Load(ctx, workbook.SheetStock)
	if err != nil {
		return fmt.Errorf("load stock entries: %w", err)
	}
	entries, _ := workbook.DecodeStockEntries(table)
	if row < 0 || row >= len(entries) {
		return fmt.Errorf("update stock entry: %w", workbook.ErrRowOutOfRange)
	}
	entries[row] = entry
	if err := r.sheets.Save(ctx, workbook.EncodeStockEntries(table, entries)); err != nil {
		return fmt.Errorf("save stock entries: %w", err)
	}
	applog.Debug(ctx, "stock entry updated", "row", row, "pigment", entry.PigmentID)
	return nil
}

// DeleteStockEntry removes exactly the entry at the given row position.
func (r *Repository) DeleteStockEntry(ctx context.Context, row int) error {
	table, err := r.sheets.Load(ctx, workbook.SheetStock)
	if err != nil {
		return fmt.Errorf("load stock entries: %w", err)
	}
	entries, _ := workbook.DecodeStockEntries(table)
	if row < 0 || row >= len(entries) {
		return fmt.Errorf("delete stock entry: %w", workbook.ErrRowOutOfRange)
	}
	entries = append(entries[:row], entries[row+1:]...)
	if err := r.sheets.Save(ctx, workbook.EncodeStockEntries(table, entries)); err != nil {
		return fmt.Errorf("save stock entries: %w", err)
	}
	applog.Debug(ctx, "stock entry deleted", "row", row)
	return nil
}
