package store

import (
	"context"
	"fmt"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/internal/workbook"
	"pigmento/models"
)

// PantoneMappings loads the Pantone worksheet into typed records.
func (r *Repository) PantoneMappings(ctx context.Context) ([]models.PantoneMapping, []workbook.RowWarning, error) {
	table, err := r.sheets.Load(ctx, workbook.SheetPantone)
	if err != nil {
		return nil, nil, fmt.Errorf("load pantone mappings: %w", err)
	}
	mappings, warnings := workbook.DecodePantoneMappings(table)
	return mappings, warnings, nil
}

func validatePantoneMapping(mapping *models.PantoneMapping) error {
	mapping.Pantone = strings.TrimSpace(mapping.Pantone)
	if mapping.Pantone == "" {
		return validationFailure("pantone code must not be blank")
	}
	mapping.RecipeCode = strings.TrimSpace(mapping.RecipeCode)
	return nil
}

// CreatePantoneMapping appends a mapping row. The same Pantone code may map
// to several recipes, but an exact duplicate pair is refused.
func (r *Repository) CreatePantoneMapping(ctx context.Context, mapping models.PantoneMapping) error {
	if err := validatePantoneMapping(&mapping); err != nil {
		return err
	}

	table, err := r.sheets.Load(ctx, workbook.SheetPantone)
	if err != nil {
		return fmt.Errorf("load pantone mappings: %w", err)
	}
	mappings, _ := workbook.DecodePantoneMappings(table)
	for _, existing := range mappings {
		if strings.EqualFold(strings.TrimSpace(existing.Pantone), mapping.Pantone) &&
			strings.TrimSpace(existing.RecipeCode) == mapping.RecipeCode {
			return validationFailure(fmt.Sprintf("mapping %s -> %s already exists", mapping.Pantone, mapping.RecipeCode))
		}
	}

	mappings = append(mappings, mapping)
	if err := r.sheets.Save(ctx, workbook.EncodePantoneMappings(table, mappings)); err != nil {
		return fmt.Errorf("save pantone mappings: %w", err)
	}
	applog.Debug(ctx, "pantone mapping created", "pantone", mapping.Pantone, "recipe", mapping.RecipeCode)
	return nil
}

// UpdatePantoneMapping overwrites the mapping at the given row position.
func (r *Repository) UpdatePantoneMapping(ctx context.Context, row int, mapping models.PantoneMapping) error {
	if err := validatePantoneMapping(&mapping); err != nil {
		return err
	}

	table, err := r.sheets.Load(ctx, workbook.SheetPantone)
	if err != nil {
		return fmt.Errorf("load pantone mappings: %w", err)
	}
	mappings, _ := workbook.DecodePantoneMappings(table)
	if row < 0 || row >= len(mappings) {
		return fmt.Errorf("update pantone mapping: %w", workbook.ErrRowOutOfRange)
	}
	mappings[row] = mapping
	if err := r.sheets.Save(ctx, workbook.EncodePantoneMappings(table, mappings)); err != nil {
		return fmt.Errorf("save pantone mappings: %w", err)
	}
	applog.Debug(ctx, "pantone mapping updated", "row", row, "pantone", mapping.Pantone)
	return nil
}

// DeletePantoneMapping removes exactly the mapping at the given row.
func (r *Repository) DeletePantoneMapping(ctx context.Context, row int) error {
	table, err := r.sheets.Load(ctx, workbook.SheetPantone)
	if err != nil {
		return fmt.Errorf("load pantone mappings: %w", err)
	}
	mappings, _ := workbook.DecodePantoneMappings(table)
	if row < 0 || row >= len(mappings) {
		return fmt.Errorf("delete pantone mapping: %w", workbook.ErrRowOutOfRange)
	}
	mappings = append(mappings[:row], mappings[row+1:]...)
	if err := r.sheets.Save(ctx, workbook.EncodePantoneMappings(table, mappings)); err != nil {
		return fmt.Errorf("save pantone mappings: %w", err)
	}
	applog.Debug(ctx, "pantone mapping deleted", "row", row)
	return nil
}
