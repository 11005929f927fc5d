package store

import (
	"context"
	"fmt"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/internal/workbook"
	"pigmento/models"
)

// Pigments loads the pigment worksheet into typed records.
func (r *Repository) Pigments(ctx context.Context) ([]models.Pigment, []workbook.RowWarning, error) {
	table, err := r.sheets.Load(ctx, workbook.SheetPigments)
	if err != nil {
		return nil, nil, fmt.Errorf("load pigments: %w", err)
	}
	pigments, warnings := workbook.DecodePigments(table)
	return pigments, warnings, nil
}

func validatePigment(pigment *models.Pigment) error {
	pigment.Code = strings.TrimSpace(pigment.Code)
	if pigment.Code == "" {
		return validationFailure("pigment code must not be blank")
	}
	if strings.TrimSpace(pigment.Category) != "" && !models.ValidPigmentCategory(pigment.Category) {
		return validationFailure(fmt.Sprintf("unknown pigment category %q", pigment.Category))
	}
	pigment.Category = models.NormalizePigmentCategory(pigment.Category)
	return nil
}

// CreatePigment appends a pigment row, refusing blank or duplicate codes.
func (r *Repository) CreatePigment(ctx context.Context, pigment models.Pigment) error {
	if err := validatePigment(&pigment); err != nil {
		return err
	}

	table, err := r.sheets.Load(ctx, workbook.SheetPigments)
	if err != nil {
		return fmt.Errorf("load pigments: %w", err)
	}
	pigments, _ := workbook.DecodePigments(table)
	for _, existing := range pigments {
		if strings.TrimSpace(existing.Code) == pigment.Code {
			return validationFailure(fmt.Sprintf("pigment code %q already exists", pigment.Code))
		}
	}

	pigments = append(pigments, pigment)
	if err := r.sheets.Save(ctx, workbook.EncodePigments(table, pigments)); err != nil {
		return fmt.Errorf("save pigments: %w", err)
	}
	applog.Debug(ctx, "pigment created", "code", pigment.Code)
	return nil
}

// UpdatePigment overwrites the pigment at the given row position in full.
func (r *Repository) UpdatePigment(ctx context.Context, row int, pigment models.Pigment) error {
	if err := validatePigment(&pigment); err != nil {
		return err
	}

	table, err := r.sheets.Load(ctx, workbook.SheetPigments)
	if err != nil {
		return fmt.Errorf("load pigments: %w", err)
	}
	pigments, _ := workbook.DecodePigments(table)
	if row < 0 || row >= len(pigments) {
		return fmt.Errorf("update pigment: %w", workbook.ErrRowOutOfRange)
	}
	for i, existing := range pigments {
		if i != row && strings.TrimSpace(existing.Code) == pigment.Code {
			return validationFailure(fmt.Sprintf("pigment code %q already exists", pigment.Code))
		}
	}

	pigments[row] = pigment
	if err := r.sheets.Save(ctx, workbook.EncodePigments(table, pigments)); err != nil {
		return fmt.Errorf("save pigments: %w", err)
	}
	applog.Debug(ctx, "pigment updated", "row", row, "code", pigment.Code)
	return nil
}

// DeletePigment removes exactly the pigment at the given row position.
// Recipes referencing the pigment are left untouched.
func (r *Repository) DeletePigment(ctx context.Context, row int) error {
	table, err := r.sheets.Load(ctx, workbook.SheetPigments)
	if err != nil {
		return fmt.Errorf("load pigments: %w", err)
	}
	pigments, _ := workbook.DecodePigments(table)
	if row < 0 || row >= len(pigments) {
		return fmt.Errorf("delete pigment: %w", workbook.ErrRowOutOfRange)
	}
	pigments = append(pigments[:row], pigments[row+1:]...)
	if err := r.sheets.Save(ctx, workbook.EncodePigments(table, pigments)); err != nil {
		return fmt.Errorf("save pigments: %w", err)
	}
	applog.Debug(ctx, "pigment deleted", "row", row)
	return nil
}
