package store

import (
	"context"
	"fmt"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/internal/workbook"
	"pigmento/models"
)

// Recipes loads the recipe worksheet into typed records.
func (r *Repository) Recipes(ctx context.Context) ([]models.Recipe, []workbook.RowWarning, error) {
	table, err := r.sheets.Load(ctx, workbook.SheetRecipes)
	if err != nil {
		return nil, nil, fmt.Errorf("load recipes: %w", err)
	}
	recipes, warnings := workbook.DecodeRecipes(table)
	return recipes, warnings, nil
}

// validateRecipe normalizes the record and checks everything that can be
// verified without other worksheets. Component pigment existence is checked
// separately against the pigment table.
func validateRecipe(recipe *models.Recipe) error {
	recipe.Code = strings.TrimSpace(recipe.Code)
	if recipe.Code == "" {
		return validationFailure("recipe code must not be blank")
	}
	recipe.Category = strings.ToLower(strings.TrimSpace(recipe.Category))
	if recipe.Category == "" {
		recipe.Category = models.RecipeCategoryOriginal
	}
	if !models.ValidRecipeCategory(recipe.Category) {
		return validationFailure(fmt.Sprintf("unknown recipe category %q", recipe.Category))
	}
	recipe.Status = strings.ToLower(strings.TrimSpace(recipe.Status))
	if recipe.Status == "" {
		recipe.Status = models.RecipeStatusActive
	}
	if !models.ValidRecipeStatus(recipe.Status) {
		return validationFailure(fmt.Sprintf("unknown recipe status %q", recipe.Status))
	}
	recipe.Parent = strings.TrimSpace(recipe.Parent)
	if recipe.IsAdditional() && recipe.Parent == "" {
		return validationFailure("additional recipe must reference a parent recipe")
	}
	return nil
}

// missingPigments returns every nonblank component pigment code absent from
// the pigment catalog, in slot order.
func missingPigments(recipe models.Recipe, pigments []models.Pigment) []string {
	known := make(map[string]bool, len(pigments))
	for _, pigment := range pigments {
		known[strings.TrimSpace(pigment.Code)] = true
	}
	missing := make([]string, 0)
	seen := make(map[string]bool)
	for _, component := range recipe.Components {
		code := strings.TrimSpace(component.PigmentID)
		if code == "" || known[code] || seen[code] {
			continue
		}
		seen[code] = true
		missing = append(missing, code)
	}
	return missing
}

func (r *Repository) checkRecipeReferences(ctx context.Context, recipe models.Recipe, recipes []models.Recipe, selfRow int) error {
	pigments, _, err := r.Pigments(ctx)
	if err != nil {
		return err
	}
	if missing := missingPigments(recipe, pigments); len(missing) > 0 {
		return validationFailure(fmt.Sprintf("unknown pigment codes: %s", strings.Join(missing, ", ")))
	}

	if recipe.IsAdditional() {
		parent := models.NormalizeRecipeCode(recipe.Parent)
		found := false
		for _, existing := range recipes {
			if existing.IsAdditional() {
				continue
			}
			if models.NormalizeRecipeCode(existing.Code) == parent {
				found = true
				break
			}
		}
		if !found {
			return validationFailure(fmt.Sprintf("parent recipe %q does not exist", recipe.Parent))
		}
		return nil
	}

	// Original recipe codes are unique after leading-zero normalization.
	normalized := models.NormalizeRecipeCode(recipe.Code)
	for i, existing := range recipes {
		if i == selfRow || existing.IsAdditional() {
			continue
		}
		if models.NormalizeRecipeCode(existing.Code) == normalized {
			return validationFailure(fmt.Sprintf("recipe code %q already exists", recipe.Code))
		}
	}
	return nil
}

// CreateRecipe appends a recipe row. The save is rejected when the code is
// blank or duplicated, when an additional recipe lacks an existing parent,
// or when any nonblank component pigment is missing from the catalog; the
// full list of missing codes is reported.
func (r *Repository) CreateRecipe(ctx context.Context, recipe models.Recipe) error {
	if err := validateRecipe(&recipe); err != nil {
		return err
	}

	table, err := r.sheets.Load(ctx, workbook.SheetRecipes)
	if err != nil {
		return fmt.Errorf("load recipes: %w", err)
	}
	recipes, _ := workbook.DecodeRecipes(table)
	if err := r.checkRecipeReferences(ctx, recipe, recipes, -1); err != nil {
		return err
	}

	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = nowFunc().UTC()
	}
	recipes = append(recipes, recipe)
	if err := r.sheets.Save(ctx, workbook.EncodeRecipes(table, recipes)); err != nil {
		return fmt.Errorf("save recipes: %w", err)
	}
	applog.Debug(ctx, "recipe created", "code", recipe.Code, "category", recipe.Category)
	return nil
}

// UpdateRecipe overwrites the recipe at the given row position in full,
// applying the same validation as creation.
func (r *Repository) UpdateRecipe(ctx context.Context, row int, recipe models.Recipe) error {
	if err := validateRecipe(&recipe); err != nil {
		return err
	}

	table, err := r.sheets.Load(ctx, workbook.SheetRecipes)
	if err != nil {
		return fmt.Errorf("load recipes: %w", err)
	}
	recipes, _ := workbook.DecodeRecipes(table)
	if row < 0 || row >= len(recipes) {
		return fmt.Errorf("update recipe: %w", workbook.ErrRowOutOfRange)
	}
	if err := r.checkRecipeReferences(ctx, recipe, recipes, row); err != nil {
		return err
	}

	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = recipes[row].CreatedAt
	}
	recipes[row] = recipe
	if err := r.sheets.Save(ctx, workbook.EncodeRecipes(table, recipes)); err != nil {
		return fmt.Errorf("save recipes: %w", err)
	}
	applog.Debug(ctx, "recipe updated", "row", row, "code", recipe.Code)
	return nil
}

// DeleteRecipe removes exactly the recipe at the given row position.
// Dependent orders and overlays are left untouched.
func (r *Repository) DeleteRecipe(ctx context.Context, row int) error {
	table, err := r.sheets.Load(ctx, workbook.SheetRecipes)
	if err != nil {
		return fmt.Errorf("load recipes: %w", err)
	}
	recipes, _ := workbook.DecodeRecipes(table)
	if row < 0 || row >= len(recipes) {
		return fmt.Errorf("delete recipe: %w", workbook.ErrRowOutOfRange)
	}
	recipes = append(recipes[:row], recipes[row+1:]...)
	if err := r.sheets.Save(ctx, workbook.EncodeRecipes(table, recipes)); err != nil {
		return fmt.Errorf("save recipes: %w", err)
	}
	applog.Debug(ctx, "recipe deleted", "row", row)
	return nil
}
