package pages

import (
	"sort"
	"strings"

	"pigmento/internal/workbook"
	"pigmento/models"
)

// WorkspaceSnapshot aggregates worksheet data required to render the
// workshop dashboard. Row indices into the snapshot slices correspond to
// worksheet row positions, so the slices keep worksheet order; the sorted
// views are separate.
type WorkspaceSnapshot struct {
	Customers    []models.Customer
	Pigments     []models.Pigment
	Recipes      []models.Recipe
	Orders       []models.ProductionOrder
	StockEntries []models.StockEntry
	Pantone      []models.PantoneMapping
	Warnings     []workbook.RowWarning
}

// SortedRecipes returns the recipes ordered by code for display.
func (s WorkspaceSnapshot) SortedRecipes() []models.Recipe {
	sorted := make([]models.Recipe, len(s.Recipes))
	copy(sorted, s.Recipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Code < sorted[j].Code
	})
	return sorted
}

// SortedOrders returns the production orders ordered by production date,
// most recent first.
func (s WorkspaceSnapshot) SortedOrders() []models.ProductionOrder {
	sorted := make([]models.ProductionOrder, len(s.Orders))
	copy(sorted, s.Orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProducedAt.After(sorted[j].ProducedAt)
	})
	return sorted
}

// PigmentName resolves a pigment code to its display name, falling back to
// the code itself when the pigment is unknown.
func (s WorkspaceSnapshot) PigmentName(code string) string {
	target := strings.TrimSpace(code)
	for _, pigment := range s.Pigments {
		if strings.TrimSpace(pigment.Code) == target {
			if pigment.Name != "" {
				return pigment.Name
			}
			break
		}
	}
	return target
}

// CustomerName resolves a customer code to its short name, falling back to
// the code itself.
func (s WorkspaceSnapshot) CustomerName(code string) string {
	target := strings.TrimSpace(code)
	for _, customer := range s.Customers {
		if strings.EqualFold(strings.TrimSpace(customer.Code), target) {
			if customer.ShortName != "" {
				return customer.ShortName
			}
			break
		}
	}
	return target
}

// EmptyWorkspaceSnapshot returns a zero-value snapshot to simplify call
// sites when no data is available.
func EmptyWorkspaceSnapshot() WorkspaceSnapshot {
	return WorkspaceSnapshot{}
}
